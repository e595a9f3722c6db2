package preferences

import (
	"testing"

	"pomodoro/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestFormRoundTripsConfig(t *testing.T) {
	config := storage.DefaultAppConfig()
	config.IdlePauseMinutes = 10
	assert.Equal(t, config, valuesFromConfig(config).apply(storage.DefaultAppConfig()))
}

func TestFormRejectsOutOfRangeNumbers(t *testing.T) {
	base := storage.DefaultAppConfig()
	values := valuesFromConfig(base)
	values.StretchSeconds = "1"
	values.IdlePause = "abc"
	values.LogLevel = "verbose"
	values.DataDir = "  /tmp/pomodoro  "
	values.DarkMode = false

	got := values.apply(base)
	assert.Equal(t, 20, got.StretchSeconds)
	assert.Zero(t, got.IdlePauseMinutes)
	assert.Equal(t, "info", got.LogLevel)
	assert.Equal(t, "/tmp/pomodoro", got.DataDir)
	assert.False(t, got.DarkMode)
}

func TestFormAcceptsBounds(t *testing.T) {
	values := valuesFromConfig(storage.DefaultAppConfig())
	values.StretchSeconds = "300"
	values.IdlePause = "120"
	values.LogLevel = "debug"

	got := values.apply(storage.DefaultAppConfig())
	assert.Equal(t, 300, got.StretchSeconds)
	assert.Equal(t, 120, got.IdlePauseMinutes)
	assert.Equal(t, "debug", got.LogLevel)
}
