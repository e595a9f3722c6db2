package preferences

import (
	"strconv"
	"strings"

	"pomodoro/internal/storage"
)

// LogLevels are the choices offered for log_level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// formValues is the raw widget state.
type formValues struct {
	DataDir        string
	DarkMode       bool
	Sound          bool
	Notifications  bool
	StretchPopup   bool
	StretchSeconds string
	IdlePause      string
	Autostart      bool
	LogLevel       string
}

func valuesFromConfig(config storage.AppConfig) formValues {
	return formValues{
		DataDir:        config.DataDir,
		DarkMode:       config.DarkMode,
		Sound:          config.Sound,
		Notifications:  config.Notifications,
		StretchPopup:   config.StretchPopup,
		StretchSeconds: strconv.Itoa(config.StretchSeconds),
		IdlePause:      strconv.Itoa(config.IdlePauseMinutes),
		Autostart:      config.Autostart,
		LogLevel:       config.LogLevel,
	}
}

// apply copies valid form values over base. Out-of-range numbers keep the base value.
func (values formValues) apply(base storage.AppConfig) storage.AppConfig {
	config := base
	config.DataDir = strings.TrimSpace(values.DataDir)
	config.DarkMode = values.DarkMode
	config.Sound = values.Sound
	config.Notifications = values.Notifications
	config.StretchPopup = values.StretchPopup
	config.Autostart = values.Autostart

	if seconds, ok := parseIntInRange(values.StretchSeconds, storage.MinStretchSeconds, storage.MaxStretchSeconds); ok {
		config.StretchSeconds = seconds
	}
	if minutes, ok := parseIntInRange(values.IdlePause, 0, storage.MaxIdlePause); ok {
		config.IdlePauseMinutes = minutes
	}
	for _, level := range LogLevels {
		if values.LogLevel == level {
			config.LogLevel = level
		}
	}
	return config
}

func parseIntInRange(value string, min, max int) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < min || parsed > max {
		return 0, false
	}
	return parsed, true
}
