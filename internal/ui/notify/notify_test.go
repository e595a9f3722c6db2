package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailable(t *testing.T) {
	noEnv := func(string) string { return "" }
	withBus := func(key string) string {
		if key == "DBUS_SESSION_BUS_ADDRESS" {
			return "unix:path=/run/user/1000/bus"
		}
		return ""
	}

	assert.True(t, Available("windows", noEnv))
	assert.True(t, Available("darwin", noEnv))
	assert.False(t, Available("linux", noEnv))
	assert.True(t, Available("linux", withBus))
	assert.True(t, Available("freebsd", withBus))
	assert.False(t, Available("js", withBus))
}
