package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	options, err := ParseFlags("pomodoro", nil, false)
	require.NoError(t, err)
	assert.Equal(t, time.Second, options.Tick)
	assert.Empty(t, options.DataDir)
	assert.False(t, options.NoTray)
}

func TestParseFlagsValues(t *testing.T) {
	options, err := ParseFlags("pomodoro-tui", []string{
		"-data-dir", "/tmp/pomo", "-log-level", "debug", "-tick", "250ms", "-no-tray",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pomo", options.DataDir)
	assert.Equal(t, "debug", options.LogLevel)
	assert.Equal(t, 250*time.Millisecond, options.Tick)
	assert.True(t, options.NoTray)
}

func TestParseFlagsRejectsTrayFlagWhenNotOffered(t *testing.T) {
	_, err := ParseFlags("pomodoro", []string{"-no-tray"}, false)
	assert.Error(t, err)
}

func TestParseFlagsRejectsNonPositiveTick(t *testing.T) {
	_, err := ParseFlags("pomodoro", []string{"-tick", "0s"}, false)
	assert.Error(t, err)
}

func TestPrepareUsesFlagDataDir(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "config", "app.yaml")
	dataDir := filepath.Join(root, "data")

	var logs bytes.Buffer
	env, err := Prepare("Pomodoro", Options{ConfigPath: configPath, DataDir: dataDir, Tick: time.Second}, &logs)
	require.NoError(t, err)

	assert.Equal(t, dataDir, env.DataDir)
	assert.DirExists(t, dataDir)
	assert.Equal(t, filepath.Join(dataDir, storage.SettingsFileName), env.Settings.Path())
	assert.Equal(t, filepath.Join(dataDir, storage.HistoryFileName), env.History.Path())
	assert.Equal(t, storage.DefaultAppConfig(), env.Preferences)
	assert.Contains(t, logs.String(), "starting")
}

func TestPrepareReadsDataDirFromPreferences(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "app.yaml")
	dataDir := filepath.Join(root, "from-config")
	require.NoError(t, os.WriteFile(configPath, []byte("data_dir: "+dataDir+"\nsound: false\n"), 0o644))

	env, err := Prepare("Pomodoro", Options{ConfigPath: configPath, Tick: time.Second}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, dataDir, env.DataDir)
	assert.False(t, env.Preferences.Sound)
}

func TestControllerConfigFillsEnvironment(t *testing.T) {
	root := t.TempDir()
	env, err := Prepare("Pomodoro", Options{ConfigPath: filepath.Join(root, "app.yaml"), DataDir: root, Tick: 10 * time.Millisecond}, &bytes.Buffer{})
	require.NoError(t, err)

	config := env.ControllerConfig(app.Config{QueueSize: 8})
	assert.Equal(t, 8, config.QueueSize)
	assert.Equal(t, 10*time.Millisecond, config.TickInterval)
	assert.Same(t, env.Settings, config.Settings)
	assert.Same(t, env.History, config.History)
}

func TestWatchPreferencesPostsReload(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "app.yaml")
	env, err := Prepare("Pomodoro", Options{ConfigPath: configPath, DataDir: root, Tick: time.Second}, &bytes.Buffer{})
	require.NoError(t, err)

	commands := make(chan app.Command, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := env.WatchPreferences(ctx, func(cmd app.Command) bool {
		commands <- cmd
		return true
	})
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(configPath, []byte("dark_mode: false\n"), 0o644))

	select {
	case cmd := <-commands:
		assert.Equal(t, app.CommandReloadPreferences, cmd.Kind)
		assert.False(t, cmd.Preferences.DarkMode)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload posted")
	}
}
