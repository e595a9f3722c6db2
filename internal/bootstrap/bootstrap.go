// Package bootstrap holds the start-up steps shared by the desktop and terminal binaries.
package bootstrap

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/logging"
	"pomodoro/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options are the command-line flags.
type Options struct {
	DataDir    string
	ConfigPath string
	LogLevel   string
	Tick       time.Duration
	NoTray     bool
}

// ParseFlags reads args. The -no-tray flag only exists when withTrayFlag is set.
func ParseFlags(name string, args []string, withTrayFlag bool) (Options, error) {
	var options Options
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&options.DataDir, "data-dir", "", "directory for settings and history (default: next to the executable)")
	flags.StringVar(&options.ConfigPath, "config", "", "path to app.yaml (default: user config dir)")
	flags.StringVar(&options.LogLevel, "log-level", "", "debug, info, warn or error (overrides app.yaml)")
	flags.DurationVar(&options.Tick, "tick", time.Second, "timer tick interval, for development")
	if withTrayFlag {
		flags.BoolVar(&options.NoTray, "no-tray", false, "do not show a system tray icon")
	}
	if err := flags.Parse(args); err != nil {
		return Options{}, err
	}
	if options.Tick <= 0 {
		return Options{}, fmt.Errorf("invalid -tick %s: must be positive", options.Tick)
	}
	return options, nil
}

// Environment is everything resolved before the controller starts.
type Environment struct {
	Options     Options
	ConfigPath  string
	Preferences storage.AppConfig
	DataDir     string
	Settings    *storage.SettingsStore
	History     *storage.HistoryLog
}

// Prepare loads app.yaml, configures logging to logOut and opens the stores.
func Prepare(appName string, options Options, logOut io.Writer) (Environment, error) {
	env := Environment{Options: options, ConfigPath: options.ConfigPath}
	if env.ConfigPath == "" {
		path, err := storage.ResolveAppConfigPath(appName)
		if err != nil {
			return env, err
		}
		env.ConfigPath = path
	}

	preferences, loadErr := storage.LoadAppConfig(env.ConfigPath)
	env.Preferences = preferences

	level := options.LogLevel
	if level == "" {
		level = preferences.LogLevel
	}
	logging.Setup(level, logOut)
	if loadErr != nil {
		log.Warn().Err(loadErr).Str("path", env.ConfigPath).Msg("using default preferences")
	}

	override := options.DataDir
	if override == "" {
		override = preferences.DataDir
	}
	dataDir, err := storage.ResolveDataDir(override)
	if err != nil {
		return env, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return env, fmt.Errorf("create data dir: %w", err)
	}
	env.DataDir = dataDir
	env.Settings = storage.NewSettingsStore(dataDir)
	env.History = storage.NewHistoryLog(dataDir)

	log.Info().Str("data_dir", dataDir).Str("config", env.ConfigPath).Msg("starting")
	return env, nil
}

// ControllerConfig fills in the stores, preferences and tick interval.
func (env Environment) ControllerConfig(config app.Config) app.Config {
	config.Settings = env.Settings
	config.History = env.History
	config.Preferences = env.Preferences
	config.TickInterval = env.Options.Tick
	return config
}

// WatchPreferences re-reads app.yaml whenever it changes and posts the result.
// A -log-level flag keeps precedence over log_level from the file.
func (env Environment) WatchPreferences(ctx context.Context, post func(app.Command) bool) (*storage.Watcher, error) {
	path := env.ConfigPath
	watcher, err := storage.NewWatcher(path, func() {
		preferences, err := storage.LoadAppConfig(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("ignoring invalid preferences")
			return
		}
		if env.Options.LogLevel == "" {
			zerolog.SetGlobalLevel(logging.ParseLevel(preferences.LogLevel))
		}
		log.Debug().Str("path", path).Msg("preferences reloaded")
		post(app.ReloadPreferences(preferences))
	})
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return nil, err
	}
	return watcher, nil
}

// Shutdown asks the controller to quit and waits up to timeout for it to stop.
func Shutdown(controller *app.Controller, timeout time.Duration) {
	controller.Post(app.Quit())
	select {
	case <-controller.Done():
	case <-time.After(timeout):
		log.Warn().Dur("timeout", timeout).Msg("controller did not stop in time")
	}
}
