package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names used inside the data directory.
const (
	SettingsFileName = "pomodoro_config.json"
	HistoryFileName  = "pomodoro_history.json"
	AppConfigName    = "app.yaml"
)

// DataDirEnv overrides the data directory when set.
const DataDirEnv = "POMODORO_DATA_DIR"

// ResolveDataDir picks the directory for settings and history. An explicit
// override wins, then the environment, then the executable's directory.
func ResolveDataDir(override string) (string, error) {
	if dir := strings.TrimSpace(override); dir != "" {
		return expandHome(dir), nil
	}
	if dir := strings.TrimSpace(os.Getenv(DataDirEnv)); dir != "" {
		return expandHome(dir), nil
	}
	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}
	return filepath.Dir(executable), nil
}

// ResolveAppConfigPath returns <UserConfigDir>/<appName>/app.yaml.
func ResolveAppConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, AppConfigName), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}
