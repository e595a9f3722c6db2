package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bounds for the stretch popup countdown and idle pause threshold.
const (
	MinStretchSeconds = 5
	MaxStretchSeconds = 300
	MaxIdlePause      = 120
)

// AppConfig holds application preferences that are not part of the timer settings.
type AppConfig struct {
	DataDir          string
	DarkMode         bool
	Sound            bool
	Notifications    bool
	StretchPopup     bool
	StretchSeconds   int
	IdlePauseMinutes int
	Autostart        bool
	LogLevel         string
}

// DefaultAppConfig returns the preferences used when app.yaml is absent.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DarkMode:       true,
		Sound:          true,
		Notifications:  true,
		StretchPopup:   true,
		StretchSeconds: 20,
		LogLevel:       "info",
	}
}

// Pointer fields distinguish "absent" from the zero value.
type yamlAppConfig struct {
	DataDir          *string `yaml:"data_dir,omitempty"`
	DarkMode         *bool   `yaml:"dark_mode,omitempty"`
	Sound            *bool   `yaml:"sound,omitempty"`
	Notifications    *bool   `yaml:"notifications,omitempty"`
	StretchPopup     *bool   `yaml:"stretch_popup,omitempty"`
	StretchSeconds   *int    `yaml:"stretch_seconds,omitempty"`
	IdlePauseMinutes *int    `yaml:"idle_pause_minutes,omitempty"`
	Autostart        *bool   `yaml:"autostart,omitempty"`
	LogLevel         *string `yaml:"log_level,omitempty"`
}

// LoadAppConfig reads app preferences from YAML.
// If the file does not exist, defaults are returned.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read app config: %w", err)
	}

	var fileData yamlAppConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse app config yaml: %w", err)
	}

	applyYamlAppConfig(&config, fileData)
	return config, nil
}

// SaveAppConfig writes every preference to YAML.
func SaveAppConfig(path string, config AppConfig) error {
	if err := ensureParent(path); err != nil {
		return err
	}

	fileData := yamlAppConfig{
		DarkMode:         &config.DarkMode,
		Sound:            &config.Sound,
		Notifications:    &config.Notifications,
		StretchPopup:     &config.StretchPopup,
		StretchSeconds:   &config.StretchSeconds,
		IdlePauseMinutes: &config.IdlePauseMinutes,
		Autostart:        &config.Autostart,
		LogLevel:         &config.LogLevel,
	}
	if config.DataDir != "" {
		fileData.DataDir = &config.DataDir
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal app config yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write app config: %w", err)
	}
	return nil
}

func applyYamlAppConfig(config *AppConfig, fileData yamlAppConfig) {
	if fileData.DataDir != nil {
		config.DataDir = strings.TrimSpace(*fileData.DataDir)
	}
	if fileData.DarkMode != nil {
		config.DarkMode = *fileData.DarkMode
	}
	if fileData.Sound != nil {
		config.Sound = *fileData.Sound
	}
	if fileData.Notifications != nil {
		config.Notifications = *fileData.Notifications
	}
	if fileData.StretchPopup != nil {
		config.StretchPopup = *fileData.StretchPopup
	}
	if fileData.StretchSeconds != nil && *fileData.StretchSeconds >= MinStretchSeconds && *fileData.StretchSeconds <= MaxStretchSeconds {
		config.StretchSeconds = *fileData.StretchSeconds
	}
	if fileData.IdlePauseMinutes != nil && *fileData.IdlePauseMinutes >= 0 && *fileData.IdlePauseMinutes <= MaxIdlePause {
		config.IdlePauseMinutes = *fileData.IdlePauseMinutes
	}
	if fileData.Autostart != nil {
		config.Autostart = *fileData.Autostart
	}
	if fileData.LogLevel != nil {
		switch level := strings.ToLower(strings.TrimSpace(*fileData.LogLevel)); level {
		case "debug", "info", "warn", "error":
			config.LogLevel = level
		}
	}
}
