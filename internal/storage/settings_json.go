package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomodoro/internal/core/model"

	"github.com/goccy/go-json"
)

type jsonSettings struct {
	FocusMinutes int  `json:"focus_minutes"`
	BreakMinutes int  `json:"break_minutes"`
	AutoRepeat   bool `json:"auto_repeat"`
}

// SettingsStore persists model.Settings as a flat JSON object.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store for pomodoro_config.json inside dir.
func NewSettingsStore(dir string) *SettingsStore {
	return &SettingsStore{path: filepath.Join(dir, SettingsFileName)}
}

// Path returns the backing file.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load returns the defaults overlaid with every valid persisted field.
// The returned settings are always usable; the error only explains why
// some or all of the file was ignored.
func (store *SettingsStore) Load() (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawData, &fields); err != nil {
		return settings, fmt.Errorf("parse settings json: %w", err)
	}

	var errs []error
	if raw, ok := fields["focus_minutes"]; ok {
		if minutes, err := decodeMinutes(raw); err == nil {
			settings.FocusMinutes = minutes
		} else {
			errs = append(errs, fmt.Errorf("focus_minutes: %w", err))
		}
	}
	if raw, ok := fields["break_minutes"]; ok {
		if minutes, err := decodeMinutes(raw); err == nil {
			settings.BreakMinutes = minutes
		} else {
			errs = append(errs, fmt.Errorf("break_minutes: %w", err))
		}
	}
	if raw, ok := fields["auto_repeat"]; ok {
		var autoRepeat bool
		if err := json.Unmarshal(raw, &autoRepeat); err == nil {
			settings.AutoRepeat = autoRepeat
		} else {
			errs = append(errs, fmt.Errorf("auto_repeat: %w", err))
		}
	}
	return settings, errors.Join(errs...)
}

// Save overwrites the file with the whole record.
func (store *SettingsStore) Save(settings model.Settings) error {
	if err := ensureParent(store.path); err != nil {
		return err
	}

	serialized, err := json.Marshal(jsonSettings{
		FocusMinutes: settings.FocusMinutes,
		BreakMinutes: settings.BreakMinutes,
		AutoRepeat:   settings.AutoRepeat,
	})
	if err != nil {
		return fmt.Errorf("marshal settings json: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func decodeMinutes(raw json.RawMessage) (int, error) {
	var minutes int
	if err := json.Unmarshal(raw, &minutes); err != nil {
		return 0, err
	}
	if !model.ValidMinutes(minutes) {
		return 0, fmt.Errorf("%d outside [%d, %d]", minutes, model.MinMinutes, model.MaxMinutes)
	}
	return minutes, nil
}
