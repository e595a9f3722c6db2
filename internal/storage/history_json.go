package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomodoro/internal/core/model"

	"github.com/goccy/go-json"
)

// storedEntry tolerates the legacy "timestamp" key written by older builds.
type storedEntry struct {
	Kind      string `json:"type"`
	Minutes   int    `json:"minutes"`
	Timestamp string `json:"ts"`
	Legacy    string `json:"timestamp,omitempty"`
}

// HistoryLog is the append-only list of completed focus sessions.
type HistoryLog struct {
	path string
}

// NewHistoryLog returns a log backed by pomodoro_history.json inside dir.
func NewHistoryLog(dir string) *HistoryLog {
	return &HistoryLog{path: filepath.Join(dir, HistoryFileName)}
}

// Path returns the backing file.
func (history *HistoryLog) Path() string {
	return history.path
}

// Load returns the persisted entries. Missing or malformed files read as empty.
func (history *HistoryLog) Load() []model.HistoryEntry {
	entries, _ := history.read()
	return entries
}

// read is Load with the reason for an empty result.
func (history *HistoryLog) read() ([]model.HistoryEntry, error) {
	rawData, err := os.ReadFile(history.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.HistoryEntry{}, nil
		}
		return []model.HistoryEntry{}, fmt.Errorf("read history file: %w", err)
	}

	var stored []storedEntry
	if err := json.Unmarshal(rawData, &stored); err != nil {
		return []model.HistoryEntry{}, fmt.Errorf("parse history json: %w", err)
	}

	entries := make([]model.HistoryEntry, 0, len(stored))
	for _, item := range stored {
		// null elements and objects without a type are not sessions.
		if item.Kind == "" {
			continue
		}
		timestamp := item.Timestamp
		if timestamp == "" {
			timestamp = item.Legacy
		}
		entries = append(entries, model.HistoryEntry{
			Kind:      item.Kind,
			Minutes:   item.Minutes,
			Timestamp: timestamp,
		})
	}
	return entries, nil
}

// Append adds entry and rewrites the file. An unreadable file is replaced.
func (history *HistoryLog) Append(entry model.HistoryEntry) error {
	entries, _ := history.read()
	entries = append(entries, entry)
	return history.write(entries)
}

// Clear deletes the file. A missing file is not an error.
func (history *HistoryLog) Clear() error {
	if err := os.Remove(history.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove history file: %w", err)
	}
	return nil
}

func (history *HistoryLog) write(entries []model.HistoryEntry) error {
	if err := ensureParent(history.path); err != nil {
		return err
	}
	serialized, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history json: %w", err)
	}
	if err := os.WriteFile(history.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}
