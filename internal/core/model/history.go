package model

import (
	"strings"
	"time"
)

// KindFocus is the only history entry kind written today.
const KindFocus = "focus"

// HistoryEntry records one completed focus session.
type HistoryEntry struct {
	Kind      string `json:"type"`
	Minutes   int    `json:"minutes"`
	Timestamp string `json:"ts"`
}

// timestampLayouts covers RFC 3339 plus the naive ISO-8601 forms older files carry.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// NewFocusEntry builds a focus entry stamped with the UTC time of at.
func NewFocusEntry(minutes int, at time.Time) HistoryEntry {
	return HistoryEntry{
		Kind:      KindFocus,
		Minutes:   minutes,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// Time parses the entry timestamp. Naive timestamps are read as local time.
func (entry HistoryEntry) Time() (time.Time, bool) {
	value := strings.TrimSpace(entry.Timestamp)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
