package app

import (
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/storage"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventState       EventType = "state"
	EventCompleted   EventType = "completed"
	EventHistory     EventType = "history"
	EventNotice      EventType = "notice"
	EventStretch     EventType = "stretch"
	EventShow        EventType = "show"
	EventPreferences EventType = "preferences"
	EventQuit        EventType = "quit"
)

// Snapshot is everything a front-end needs to draw the timer.
type Snapshot struct {
	State    timer.State
	Settings model.Settings
	Status   string
	Progress float64
}

// Event is published to subscribers after the controller handles a command.
type Event struct {
	Type        EventType
	Snapshot    Snapshot
	Completion  timer.Completion
	Entries     []model.HistoryEntry
	Preferences storage.AppConfig
	Message     string
	Err         error
	At          time.Time
}
