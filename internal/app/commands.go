package app

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
)

// CommandKind selects what the controller should do.
type CommandKind int

const (
	CommandRefresh CommandKind = iota
	CommandStartPause
	CommandReset
	CommandTick
	CommandApplySettings
	CommandSaveSettings
	CommandLoadHistory
	CommandExportHistory
	CommandClearHistory
	CommandTakeBreak
	CommandShow
	CommandHide
	CommandReloadPreferences
	CommandQuit
)

var commandNames = map[CommandKind]string{
	CommandRefresh:           "refresh",
	CommandStartPause:        "start_pause",
	CommandReset:             "reset",
	CommandTick:              "tick",
	CommandApplySettings:     "apply_settings",
	CommandSaveSettings:      "save_settings",
	CommandLoadHistory:       "load_history",
	CommandExportHistory:     "export_history",
	CommandClearHistory:      "clear_history",
	CommandTakeBreak:         "take_break",
	CommandShow:              "show",
	CommandHide:              "hide",
	CommandReloadPreferences: "reload_preferences",
	CommandQuit:              "quit",
}

// String returns the command name used in logs.
func (kind CommandKind) String() string {
	if name, ok := commandNames[kind]; ok {
		return name
	}
	return "unknown"
}

// Command is a message on the controller queue.
type Command struct {
	Kind        CommandKind
	Settings    model.Settings
	Path        string
	Preferences storage.AppConfig

	generation uint64
}

// StartPause toggles the timer.
func StartPause() Command { return Command{Kind: CommandStartPause} }

// Reset returns the timer to idle.
func Reset() Command { return Command{Kind: CommandReset} }

// Refresh asks for a fresh state event.
func Refresh() Command { return Command{Kind: CommandRefresh} }

// ApplySettings changes the live settings without saving them.
func ApplySettings(settings model.Settings) Command {
	return Command{Kind: CommandApplySettings, Settings: settings}
}

// SaveSettings applies and persists settings.
func SaveSettings(settings model.Settings) Command {
	return Command{Kind: CommandSaveSettings, Settings: settings}
}

// LoadHistory requests an EventHistory.
func LoadHistory() Command { return Command{Kind: CommandLoadHistory} }

// ExportHistory writes the history to path.
func ExportHistory(path string) Command {
	return Command{Kind: CommandExportHistory, Path: path}
}

// ClearHistory deletes the history file.
func ClearHistory() Command { return Command{Kind: CommandClearHistory} }

// TakeBreak asks the front-end to show the stretch popup.
func TakeBreak() Command { return Command{Kind: CommandTakeBreak} }

// Show restores the main window from the tray.
func Show() Command { return Command{Kind: CommandShow} }

// Hide records that the main window went to the tray.
func Hide() Command { return Command{Kind: CommandHide} }

// ReloadPreferences swaps in new app preferences.
func ReloadPreferences(preferences storage.AppConfig) Command {
	return Command{Kind: CommandReloadPreferences, Preferences: preferences}
}

// Quit stops the controller.
func Quit() Command { return Command{Kind: CommandQuit} }
