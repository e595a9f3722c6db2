package model

// Minute bounds accepted for focus and break durations.
const (
	MinMinutes = 1
	MaxMinutes = 180
)

// Default durations used when nothing valid is persisted.
const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
)

// Settings contains the user's timer preferences.
type Settings struct {
	FocusMinutes int
	BreakMinutes int
	AutoRepeat   bool
}

// DefaultSettings returns 25/5 with auto-repeat enabled.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes: DefaultFocusMinutes,
		BreakMinutes: DefaultBreakMinutes,
		AutoRepeat:   true,
	}
}

// ValidMinutes reports whether minutes is within [MinMinutes, MaxMinutes].
func ValidMinutes(minutes int) bool {
	return minutes >= MinMinutes && minutes <= MaxMinutes
}

// ClampMinutes pins minutes into the accepted range.
func ClampMinutes(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}

// Normalized returns a copy with both durations clamped into range.
func (settings Settings) Normalized() Settings {
	settings.FocusMinutes = ClampMinutes(settings.FocusMinutes)
	settings.BreakMinutes = ClampMinutes(settings.BreakMinutes)
	return settings
}
