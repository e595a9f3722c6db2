package timer

import (
	"fmt"
	"time"
)

// Phase identifies which interval of the cycle is active.
type Phase string

const (
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

// Other returns the phase that follows p.
func (p Phase) Other() Phase {
	if p == PhaseFocus {
		return PhaseBreak
	}
	return PhaseFocus
}

// Status is the derived run state shown to the user.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// State is the mutable part of the machine.
type State struct {
	Running          bool
	Phase            Phase
	RemainingSeconds int
	TotalSeconds     int
}

// Status derives idle/running/paused from the raw fields.
func (state State) Status() Status {
	switch {
	case state.Running:
		return StatusRunning
	case state.TotalSeconds == 0:
		return StatusIdle
	default:
		return StatusPaused
	}
}

// Remaining returns the remaining time as a duration.
func (state State) Remaining() time.Duration {
	return time.Duration(state.RemainingSeconds) * time.Second
}

// Clock formats the remaining time as MM:SS.
func (state State) Clock() string {
	seconds := state.RemainingSeconds
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Label is the phase name shown above the clock.
func (p Phase) Label() string {
	if p == PhaseBreak {
		return "Break"
	}
	return "Focus"
}

// Progress is the completed fraction of the current phase in [0,1].
func (state State) Progress() float64 {
	if state.TotalSeconds <= 0 {
		return 0
	}
	remaining := state.RemainingSeconds
	if remaining < 0 {
		remaining = 0
	}
	done := state.TotalSeconds - remaining
	if done < 0 {
		done = 0
	}
	ratio := float64(done) / float64(state.TotalSeconds)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Completion describes a finished phase.
type Completion struct {
	Phase   Phase
	Minutes int
	At      time.Time
	// Stopped is set when the cycle ended because auto-repeat is off.
	Stopped bool
}

// Title returns the notification headline for the completion.
func (completion Completion) Title() string {
	if completion.Phase == PhaseFocus {
		return "Focus session complete"
	}
	return "Break finished"
}

// Message returns the notification body for the completion.
func (completion Completion) Message() string {
	if completion.Phase == PhaseFocus {
		return "Time for a break!"
	}
	return "Back to focus!"
}
