package timer

import (
	"time"

	"pomodoro/internal/core/model"

	"github.com/rs/zerolog/log"
)

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces time.Now for completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(machine *Machine) {
		machine.now = now
	}
}

// WithRecorder sets the history sink for focus completions.
func WithRecorder(recorder Recorder) Option {
	return func(machine *Machine) {
		machine.recorder = recorder
	}
}

// WithAlerter sets the completion side effect.
func WithAlerter(alerter Alerter) Option {
	return func(machine *Machine) {
		machine.alerter = alerter
	}
}

// Machine is the focus/break state machine. It does no scheduling of its own:
// the owner calls Tick once per second while the machine is running.
// A Machine is not safe for concurrent use.
type Machine struct {
	settings model.Settings
	state    State
	now      func() time.Time
	recorder Recorder
	alerter  Alerter
}

// New creates an idle machine in the focus phase.
func New(settings model.Settings, options ...Option) *Machine {
	machine := &Machine{
		settings: settings.Normalized(),
		state:    State{Phase: PhaseFocus},
		now:      time.Now,
	}
	for _, option := range options {
		option(machine)
	}
	return machine
}

// State returns a copy of the current state.
func (machine *Machine) State() State {
	return machine.state
}

// Settings returns the live settings.
func (machine *Machine) Settings() model.Settings {
	return machine.settings
}

// SetSettings replaces the live settings. The running phase keeps its total
// until the next start or phase change.
func (machine *Machine) SetSettings(settings model.Settings) {
	machine.settings = settings.Normalized()
}

// StartOrPause starts or resumes an idle/paused machine, or pauses a running one.
// It returns the new running flag.
func (machine *Machine) StartOrPause() bool {
	if machine.state.Running {
		machine.state.Running = false
		return false
	}

	machine.state.TotalSeconds = machine.phaseSeconds(machine.state.Phase)
	if machine.state.RemainingSeconds <= 0 || machine.state.RemainingSeconds > machine.state.TotalSeconds {
		machine.state.RemainingSeconds = machine.state.TotalSeconds
	}
	machine.state.Running = true
	return true
}

// Tick advances a running machine by one second. When the phase runs out it
// completes in the same call and the completion is returned.
func (machine *Machine) Tick() (Completion, bool) {
	if !machine.state.Running {
		return Completion{}, false
	}
	if machine.state.RemainingSeconds > 0 {
		machine.state.RemainingSeconds--
	}
	if machine.state.RemainingSeconds > 0 {
		return Completion{}, false
	}
	return machine.complete(), true
}

// Reset returns the machine to idle focus.
func (machine *Machine) Reset() {
	machine.state = State{Phase: PhaseFocus}
}

func (machine *Machine) complete() Completion {
	finished := machine.state.Phase
	completion := Completion{
		Phase:   finished,
		Minutes: machine.phaseMinutes(finished),
		At:      machine.now(),
	}

	next := finished.Other()
	completion.Stopped = finished == PhaseBreak && !machine.settings.AutoRepeat

	if machine.alerter != nil {
		if err := machine.alerter.PhaseComplete(completion); err != nil {
			log.Warn().Err(err).Str("phase", string(finished)).Msg("completion alert failed")
		}
	}

	// The focus entry is written before auto-repeat is looked at.
	if finished == PhaseFocus && machine.recorder != nil {
		entry := model.NewFocusEntry(completion.Minutes, completion.At)
		if err := machine.recorder.Append(entry); err != nil {
			log.Warn().Err(err).Msg("append history entry failed")
		}
	}

	machine.state.Phase = next
	machine.state.TotalSeconds = machine.phaseSeconds(next)
	machine.state.RemainingSeconds = machine.state.TotalSeconds
	if completion.Stopped {
		machine.state.Running = false
	}
	return completion
}

func (machine *Machine) phaseMinutes(phase Phase) int {
	if phase == PhaseBreak {
		return machine.settings.BreakMinutes
	}
	return machine.settings.FocusMinutes
}

func (machine *Machine) phaseSeconds(phase Phase) int {
	return machine.phaseMinutes(phase) * 60
}
