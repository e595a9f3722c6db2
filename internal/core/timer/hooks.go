package timer

import (
	"errors"

	"pomodoro/internal/core/model"
)

// Recorder persists completed focus sessions.
type Recorder interface {
	Append(entry model.HistoryEntry) error
}

// Alerter produces the user-facing side effects of a phase completion.
type Alerter interface {
	PhaseComplete(completion Completion) error
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(Completion) error

// PhaseComplete calls fn.
func (fn AlerterFunc) PhaseComplete(completion Completion) error {
	return fn(completion)
}

// Alerters fans a completion out to every alerter, even after a failure.
type Alerters []Alerter

// PhaseComplete calls each alerter and joins the failures.
func (alerters Alerters) PhaseComplete(completion Completion) error {
	var errs []error
	for _, alerter := range alerters {
		if alerter == nil {
			continue
		}
		if err := alerter.PhaseComplete(completion); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
