// Package app owns the timer, settings and history on a single goroutine.
// Everything else talks to it through Post and Subscribe.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/export"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"

	"github.com/rs/zerolog/log"
)

// Status line messages.
const (
	StatusReady         = "Configure times and press Start"
	StatusRunning       = "Running - press Space to pause"
	StatusPaused        = "Paused - press Space to resume"
	StatusReset         = "Reset"
	StatusCycleComplete = "Cycle complete"
	StatusSaved         = "Settings saved"
	StatusSaveFailed    = "Error saving settings: "
	StatusAway          = "Paused - you were away"
	StatusMinimized     = "Minimized to tray"
	StatusRestored      = "Restored from tray"
)

// SettingsStore loads and saves timer settings.
type SettingsStore interface {
	Load() (model.Settings, error)
	Save(settings model.Settings) error
}

// HistoryStore is the persisted focus log.
type HistoryStore interface {
	Load() []model.HistoryEntry
	Append(entry model.HistoryEntry) error
	Clear() error
}

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Config contains the controller's collaborators. Nil alerters are skipped.
type Config struct {
	TickInterval      time.Duration
	QueueSize         int
	Settings          SettingsStore
	History           HistoryStore
	Sound             timer.Alerter
	Notifier          timer.Alerter
	Idle              IdleChecker
	IdleCheckInterval time.Duration
	// EventTimeout bounds how long a full subscriber can delay events other
	// than state snapshots. Snapshots are dropped instead.
	EventTimeout      time.Duration
	Preferences       storage.AppConfig
	Export            func(path string, entries []model.HistoryEntry) error
	Clock             func() time.Time
}

// Controller serializes every state change through its command queue.
type Controller struct {
	config      Config
	machine     *timer.Machine
	settings    model.Settings
	preferences storage.AppConfig
	status      string

	commands   chan Command
	done       chan struct{}
	doneOnce   sync.Once
	generation uint64
	cancelTick context.CancelFunc

	lastIdleCheck time.Time
	idleDisabled  bool

	mu          sync.Mutex
	subscribers []chan Event
}

// New loads the persisted settings and builds an idle controller.
func New(config Config) *Controller {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 64
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	if config.EventTimeout <= 0 {
		config.EventTimeout = 250 * time.Millisecond
	}
	if config.Export == nil {
		config.Export = export.WriteFile
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	settings := model.DefaultSettings()
	if config.Settings != nil {
		loaded, err := config.Settings.Load()
		if err != nil {
			log.Warn().Err(err).Msg("settings partly ignored, using defaults for bad fields")
		}
		settings = loaded
	}

	controller := &Controller{
		config:      config,
		settings:    settings,
		preferences: config.Preferences,
		status:      StatusReady,
		commands:    make(chan Command, config.QueueSize),
		done:        make(chan struct{}),
	}

	options := []timer.Option{
		timer.WithClock(config.Clock),
		timer.WithAlerter(timer.AlerterFunc(controller.alert)),
	}
	if config.History != nil {
		options = append(options, timer.WithRecorder(config.History))
	}
	controller.machine = timer.New(settings, options...)
	return controller
}

// Settings returns the settings loaded at construction. Safe before Run starts.
func (controller *Controller) Settings() model.Settings {
	return controller.settings
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	controller.subscribers = append(controller.subscribers, ch)
	controller.mu.Unlock()
	return ch
}

// Post enqueues cmd. It is safe from any goroutine and returns false once the
// controller has stopped.
func (controller *Controller) Post(cmd Command) bool {
	select {
	case <-controller.done:
		return false
	default:
	}
	select {
	case controller.commands <- cmd:
		return true
	case <-controller.done:
		return false
	}
}

// Done is closed when Run returns.
func (controller *Controller) Done() <-chan struct{} {
	return controller.done
}

// Run processes commands until Quit is handled or ctx ends.
func (controller *Controller) Run(ctx context.Context) error {
	defer controller.shutdown()
	controller.publishState()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-controller.commands:
			if controller.handle(ctx, cmd) {
				return nil
			}
		}
	}
}

// handle applies one command and reports whether the loop should stop.
func (controller *Controller) handle(ctx context.Context, cmd Command) bool {
	if cmd.Kind != CommandTick {
		log.Debug().Stringer("command", cmd.Kind).Msg("handle command")
	}

	switch cmd.Kind {
	case CommandRefresh:
		controller.publishState()

	case CommandStartPause:
		if controller.machine.StartOrPause() {
			controller.status = StatusRunning
			controller.startTicking(ctx)
		} else {
			controller.status = StatusPaused
			controller.stopTicking()
		}
		controller.publishState()

	case CommandReset:
		controller.stopTicking()
		controller.machine.Reset()
		controller.status = StatusReset
		controller.publishState()

	case CommandTick:
		controller.handleTick(cmd.generation)

	case CommandApplySettings:
		controller.applySettings(cmd.Settings)
		controller.publishState()

	case CommandSaveSettings:
		controller.applySettings(cmd.Settings)
		controller.status = StatusSaved
		if controller.config.Settings != nil {
			if err := controller.config.Settings.Save(controller.settings); err != nil {
				log.Error().Err(err).Msg("save settings failed")
				controller.status = StatusSaveFailed + err.Error()
			}
		}
		controller.publishState()

	case CommandLoadHistory:
		controller.emit(Event{Type: EventHistory, Entries: controller.loadHistory()})

	case CommandExportHistory:
		controller.exportHistory(cmd.Path)

	case CommandClearHistory:
		controller.clearHistory()

	case CommandTakeBreak:
		controller.emit(Event{Type: EventStretch})

	case CommandShow:
		controller.status = StatusRestored
		controller.emit(Event{Type: EventShow})
		controller.publishState()

	case CommandHide:
		controller.status = StatusMinimized
		controller.publishState()

	case CommandReloadPreferences:
		controller.preferences = cmd.Preferences
		controller.idleDisabled = false
		controller.emit(Event{Type: EventPreferences, Preferences: cmd.Preferences})

	case CommandQuit:
		controller.stopTicking()
		controller.emit(Event{Type: EventQuit})
		return true
	}
	return false
}

func (controller *Controller) handleTick(generation uint64) {
	if generation != controller.generation {
		return
	}

	completion, completed := controller.machine.Tick()
	if completed {
		controller.emit(Event{Type: EventCompleted, Completion: completion})
		if completion.Stopped {
			controller.stopTicking()
			controller.status = StatusCycleComplete
		}
	} else {
		controller.checkIdle()
	}
	controller.publishState()
}

func (controller *Controller) applySettings(settings model.Settings) {
	controller.settings = settings.Normalized()
	controller.machine.SetSettings(controller.settings)
}

func (controller *Controller) loadHistory() []model.HistoryEntry {
	if controller.config.History == nil {
		return []model.HistoryEntry{}
	}
	return controller.config.History.Load()
}

func (controller *Controller) exportHistory(path string) {
	entries := controller.loadHistory()
	err := controller.config.Export(path, entries)
	notice := Event{Type: EventNotice, Message: "History exported", Err: err}
	switch {
	case errors.Is(err, export.ErrEmptyHistory):
		notice.Message = "No history to export"
	case err != nil:
		log.Error().Err(err).Str("path", path).Msg("export history failed")
		notice.Message = "Failed to export: " + err.Error()
	}
	controller.emit(notice)
}

func (controller *Controller) clearHistory() {
	notice := Event{Type: EventNotice, Message: "Cleared"}
	if controller.config.History != nil {
		if err := controller.config.History.Clear(); err != nil {
			log.Error().Err(err).Msg("clear history failed")
			notice.Message = "Failed to clear: " + err.Error()
			notice.Err = err
		}
	}
	controller.emit(notice)
	controller.emit(Event{Type: EventHistory, Entries: controller.loadHistory()})
}

// alert runs inside Machine.Tick on the controller goroutine.
func (controller *Controller) alert(completion timer.Completion) error {
	var alerters timer.Alerters
	if controller.preferences.Sound {
		alerters = append(alerters, controller.config.Sound)
	}
	if controller.preferences.Notifications {
		alerters = append(alerters, controller.config.Notifier)
	}
	return alerters.PhaseComplete(completion)
}

func (controller *Controller) checkIdle() {
	threshold := time.Duration(controller.preferences.IdlePauseMinutes) * time.Minute
	if threshold <= 0 || controller.idleDisabled || controller.config.Idle == nil {
		return
	}
	state := controller.machine.State()
	if !state.Running || state.Phase != timer.PhaseFocus {
		return
	}
	now := controller.config.Clock()
	if !controller.lastIdleCheck.IsZero() && now.Sub(controller.lastIdleCheck) < controller.config.IdleCheckInterval {
		return
	}
	controller.lastIdleCheck = now

	idle, err := controller.config.Idle.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			controller.idleDisabled = true
		}
		log.Debug().Err(err).Msg("idle check failed")
		return
	}
	if idle >= threshold {
		controller.machine.StartOrPause()
		controller.stopTicking()
		controller.status = StatusAway
		log.Info().Dur("idle", idle).Msg("paused after inactivity")
	}
}

func (controller *Controller) startTicking(ctx context.Context) {
	controller.stopTicking()
	generation := controller.generation
	tickCtx, cancel := context.WithCancel(ctx)
	controller.cancelTick = cancel
	interval := controller.config.TickInterval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				select {
				case controller.commands <- Command{Kind: CommandTick, generation: generation}:
				case <-tickCtx.Done():
					return
				}
			}
		}
	}()
}

// stopTicking cancels the ticker and invalidates ticks already queued.
func (controller *Controller) stopTicking() {
	if controller.cancelTick != nil {
		controller.cancelTick()
		controller.cancelTick = nil
	}
	controller.generation++
}

func (controller *Controller) snapshot() Snapshot {
	state := controller.machine.State()
	return Snapshot{
		State:    state,
		Settings: controller.settings,
		Status:   controller.status,
		Progress: state.Progress(),
	}
}

func (controller *Controller) publishState() {
	controller.emit(Event{Type: EventState})
}

func (controller *Controller) emit(event Event) {
	event.Snapshot = controller.snapshot()
	if event.At.IsZero() {
		event.At = controller.config.Clock()
	}

	controller.mu.Lock()
	subscribers := append([]chan Event(nil), controller.subscribers...)
	controller.mu.Unlock()

	for _, ch := range subscribers {
		if event.Type == EventState {
			select {
			case ch <- event:
			default:
			}
			continue
		}
		controller.deliver(ch, event)
	}
}

// deliver waits up to EventTimeout for room on ch.
func (controller *Controller) deliver(ch chan Event, event Event) {
	select {
	case ch <- event:
		return
	default:
	}
	timeout := time.NewTimer(controller.config.EventTimeout)
	defer timeout.Stop()
	select {
	case ch <- event:
	case <-timeout.C:
		log.Warn().Str("event", string(event.Type)).Msg("subscriber full, event dropped")
	}
}

func (controller *Controller) shutdown() {
	controller.stopTicking()
	controller.doneOnce.Do(func() {
		close(controller.done)
	})

	controller.mu.Lock()
	subscribers := controller.subscribers
	controller.subscribers = nil
	controller.mu.Unlock()
	for _, ch := range subscribers {
		close(ch)
	}
}
