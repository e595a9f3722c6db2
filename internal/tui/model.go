// Package tui is the terminal front-end. It drives the same controller as the
// desktop window through Post and renders controller events.
package tui

import (
	"strings"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/export"
	"pomodoro/internal/storage"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultExportName = "pomodoro_history.json"

type viewMode int

const (
	viewTimer viewMode = iota
	viewHistory
)

type promptMode int

const (
	promptNone promptMode = iota
	promptExport
	promptClear
)

type eventMsg app.Event

type eventsClosedMsg struct{}

type stretchTickMsg struct {
	id int
}

// Options wires the model to a controller.
type Options struct {
	Post        func(app.Command) bool
	Events      <-chan app.Event
	Preferences storage.AppConfig
	Now         func() time.Time
}

// Model is the bubbletea model of the terminal timer.
type Model struct {
	post        func(app.Command) bool
	events      <-chan app.Event
	now         func() time.Time
	keys        keyMap
	help        help.Model
	progress    progress.Model
	input       textinput.Model
	preferences storage.AppConfig

	snapshot app.Snapshot
	settings model.Settings
	entries  []model.HistoryEntry
	summary  stats.Summary
	notice   string

	view   viewMode
	prompt promptMode
	width  int

	stretchID        int
	stretchRemaining int

	quitting bool
}

// New creates the model. Call Init through tea.NewProgram.
func New(options Options) Model {
	if options.Now == nil {
		options.Now = time.Now
	}
	input := textinput.New()
	input.Placeholder = defaultExportName
	input.CharLimit = 512
	input.Width = 48

	return Model{
		post:        options.Post,
		events:      options.Events,
		now:         options.Now,
		keys:        newKeyMap(),
		help:        help.New(),
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:       input,
		preferences: options.Preferences,
		settings:    model.DefaultSettings(),
		snapshot:    app.Snapshot{Status: app.StatusReady, Settings: model.DefaultSettings()},
	}
}

// Init starts listening for controller events.
func (m Model) Init() tea.Cmd {
	m.send(app.Refresh())
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width < 10 {
			width = 10
		}
		m.progress.Width = width
		return m, nil

	case eventMsg:
		return m.handleEvent(app.Event(msg))

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case stretchTickMsg:
		return m.handleStretchTick(msg)

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePrompt(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleEvent(event app.Event) (tea.Model, tea.Cmd) {
	m.snapshot = event.Snapshot
	m.settings = event.Snapshot.Settings
	next := waitForEvent(m.events)

	switch event.Type {
	case app.EventCompleted:
		m.notice = event.Completion.Title() + " - " + event.Completion.Message()
		if event.Completion.Phase == timer.PhaseFocus && m.preferences.StretchPopup {
			var tick tea.Cmd
			m, tick = m.startStretch()
			return m, tea.Batch(next, tick)
		}
	case app.EventHistory:
		m.entries = event.Entries
		m.summary = stats.Summarize(event.Entries, m.now(), time.Local)
	case app.EventNotice:
		m.notice = event.Message
	case app.EventStretch:
		var tick tea.Cmd
		m, tick = m.startStretch()
		return m, tea.Batch(next, tick)
	case app.EventPreferences:
		m.preferences = event.Preferences
	case app.EventQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, next
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if !m.send(app.Quit()) {
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.StartPause):
		m.send(app.StartPause())
	case key.Matches(msg, m.keys.Reset):
		m.send(app.Reset())
	case key.Matches(msg, m.keys.Save):
		m.send(app.SaveSettings(m.settings))
	case key.Matches(msg, m.keys.FocusUp):
		m = m.adjust(func(s *model.Settings) { s.FocusMinutes++ })
	case key.Matches(msg, m.keys.FocusDown):
		m = m.adjust(func(s *model.Settings) { s.FocusMinutes-- })
	case key.Matches(msg, m.keys.BreakUp):
		m = m.adjust(func(s *model.Settings) { s.BreakMinutes++ })
	case key.Matches(msg, m.keys.BreakDown):
		m = m.adjust(func(s *model.Settings) { s.BreakMinutes-- })
	case key.Matches(msg, m.keys.AutoRepeat):
		m = m.adjust(func(s *model.Settings) { s.AutoRepeat = !s.AutoRepeat })
	case key.Matches(msg, m.keys.TakeBreak):
		m.send(app.TakeBreak())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.History):
		if m.view == viewHistory {
			m.view = viewTimer
			break
		}
		m.view = viewHistory
		m.send(app.LoadHistory())
	case msg.Type == tea.KeyEsc:
		m.view = viewTimer
	case m.view == viewHistory && key.Matches(msg, m.keys.Export):
		m.prompt = promptExport
		m.input.SetValue(defaultExportName)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case m.view == viewHistory && key.Matches(msg, m.keys.Clear):
		m.prompt = promptClear
	}
	return m, nil
}

func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.prompt {
	case promptExport:
		switch msg.Type {
		case tea.KeyEnter:
			path := strings.TrimSpace(m.input.Value())
			if path != "" {
				m.send(app.ExportHistory(export.WithDefaultExtension(path)))
			}
			m.closePrompt()
			return m, nil
		case tea.KeyEsc:
			m.closePrompt()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case promptClear:
		if strings.EqualFold(msg.String(), "y") {
			m.send(app.ClearHistory())
		}
		m.closePrompt()
	}
	return m, nil
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
}

// adjust edits the live settings and applies them. Minutes stay within bounds.
func (m Model) adjust(edit func(*model.Settings)) Model {
	settings := m.settings
	edit(&settings)
	settings = settings.Normalized()
	m.settings = settings
	m.send(app.ApplySettings(settings))
	return m
}

func (m Model) startStretch() (Model, tea.Cmd) {
	m.stretchID++
	m.stretchRemaining = m.preferences.StretchSeconds
	if m.stretchRemaining <= 0 {
		m.stretchRemaining = storage.DefaultAppConfig().StretchSeconds
	}
	return m, stretchTick(m.stretchID)
}

func (m Model) handleStretchTick(msg stretchTickMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.stretchID || m.stretchRemaining <= 0 {
		return m, nil
	}
	m.stretchRemaining--
	if m.stretchRemaining == 0 {
		return m, nil
	}
	return m, stretchTick(m.stretchID)
}

func (m Model) send(cmd app.Command) bool {
	if m.post == nil {
		return false
	}
	return m.post(cmd)
}

func waitForEvent(events <-chan app.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func stretchTick(id int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return stretchTickMsg{id: id}
	})
}
