package tui

import (
	"testing"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	commands []app.Command
}

func (r *recorder) post(cmd app.Command) bool {
	r.commands = append(r.commands, cmd)
	return true
}

func (r *recorder) last(t *testing.T) app.Command {
	t.Helper()
	require.NotEmpty(t, r.commands)
	return r.commands[len(r.commands)-1]
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func newTestModel() (Model, *recorder) {
	rec := &recorder{}
	m := New(Options{
		Post:        rec.post,
		Preferences: storage.DefaultAppConfig(),
		Now:         func() time.Time { return time.Date(2024, time.March, 6, 12, 0, 0, 0, time.Local) },
	})
	return m, rec
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func TestTimerKeys(t *testing.T) {
	m, rec := newTestModel()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, app.CommandStartPause, rec.last(t).Kind)

	m, _ = update(t, m, runes("r"))
	assert.Equal(t, app.CommandReset, rec.last(t).Kind)

	m, _ = update(t, m, runes("t"))
	assert.Equal(t, app.CommandTakeBreak, rec.last(t).Kind)

	_, _ = update(t, m, runes("s"))
	assert.Equal(t, app.CommandSaveSettings, rec.last(t).Kind)
	assert.Equal(t, model.DefaultSettings(), rec.last(t).Settings)
}

func TestAdjustSettingsClamps(t *testing.T) {
	m, rec := newTestModel()

	m, _ = update(t, m, runes("+"))
	assert.Equal(t, app.CommandApplySettings, rec.last(t).Kind)
	assert.Equal(t, 26, rec.last(t).Settings.FocusMinutes)

	m, _ = update(t, m, runes("a"))
	assert.False(t, rec.last(t).Settings.AutoRepeat)

	m.settings.BreakMinutes = model.MinMinutes
	m, _ = update(t, m, runes("["))
	assert.Equal(t, model.MinMinutes, rec.last(t).Settings.BreakMinutes)

	m.settings.FocusMinutes = model.MaxMinutes
	_, _ = update(t, m, runes("+"))
	assert.Equal(t, model.MaxMinutes, rec.last(t).Settings.FocusMinutes)
}

func TestStateEventUpdatesView(t *testing.T) {
	events := make(chan app.Event, 1)
	m, _ := newTestModel()
	m.events = events

	snapshot := app.Snapshot{
		State:    timer.State{Running: true, Phase: timer.PhaseFocus, RemainingSeconds: 1499, TotalSeconds: 1500},
		Settings: model.Settings{FocusMinutes: 25, BreakMinutes: 5, AutoRepeat: true},
		Status:   app.StatusRunning,
	}
	m, cmd := update(t, m, eventMsg(app.Event{Type: app.EventState, Snapshot: snapshot}))
	require.NotNil(t, cmd, "keeps listening")
	assert.Equal(t, snapshot, m.snapshot)

	view := m.View()
	assert.Contains(t, view, "Focus")
	assert.Contains(t, view, "24:59")
	assert.Contains(t, view, app.StatusRunning)

	events <- app.Event{Type: app.EventNotice, Message: "next"}
	msg := cmd()
	assert.Equal(t, eventMsg(app.Event{Type: app.EventNotice, Message: "next"}), msg)

	close(events)
	assert.Equal(t, eventsClosedMsg{}, waitForEvent(events)())
}

func TestFocusCompletionStartsStretch(t *testing.T) {
	m, _ := newTestModel()
	m, cmd := update(t, m, eventMsg(app.Event{
		Type:       app.EventCompleted,
		Completion: timer.Completion{Phase: timer.PhaseFocus, Minutes: 25},
	}))
	assert.NotNil(t, cmd)
	assert.Equal(t, 20, m.stretchRemaining)
	assert.Contains(t, m.notice, "Focus session complete")
	assert.Contains(t, m.View(), "20s")

	m, next := update(t, m, stretchTickMsg{id: m.stretchID})
	assert.Equal(t, 19, m.stretchRemaining)
	assert.NotNil(t, next)

	m, next = update(t, m, stretchTickMsg{id: m.stretchID - 1})
	assert.Equal(t, 19, m.stretchRemaining, "stale ticks are ignored")
	assert.Nil(t, next)
}

func TestBreakCompletionSkipsStretch(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, eventMsg(app.Event{Type: app.EventCompleted, Completion: timer.Completion{Phase: timer.PhaseBreak}}))
	assert.Zero(t, m.stretchRemaining)
	assert.Contains(t, m.notice, "Back to focus!")
}

func TestHistoryExportPrompt(t *testing.T) {
	m, rec := newTestModel()

	m, _ = update(t, m, runes("h"))
	assert.Equal(t, viewHistory, m.view)
	assert.Equal(t, app.CommandLoadHistory, rec.last(t).Kind)

	m, _ = update(t, m, eventMsg(app.Event{Type: app.EventHistory, Entries: []model.HistoryEntry{
		model.NewFocusEntry(25, time.Date(2024, time.March, 6, 9, 0, 0, 0, time.Local)),
	}}))
	assert.Equal(t, 1, m.summary.Sessions)
	assert.Contains(t, m.View(), "Sessions")

	m, _ = update(t, m, runes("e"))
	require.Equal(t, promptExport, m.prompt)
	assert.Equal(t, defaultExportName, m.input.Value())

	m.input.SetValue("report")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, promptNone, m.prompt)
	assert.Equal(t, app.CommandExportHistory, rec.last(t).Kind)
	assert.Equal(t, "report.json", rec.last(t).Path)
}

func TestClearNeedsConfirmation(t *testing.T) {
	m, rec := newTestModel()
	m, _ = update(t, m, runes("h"))

	m, _ = update(t, m, runes("c"))
	require.Equal(t, promptClear, m.prompt)
	assert.Contains(t, m.View(), "(y/n)")
	m, _ = update(t, m, runes("n"))
	assert.Equal(t, promptNone, m.prompt)
	assert.NotEqual(t, app.CommandClearHistory, rec.last(t).Kind)

	m, _ = update(t, m, runes("c"))
	_, _ = update(t, m, runes("y"))
	assert.Equal(t, app.CommandClearHistory, rec.last(t).Kind)
}

func TestExportAndClearOnlyInHistory(t *testing.T) {
	m, rec := newTestModel()
	m, _ = update(t, m, runes("e"))
	m, _ = update(t, m, runes("c"))
	assert.Equal(t, promptNone, m.prompt)
	assert.Empty(t, rec.commands)
}

func TestQuit(t *testing.T) {
	m, rec := newTestModel()
	m, cmd := update(t, m, runes("q"))
	assert.Nil(t, cmd, "waits for the controller to stop")
	assert.Equal(t, app.CommandQuit, rec.last(t).Kind)
	assert.Empty(t, m.View())

	_, cmd = update(t, m, eventMsg(app.Event{Type: app.EventQuit}))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	detached := New(Options{})
	_, cmd = update(t, detached, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
