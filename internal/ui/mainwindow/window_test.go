package mainwindow

import (
	"testing"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postedCommands struct {
	commands []app.Command
}

func (posted *postedCommands) post(cmd app.Command) bool {
	posted.commands = append(posted.commands, cmd)
	return true
}

func (posted *postedCommands) kinds() []app.CommandKind {
	kinds := make([]app.CommandKind, 0, len(posted.commands))
	for _, cmd := range posted.commands {
		kinds = append(kinds, cmd.Kind)
	}
	return kinds
}

func newTestWindow(t *testing.T, closeToTray bool) (*Window, *postedCommands) {
	t.Helper()
	fyneApp := test.NewTempApp(t)
	posted := &postedCommands{}
	w := New(fyneApp, nil, Options{
		Settings:    model.DefaultSettings(),
		Dark:        true,
		Post:        posted.post,
		CloseToTray: closeToTray,
	})
	return w, posted
}

func TestParseMinutes(t *testing.T) {
	minutes, err := parseMinutes("focus", " 45 ")
	require.NoError(t, err)
	assert.Equal(t, 45, minutes)

	for _, text := range []string{"0", "181", "", "ten", "2.5"} {
		_, err := parseMinutes("focus", text)
		assert.Error(t, err, text)
	}
}

func TestInitialFormDoesNotPost(t *testing.T) {
	w, posted := newTestWindow(t, false)
	assert.Equal(t, "25", w.focusEntry.Text)
	assert.Equal(t, "5", w.breakEntry.Text)
	assert.True(t, w.autoRepeat.Checked)
	assert.Empty(t, posted.commands)
}

func TestEditingMinutesAppliesSettings(t *testing.T) {
	w, posted := newTestWindow(t, false)

	w.focusEntry.SetText("50")
	require.Len(t, posted.commands, 1)
	assert.Equal(t, app.CommandApplySettings, posted.commands[0].Kind)
	assert.Equal(t, 50, posted.commands[0].Settings.FocusMinutes)

	w.breakEntry.SetText("999")
	assert.Len(t, posted.commands, 1, "invalid input is not applied")
}

func TestSaveValidatesInputs(t *testing.T) {
	w, posted := newTestWindow(t, false)
	w.breakEntry.SetText("0")
	posted.commands = nil

	w.saveSettings()
	assert.Empty(t, posted.commands)
	assert.Contains(t, w.status.Text, app.StatusSaveFailed)

	w.breakEntry.SetText("10")
	posted.commands = nil
	w.saveSettings()
	require.Len(t, posted.commands, 1)
	assert.Equal(t, app.CommandSaveSettings, posted.commands[0].Kind)
	assert.Equal(t, 10, posted.commands[0].Settings.BreakMinutes)
}

func TestApplySnapshot(t *testing.T) {
	w, _ := newTestWindow(t, false)

	w.Apply(app.Snapshot{
		State:  timer.State{Running: true, Phase: timer.PhaseFocus, RemainingSeconds: 1499, TotalSeconds: 1500},
		Status: app.StatusRunning,
	})
	assert.Equal(t, "Pause", w.startBtn.Text)
	assert.Equal(t, "24:59", w.ring.clock.Text)
	assert.Equal(t, app.StatusRunning, w.status.Text)

	w.Apply(app.Snapshot{State: timer.State{Phase: timer.PhaseFocus, RemainingSeconds: 1499, TotalSeconds: 1500}, Status: app.StatusPaused})
	assert.Equal(t, "Start", w.startBtn.Text)
}

func TestKeysPostCommands(t *testing.T) {
	w, posted := newTestWindow(t, false)
	onKey := w.window.Canvas().OnTypedKey()
	require.NotNil(t, onKey)

	onKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	onKey(&fyne.KeyEvent{Name: fyne.KeyR})
	onKey(&fyne.KeyEvent{Name: fyne.KeyX})
	assert.Equal(t, []app.CommandKind{app.CommandStartPause, app.CommandReset}, posted.kinds())
}

func TestCloseBehaviour(t *testing.T) {
	w, posted := newTestWindow(t, true)
	w.handleClose()
	assert.True(t, w.Hidden())
	assert.Equal(t, []app.CommandKind{app.CommandHide}, posted.kinds())

	w, posted = newTestWindow(t, false)
	w.handleClose()
	assert.Equal(t, []app.CommandKind{app.CommandQuit}, posted.kinds())
}

func TestSetDarkRecolours(t *testing.T) {
	w, _ := newTestWindow(t, false)
	w.SetDark(false)
	assert.Equal(t, w.palette.Background, w.background.FillColor)
	assert.Equal(t, w.palette.Subtle, w.status.Color)
}
