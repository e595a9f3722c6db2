package tray

import (
	"testing"

	"pomodoro/internal/core/timer"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	menu  *fyne.Menu
	icons []string
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) { host.menu = menu }

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icons = append(host.icons, icon.Name())
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item missing", "label %q", label)
	return nil
}

func TestMenuActions(t *testing.T) {
	host := &fakeHost{}
	var calls []string
	New(host, "Pomodoro", Callbacks{
		OnShow:        func() { calls = append(calls, "show") },
		OnTogglePause: func() { calls = append(calls, "toggle") },
		OnTakeBreak:   func() { calls = append(calls, "stretch") },
		OnQuit:        func() { calls = append(calls, "quit") },
	})

	require.NotNil(t, host.menu)
	assert.True(t, findItem(t, host.menu, "Ready").Disabled)
	findItem(t, host.menu, "Show Window").Action()
	findItem(t, host.menu, "Start Timer").Action()
	findItem(t, host.menu, "Take a Stretch").Action()
	quit := findItem(t, host.menu, "Quit")
	assert.True(t, quit.IsQuit)
	quit.Action()

	assert.Equal(t, []string{"show", "toggle", "stretch", "quit"}, calls)
	assert.Equal(t, []string{resources.IconPaused}, host.icons)
}

func TestUpdateFollowsState(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, "Pomodoro", Callbacks{})

	manager.Update(timer.State{Running: true, Phase: timer.PhaseFocus, RemainingSeconds: 1499, TotalSeconds: 1500})
	findItem(t, host.menu, "Focus 24:59")
	findItem(t, host.menu, "Pause Timer")

	manager.Update(timer.State{Running: true, Phase: timer.PhaseBreak, RemainingSeconds: 60, TotalSeconds: 300})
	manager.Update(timer.State{Running: true, Phase: timer.PhaseBreak, RemainingSeconds: 59, TotalSeconds: 300})
	manager.Update(timer.State{Phase: timer.PhaseBreak, RemainingSeconds: 59, TotalSeconds: 300})
	findItem(t, host.menu, "Break 00:59 (paused)")
	findItem(t, host.menu, "Start Timer")

	assert.Equal(t, []string{resources.IconPaused, resources.IconActive, resources.IconBreak, resources.IconPaused}, host.icons)
}
