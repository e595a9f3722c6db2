package tray

import (
	"fmt"

	"pomodoro/internal/core/timer"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnTakeBreak   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	title      string
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	callbacks  Callbacks
	icon       string
}

// New creates a tray manager with the provided callbacks.
func New(host Host, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Ready", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("Start Timer", func() { call(manager.callbacks.OnTogglePause) })

	manager.setIcon(resources.IconPaused)
	manager.refreshMenu()
	return manager
}

// Update reflects the timer state in the status line, the toggle label and the icon.
func (manager *Manager) Update(state timer.State) {
	manager.statusItem.Label = StatusLine(state)
	switch {
	case state.Running && state.Phase == timer.PhaseBreak:
		manager.pauseItem.Label = "Pause Timer"
		manager.setIcon(resources.IconBreak)
	case state.Running:
		manager.pauseItem.Label = "Pause Timer"
		manager.setIcon(resources.IconActive)
	default:
		manager.pauseItem.Label = "Start Timer"
		manager.setIcon(resources.IconPaused)
	}
	manager.refreshMenu()
}

// StatusLine is the disabled first menu item, e.g. "Focus 24:59".
func StatusLine(state timer.State) string {
	switch state.Status() {
	case timer.StatusIdle:
		return "Ready"
	case timer.StatusPaused:
		return fmt.Sprintf("%s %s (paused)", state.Phase.Label(), state.Clock())
	default:
		return fmt.Sprintf("%s %s", state.Phase.Label(), state.Clock())
	}
}

func (manager *Manager) setIcon(name string) {
	if manager.icon == name {
		return
	}
	resource, err := resources.Icon(name)
	if err != nil {
		return
	}
	manager.icon = name
	manager.host.SetSystemTrayIcon(resource)
}

func (manager *Manager) refreshMenu() {
	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Window", func() { call(manager.callbacks.OnShow) }),
		manager.pauseItem,
		fyne.NewMenuItem("Take a Stretch", func() { call(manager.callbacks.OnTakeBreak) }),
	}
	if manager.callbacks.OnPreferences != nil {
		items = append(items, fyne.NewMenuItem("Preferences", manager.callbacks.OnPreferences))
	}
	// fyne appends its own Quit item unless one is marked IsQuit.
	quit := fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) })
	quit.IsQuit = true
	items = append(items, fyne.NewMenuItemSeparator(), quit)

	manager.host.SetSystemTrayMenu(fyne.NewMenu(manager.title, items...))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
