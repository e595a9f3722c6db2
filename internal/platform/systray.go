package platform

import (
	"context"
	"sync"

	"fyne.io/systray"
)

// TrayCallbacks defines tray action handlers. Handlers run on the tray's own
// goroutine and must only hand work off (for example by posting a command).
type TrayCallbacks struct {
	OnTogglePause func()
	OnTakeBreak   func()
	OnQuit        func()
}

// Tray is a standalone status-area icon for front-ends without a fyne app.
type Tray struct {
	mu         sync.Mutex
	statusItem *systray.MenuItem
	pauseItem  *systray.MenuItem
	ready      chan struct{}
}

// StartTray runs the tray loop in the background until ctx ends.
func StartTray(ctx context.Context, title string, icon []byte, callbacks TrayCallbacks) *Tray {
	tray := &Tray{ready: make(chan struct{})}

	onReady := func() {
		systray.SetIcon(icon)
		systray.SetTitle(title)
		systray.SetTooltip(title)

		tray.mu.Lock()
		tray.statusItem = systray.AddMenuItem("Ready", "Timer status")
		tray.statusItem.Disable()
		systray.AddSeparator()
		tray.pauseItem = systray.AddMenuItem("Start/Pause Timer", "Start or pause the timer")
		tray.mu.Unlock()
		stretchItem := systray.AddMenuItem("Take a Stretch", "Show a short break")
		quitItem := systray.AddMenuItem("Quit", "Quit the application")
		close(tray.ready)

		go func() {
			for {
				select {
				case <-ctx.Done():
					systray.Quit()
					return
				case <-tray.pauseItem.ClickedCh:
					call(callbacks.OnTogglePause)
				case <-stretchItem.ClickedCh:
					call(callbacks.OnTakeBreak)
				case <-quitItem.ClickedCh:
					call(callbacks.OnQuit)
				}
			}
		}()
	}

	go systray.Run(onReady, func() {})
	return tray
}

// SetStatus updates the disabled status line at the top of the menu.
func (tray *Tray) SetStatus(status string) {
	if tray == nil {
		return
	}
	select {
	case <-tray.ready:
	default:
		return
	}
	tray.mu.Lock()
	defer tray.mu.Unlock()
	tray.statusItem.SetTitle(status)
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
