// Package notify shows phase completion notifications on the desktop.
package notify

import (
	"os"
	"runtime"

	"pomodoro/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog/log"
)

// Notifier sends system notifications, or shows a dialog on parent where the
// desktop has no notification service.
type Notifier struct {
	app    fyne.App
	parent func() fyne.Window
	native bool
}

var _ timer.Alerter = (*Notifier)(nil)

// New creates a notifier. parent returns the window used for the dialog fallback.
func New(app fyne.App, parent func() fyne.Window) *Notifier {
	return &Notifier{
		app:    app,
		parent: parent,
		native: Available(runtime.GOOS, os.Getenv),
	}
}

// PhaseComplete implements timer.Alerter. It returns immediately; the
// notification is delivered on the fyne goroutine.
func (notifier *Notifier) PhaseComplete(completion timer.Completion) error {
	title, message := completion.Title(), completion.Message()
	fyne.Do(func() {
		if notifier.native {
			notifier.app.SendNotification(fyne.NewNotification(title, message))
			return
		}
		var window fyne.Window
		if notifier.parent != nil {
			window = notifier.parent()
		}
		if window == nil {
			log.Info().Str("title", title).Msg(message)
			return
		}
		dialog.ShowInformation(title, message, window)
	})
	return nil
}

// Available reports whether the platform can deliver native notifications.
// Linux and the BSDs need a session D-Bus.
func Available(goos string, getenv func(string) string) bool {
	switch goos {
	case "windows", "darwin":
		return true
	case "js", "wasip1":
		return false
	default:
		return getenv("DBUS_SESSION_BUS_ADDRESS") != ""
	}
}
