package main

import (
	"pomodoro/internal/app"
	"pomodoro/internal/bootstrap"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/history"
	"pomodoro/internal/ui/mainwindow"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/stretch"
	"pomodoro/internal/ui/theme"
	"pomodoro/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog/log"
)

// desktopUI owns every window. All methods run on the fyne goroutine.
type desktopUI struct {
	fyneApp     fyne.App
	controller  *app.Controller
	configPath  string
	preferences storage.AppConfig

	main    *mainwindow.Window
	history *history.Window
	stretch *stretch.Window
	prefs   *preferences.Window
	tray    *tray.Manager
}

func newDesktopUI(fyneApp fyne.App, controller *app.Controller, env bootstrap.Environment, desktopApp desktop.App, hasTray bool) *desktopUI {
	ui := &desktopUI{
		fyneApp:     fyneApp,
		controller:  controller,
		configPath:  env.ConfigPath,
		preferences: env.Preferences,
	}
	dark := ui.preferences.DarkMode

	ui.prefs = preferences.New(fyneApp, ui.preferences, ui.savePreferences)
	ui.history = history.New(fyneApp, history.Options{Post: controller.Post, Dark: dark})
	ui.stretch = stretch.New(fyneApp, animation.New(animation.DefaultConfig()))
	ui.main = mainwindow.New(fyneApp, animation.New(animation.DefaultConfig()), mainwindow.Options{
		Title:         appName,
		Settings:      controller.Settings(),
		Dark:          dark,
		Post:          controller.Post,
		OnToggleTheme: ui.toggleTheme,
		OnShowHistory: ui.history.Show,
		OnPreferences: ui.prefs.Show,
		CloseToTray:   hasTray,
	})

	if hasTray {
		ui.tray = tray.New(desktopApp, appName, tray.Callbacks{
			OnShow:        func() { controller.Post(app.Show()) },
			OnTogglePause: func() { controller.Post(app.StartPause()) },
			OnTakeBreak:   func() { controller.Post(app.TakeBreak()) },
			OnPreferences: ui.prefs.Show,
			OnQuit:        func() { controller.Post(app.Quit()) },
		})
	}
	return ui
}

func (ui *desktopUI) handle(event app.Event) {
	switch event.Type {
	case app.EventState:
		ui.main.Apply(event.Snapshot)
		if ui.tray != nil {
			ui.tray.Update(event.Snapshot.State)
		}
	case app.EventCompleted:
		if event.Completion.Phase == timer.PhaseFocus && ui.preferences.StretchPopup {
			ui.showStretch()
		}
	case app.EventHistory:
		ui.history.SetEntries(event.Entries)
	case app.EventNotice:
		ui.history.ShowNotice(event.Message, event.Err)
	case app.EventStretch:
		ui.showStretch()
	case app.EventShow:
		ui.main.Show()
	case app.EventPreferences:
		ui.applyPreferences(event.Preferences)
	case app.EventQuit:
		ui.stretch.Hide()
		ui.fyneApp.Quit()
	}
}

// showStretch raises the main window from the tray for the length of the popup.
func (ui *desktopUI) showStretch() {
	wasHidden := ui.main.Hidden()
	if wasHidden {
		ui.main.Show()
	}
	ui.stretch.Show(stretch.Session{
		Seconds: ui.preferences.StretchSeconds,
		Dark:    ui.preferences.DarkMode,
	}, func() {
		if wasHidden {
			ui.main.Hide()
		}
	})
}

func (ui *desktopUI) toggleTheme() {
	updated := ui.preferences
	updated.DarkMode = !updated.DarkMode
	ui.savePreferences(updated)
}

func (ui *desktopUI) savePreferences(updated storage.AppConfig) {
	if err := storage.SaveAppConfig(ui.configPath, updated); err != nil {
		log.Error().Err(err).Str("path", ui.configPath).Msg("save preferences failed")
	}
	ui.controller.Post(app.ReloadPreferences(updated))
}

func (ui *desktopUI) applyPreferences(updated storage.AppConfig) {
	previous := ui.preferences
	ui.preferences = updated

	if updated.DarkMode != previous.DarkMode {
		ui.fyneApp.Settings().SetTheme(theme.New(updated.DarkMode))
		ui.main.SetDark(updated.DarkMode)
		ui.history.SetDark(updated.DarkMode)
	}
	if updated.Autostart != previous.Autostart {
		enabled := updated.Autostart
		go func() {
			if err := platform.SyncAutostart(platform.NewService(), appName, enabled); err != nil {
				log.Warn().Err(err).Msg("autostart sync failed")
			}
		}()
	}
	if updated.DataDir != previous.DataDir {
		log.Info().Str("data_dir", updated.DataDir).Msg("data folder takes effect after restart")
	}
	ui.prefs.Update(updated)
}
