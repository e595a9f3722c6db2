package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/bootstrap"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/notify"
	"pomodoro/internal/ui/theme"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog/log"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.app"
)

func main() {
	options, err := bootstrap.ParseFlags(appName, os.Args[1:], false)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	env, err := bootstrap.Prepare(appName, options, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if err := platform.ActivateRunning(appName); err != nil {
			log.Warn().Err(err).Msg("could not activate running instance")
		}
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("single instance check unavailable")
	}
	defer func() {
		if guard != nil {
			_ = guard.Release()
		}
	}()

	if err := platform.SyncAutostart(platform.NewService(), appName, env.Preferences.Autostart); err != nil {
		log.Warn().Err(err).Msg("autostart sync failed")
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))
	fyneApp.Settings().SetTheme(theme.New(env.Preferences.DarkMode))

	var ui *desktopUI
	notifier := notify.New(fyneApp, func() fyne.Window {
		if ui == nil {
			return nil
		}
		return ui.main.FyneWindow()
	})

	controller := app.New(env.ControllerConfig(app.Config{
		Sound:    platform.NewSound(),
		Notifier: notifier,
		Idle:     platform.NewIdleProvider(),
	}))
	events := controller.Subscribe(32)

	desktopApp, hasTray := fyneApp.(desktop.App)
	ui = newDesktopUI(fyneApp, controller, env, desktopApp, hasTray)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fyneApp.Lifecycle().SetOnStarted(func() {
		go func() {
			if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("controller stopped")
			}
		}()
		go pumpEvents(ctx, events, ui)
		if guard != nil {
			go guard.Serve(ctx, func() { controller.Post(app.Show()) })
		}
	})

	watcher, err := env.WatchPreferences(ctx, controller.Post)
	if err != nil {
		log.Warn().Err(err).Msg("preferences will not reload automatically")
	}

	ui.main.ShowAndRun()

	cancel()
	if watcher != nil {
		_ = watcher.Stop()
	}
	bootstrap.Shutdown(controller, 2*time.Second)
	log.Info().Msg("stopped")
}

// pumpEvents hands controller events to the fyne goroutine until the controller
// stops. A controller that stops while the window is still up takes it down.
func pumpEvents(ctx context.Context, events <-chan app.Event, ui *desktopUI) {
	for event := range events {
		fyne.Do(func() { ui.handle(event) })
	}
	if ctx.Err() == nil {
		fyne.Do(ui.fyneApp.Quit)
	}
}
