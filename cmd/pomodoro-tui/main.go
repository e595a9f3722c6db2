package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/bootstrap"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/platform"
	"pomodoro/internal/tui"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const appName = "Pomodoro"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "pomodoro-tui:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	options, err := bootstrap.ParseFlags(appName+"-tui", args, true)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal, use the desktop app instead")
	}

	logFile := openLogFile()
	if closer, ok := logFile.(io.Closer); ok {
		defer closer.Close()
	}
	env, err := bootstrap.Prepare(appName, options, logFile)
	if err != nil {
		return err
	}

	controller := app.New(env.ControllerConfig(app.Config{
		Sound:    platform.NewSound(),
		Notifier: timer.AlerterFunc(ringBell),
		Idle:     platform.NewIdleProvider(),
	}))
	events := controller.Subscribe(32)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("controller stopped")
		}
	}()

	watcher, err := env.WatchPreferences(ctx, controller.Post)
	if err != nil {
		log.Warn().Err(err).Msg("preferences will not reload automatically")
	} else {
		defer watcher.Stop()
	}

	var status *platform.Tray
	if !options.NoTray {
		status = startTray(ctx, controller)
	}

	model := tui.New(tui.Options{
		Post:        controller.Post,
		Events:      trayStatus(events, status),
		Preferences: env.Preferences,
	})
	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()

	cancel()
	bootstrap.Shutdown(controller, 2*time.Second)
	return runErr
}

func startTray(ctx context.Context, controller *app.Controller) *platform.Tray {
	icon, err := resources.IconBytes(resources.IconActive)
	if err != nil {
		log.Warn().Err(err).Msg("tray disabled")
		return nil
	}
	return platform.StartTray(ctx, appName, icon, platform.TrayCallbacks{
		OnTogglePause: func() { controller.Post(app.StartPause()) },
		OnTakeBreak:   func() { controller.Post(app.TakeBreak()) },
		OnQuit:        func() { controller.Post(app.Quit()) },
	})
}

// trayStatus mirrors state events onto the tray status line on their way to the model.
func trayStatus(events <-chan app.Event, status *platform.Tray) <-chan app.Event {
	if status == nil {
		return events
	}
	out := make(chan app.Event, cap(events))
	go func() {
		defer close(out)
		for event := range events {
			if event.Type == app.EventState {
				status.SetStatus(tray.StatusLine(event.Snapshot.State))
			}
			out <- event
		}
	}()
	return out
}

func ringBell(timer.Completion) error {
	_, err := os.Stdout.WriteString("\a")
	return err
}

// openLogFile keeps log output off the alternate screen.
func openLogFile() io.Writer {
	dir, err := os.UserCacheDir()
	if err != nil {
		return io.Discard
	}
	dir = filepath.Join(dir, "pomodoro")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard
	}
	file, err := os.OpenFile(filepath.Join(dir, "pomodoro-tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return file
}
