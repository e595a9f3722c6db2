// Package mainwindow is the timer window: minute inputs, progress ring, controls and status line.
package mainwindow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Options wires the window to the controller and the rest of the front-end.
type Options struct {
	Title    string
	Settings model.Settings
	Dark     bool
	Post     func(app.Command) bool

	OnToggleTheme func()
	OnShowHistory func()
	OnPreferences func()
	// CloseToTray hides the window on close instead of quitting.
	CloseToTray bool
}

// Window is the main timer window. Methods must run on the fyne goroutine.
type Window struct {
	window     fyne.Window
	options    Options
	pulse      *animation.Engine
	palette    theme.Palette
	background *canvas.Rectangle
	card       *canvas.Rectangle
	title      *canvas.Text
	status     *canvas.Text
	focusEntry *widget.Entry
	breakEntry *widget.Entry
	autoRepeat *widget.Check
	startBtn   *widget.Button
	ring       *ring
	pulsing    bool
	hidden     bool
	loading    bool
}

// New builds the window. It is not shown until Show is called.
func New(fyneApp fyne.App, pulse *animation.Engine, options Options) *Window {
	if options.Title == "" {
		options.Title = "Pomodoro"
	}
	w := &Window{
		window:  fyneApp.NewWindow(options.Title),
		options: options,
		pulse:   pulse,
		palette: theme.For(options.Dark),
	}
	if fyneApp.Icon() != nil {
		w.window.SetIcon(fyneApp.Icon())
	}

	w.background = canvas.NewRectangle(w.palette.Background)
	w.card = canvas.NewRectangle(w.palette.Card)
	w.card.CornerRadius = 8

	w.title = canvas.NewText(options.Title, w.palette.Accent)
	w.title.TextStyle = fyne.TextStyle{Bold: true}
	w.title.TextSize = 28

	themeBtn := widget.NewButtonWithIcon("Theme", fynetheme.ColorPaletteIcon(), w.toggleTheme)
	headerButtons := container.NewHBox(themeBtn)
	if options.OnPreferences != nil {
		headerButtons.Add(widget.NewButtonWithIcon("", fynetheme.SettingsIcon(), options.OnPreferences))
	}
	header := container.NewBorder(nil, nil, w.title, headerButtons)

	w.focusEntry = newMinutesEntry()
	w.breakEntry = newMinutesEntry()
	w.autoRepeat = widget.NewCheck("Auto Repeat", nil)
	w.setSettings(options.Settings)
	w.focusEntry.OnChanged = func(string) { w.applySettings() }
	w.breakEntry.OnChanged = func(string) { w.applySettings() }
	w.autoRepeat.OnChanged = func(bool) { w.applySettings() }

	inputs := container.NewHBox(
		layout.NewSpacer(),
		widget.NewLabel("Focus"), minutesBox(w.focusEntry),
		widget.NewLabel("Break"), minutesBox(w.breakEntry),
		w.autoRepeat,
		layout.NewSpacer(),
	)

	w.ring = newRing(w.palette)

	w.startBtn = widget.NewButtonWithIcon("Start", fynetheme.MediaPlayIcon(), func() { w.post(app.StartPause()) })
	w.startBtn.Importance = widget.HighImportance
	resetBtn := widget.NewButtonWithIcon("Reset", fynetheme.MediaReplayIcon(), func() { w.post(app.Reset()) })
	saveBtn := widget.NewButtonWithIcon("Save", fynetheme.DocumentSaveIcon(), w.saveSettings)
	historyBtn := widget.NewButtonWithIcon("History", fynetheme.HistoryIcon(), func() {
		if w.options.OnShowHistory != nil {
			w.options.OnShowHistory()
		}
	})
	controls := container.NewHBox(layout.NewSpacer(), w.startBtn, resetBtn, saveBtn, historyBtn, layout.NewSpacer())

	cardContent := container.NewVBox(inputs, container.NewCenter(w.ring.container), controls)
	card := container.NewStack(w.card, container.NewPadded(cardContent))

	w.status = canvas.NewText(app.StatusReady, w.palette.Subtle)
	w.status.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(header, card, w.status)
	w.window.SetContent(container.NewStack(w.background, container.NewPadded(content)))
	w.window.SetPadded(false)

	w.bindKeys()
	w.window.SetCloseIntercept(w.handleClose)
	return w
}

// Apply draws a controller snapshot.
func (w *Window) Apply(snapshot app.Snapshot) {
	state := snapshot.State
	w.ring.update(state)
	w.status.Text = snapshot.Status
	w.status.Refresh()

	if state.Running {
		w.startBtn.SetText("Pause")
		w.startBtn.SetIcon(fynetheme.MediaPauseIcon())
	} else {
		w.startBtn.SetText("Start")
		w.startBtn.SetIcon(fynetheme.MediaPlayIcon())
	}
	w.setPulsing(state.Running)
}

// SetDark recolours the window for the theme mode.
func (w *Window) SetDark(dark bool) {
	w.options.Dark = dark
	w.palette = theme.For(dark)
	w.background.FillColor = w.palette.Background
	w.card.FillColor = w.palette.Card
	w.title.Color = w.palette.Accent
	w.status.Color = w.palette.Subtle
	w.ring.setPalette(w.palette)

	w.background.Refresh()
	w.card.Refresh()
	w.title.Refresh()
	w.status.Refresh()
}

// Show brings the window to the front.
func (w *Window) Show() {
	w.hidden = false
	w.window.Show()
	w.window.RequestFocus()
}

// Hide sends the window to the tray.
func (w *Window) Hide() {
	w.hidden = true
	w.window.Hide()
}

// Hidden reports whether the window is in the tray.
func (w *Window) Hidden() bool {
	return w.hidden
}

// FyneWindow exposes the window as a dialog parent.
func (w *Window) FyneWindow() fyne.Window {
	return w.window
}

// ShowAndRun shows the window and runs the fyne event loop.
func (w *Window) ShowAndRun() {
	w.hidden = false
	w.window.ShowAndRun()
}

func (w *Window) post(cmd app.Command) {
	if w.options.Post != nil {
		w.options.Post(cmd)
	}
}

func (w *Window) toggleTheme() {
	if w.options.OnToggleTheme != nil {
		w.options.OnToggleTheme()
	}
}

func (w *Window) handleClose() {
	if w.options.CloseToTray {
		w.Hide()
		w.post(app.Hide())
		return
	}
	w.post(app.Quit())
}

func (w *Window) bindKeys() {
	windowCanvas := w.window.Canvas()
	windowCanvas.SetOnTypedKey(func(event *fyne.KeyEvent) {
		switch event.Name {
		case fyne.KeySpace:
			w.post(app.StartPause())
		case fyne.KeyR:
			w.post(app.Reset())
		}
	})
	windowCanvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyD, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		w.toggleTheme()
	})
}

func (w *Window) setSettings(settings model.Settings) {
	w.loading = true
	defer func() { w.loading = false }()
	w.focusEntry.SetText(strconv.Itoa(settings.FocusMinutes))
	w.breakEntry.SetText(strconv.Itoa(settings.BreakMinutes))
	w.autoRepeat.SetChecked(settings.AutoRepeat)
}

// formSettings reads the inputs. It fails when either minute field is out of range.
func (w *Window) formSettings() (model.Settings, error) {
	focus, err := parseMinutes("focus", w.focusEntry.Text)
	if err != nil {
		return model.Settings{}, err
	}
	breakMinutes, err := parseMinutes("break", w.breakEntry.Text)
	if err != nil {
		return model.Settings{}, err
	}
	return model.Settings{FocusMinutes: focus, BreakMinutes: breakMinutes, AutoRepeat: w.autoRepeat.Checked}, nil
}

func (w *Window) applySettings() {
	if w.loading {
		return
	}
	if settings, err := w.formSettings(); err == nil {
		w.post(app.ApplySettings(settings))
	}
}

func (w *Window) saveSettings() {
	settings, err := w.formSettings()
	if err != nil {
		w.status.Text = app.StatusSaveFailed + err.Error()
		w.status.Refresh()
		return
	}
	w.post(app.SaveSettings(settings))
}

func (w *Window) setPulsing(running bool) {
	if running == w.pulsing || w.pulse == nil {
		return
	}
	w.pulsing = running
	if !running {
		w.pulse.Stop()
		w.ring.setPulse(0)
		return
	}
	w.pulse.StartPulse(context.Background(), func(extra float32) {
		fyne.Do(func() {
			if w.pulsing {
				w.ring.setPulse(extra)
			}
		})
	})
}

func newMinutesEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.Validator = func(text string) error {
		_, err := parseMinutes("value", text)
		return err
	}
	return entry
}

func minutesBox(entry *widget.Entry) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(72, entry.MinSize().Height), entry)
}

func parseMinutes(field, text string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || !model.ValidMinutes(minutes) {
		return 0, fmt.Errorf("%s minutes must be a whole number from %d to %d", field, model.MinMinutes, model.MaxMinutes)
	}
	return minutes, nil
}
