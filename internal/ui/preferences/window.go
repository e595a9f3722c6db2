package preferences

import (
	"pomodoro/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	config        storage.AppConfig
	onSave        func(storage.AppConfig)
	dataDir       *widget.Entry
	darkMode      *widget.Check
	sound         *widget.Check
	notifications *widget.Check
	stretchPopup  *widget.Check
	stretchSecs   *widget.Entry
	idlePause     *widget.Entry
	autostart     *widget.Check
	logLevel      *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, config storage.AppConfig, onSave func(storage.AppConfig)) *Window {
	window := app.NewWindow("Pomodoro Preferences")

	dataDir := widget.NewEntry()
	dataDir.SetPlaceHolder("next to the executable")
	darkMode := widget.NewCheck("Dark theme", nil)
	sound := widget.NewCheck("Play a sound when a phase ends", nil)
	notifications := widget.NewCheck("Show notifications", nil)
	stretchPopup := widget.NewCheck("Stretch popup after focus", nil)
	stretchSecs := widget.NewEntry()
	idlePause := widget.NewEntry()
	autostart := widget.NewCheck("Start at login", nil)
	logLevel := widget.NewSelect(LogLevels, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		darkMode,
		sound,
		notifications,
		autostart,
		widget.NewLabelWithStyle("Breaks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		stretchPopup,
		container.NewHBox(widget.NewLabel("Stretch countdown"), stretchSecs, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Pause when idle for"), idlePause, widget.NewLabel("min (0 = off)")),
		widget.NewLabelWithStyle("Advanced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Data folder"), nil, dataDir),
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(420, 460))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		dataDir:       dataDir,
		darkMode:      darkMode,
		sound:         sound,
		notifications: notifications,
		stretchPopup:  stretchPopup,
		stretchSecs:   stretchSecs,
		idlePause:     idlePause,
		autostart:     autostart,
		logLevel:      logLevel,
	}
	prefs.Update(config)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = window.Hide
	window.SetCloseIntercept(window.Hide)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Update replaces window values, e.g. after app.yaml changed on disk.
func (prefs *Window) Update(config storage.AppConfig) {
	prefs.config = config
	values := valuesFromConfig(config)
	prefs.dataDir.SetText(values.DataDir)
	prefs.darkMode.SetChecked(values.DarkMode)
	prefs.sound.SetChecked(values.Sound)
	prefs.notifications.SetChecked(values.Notifications)
	prefs.stretchPopup.SetChecked(values.StretchPopup)
	prefs.stretchSecs.SetText(values.StretchSeconds)
	prefs.idlePause.SetText(values.IdlePause)
	prefs.autostart.SetChecked(values.Autostart)
	prefs.logLevel.SetSelected(values.LogLevel)
}

func (prefs *Window) handleSave() {
	values := formValues{
		DataDir:        prefs.dataDir.Text,
		DarkMode:       prefs.darkMode.Checked,
		Sound:          prefs.sound.Checked,
		Notifications:  prefs.notifications.Checked,
		StretchPopup:   prefs.stretchPopup.Checked,
		StretchSeconds: prefs.stretchSecs.Text,
		IdlePause:      prefs.idlePause.Text,
		Autostart:      prefs.autostart.Checked,
		LogLevel:       prefs.logLevel.Selected,
	}
	prefs.config = values.apply(prefs.config)
	prefs.Update(prefs.config)
	if prefs.onSave != nil {
		prefs.onSave(prefs.config)
	}
	prefs.window.Hide()
}
