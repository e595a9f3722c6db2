// Package stretch shows the break popup: a countdown with an animated stick figure.
package stretch

import (
	"context"
	"fmt"

	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	headerText  = "Break Time - Recharge"
	popupWidth  = float32(400)
	popupHeight = float32(260)
)

// Session describes one popup.
type Session struct {
	Seconds int
	Dark    bool
}

// Window manages the stretch popup. All methods must run on the fyne goroutine.
type Window struct {
	window     fyne.Window
	engine     *animation.Engine
	background *canvas.Rectangle
	header     *canvas.Text
	countdown  *canvas.Text
	progress   *widget.ProgressBar
	figure     *figure
	cancel     context.CancelFunc
	onClosed   func()
	visible    bool
}

// New creates the popup window hidden.
func New(app fyne.App, engine *animation.Engine) *Window {
	window := app.NewWindow(headerText + "!")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetFixedSize(true)

	palette := theme.For(true)
	background := canvas.NewRectangle(palette.Card)

	header := canvas.NewText(headerText+"!", palette.Accent)
	header.Alignment = fyne.TextAlignCenter
	header.TextStyle = fyne.TextStyle{Bold: true}
	header.TextSize = 20

	countdown := canvas.NewText("", palette.Accent2)
	countdown.Alignment = fyne.TextAlignCenter
	countdown.TextStyle = fyne.TextStyle{Bold: true}
	countdown.TextSize = 17

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	fig := newFigure(palette)
	figureArea := container.NewWithoutLayout(fig.objects()...)
	figureArea.Resize(fyne.NewSize(figureWidth, figureHeight))
	figureBox := container.NewCenter(container.NewGridWrap(fyne.NewSize(figureWidth, figureHeight), figureArea))

	content := container.NewVBox(
		header,
		figureBox,
		countdown,
		container.NewPadded(progress),
		layout.NewSpacer(),
	)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(popupWidth, popupHeight))

	popup := &Window{
		window:     window,
		engine:     engine,
		background: background,
		header:     header,
		countdown:  countdown,
		progress:   progress,
		figure:     fig,
	}
	window.SetCloseIntercept(popup.Hide)
	return popup
}

// Show starts a countdown. onClosed runs once the popup is gone, whether the
// countdown finished or the user closed it. A popup already showing is restarted.
func (popup *Window) Show(session Session, onClosed func()) {
	popup.stop()
	if session.Seconds <= 0 {
		session.Seconds = 20
	}

	popup.applyPalette(theme.For(session.Dark))
	popup.onClosed = onClosed
	popup.progress.Min = 0
	popup.progress.Max = float64(session.Seconds)
	popup.setCountdown(session.Seconds, session.Seconds)

	ctx, cancel := context.WithCancel(context.Background())
	popup.cancel = cancel
	popup.visible = true
	popup.window.CenterOnScreen()
	popup.window.Show()
	popup.window.RequestFocus()
	keepOnTop(popup.window)

	popup.engine.StartStretch(ctx, session.Seconds, animation.StretchHooks{
		OnFrame: func(offset float32) {
			fyne.Do(func() {
				popup.figure.setOffset(offset)
				popup.figure.arms[0].Refresh()
				popup.figure.arms[1].Refresh()
			})
		},
		OnHeader: func(dots string) {
			fyne.Do(func() {
				popup.header.Text = headerText + dots
				popup.header.Refresh()
			})
		},
		OnCountdown: func(remaining, total int) {
			fyne.Do(func() { popup.setCountdown(remaining, total) })
		},
		OnDone: func() {
			fyne.Do(popup.Hide)
		},
	})
}

// Hide closes the popup and stops its animation.
func (popup *Window) Hide() {
	popup.stop()
	popup.window.Hide()
	if !popup.visible {
		return
	}
	popup.visible = false
	if onClosed := popup.onClosed; onClosed != nil {
		popup.onClosed = nil
		onClosed()
	}
}

// Visible reports whether the popup is showing.
func (popup *Window) Visible() bool {
	return popup.visible
}

func (popup *Window) stop() {
	if popup.cancel != nil {
		popup.cancel()
		popup.cancel = nil
	}
	popup.engine.Stop()
}

func (popup *Window) setCountdown(remaining, total int) {
	popup.countdown.Text = fmt.Sprintf("%ds", remaining)
	popup.countdown.Refresh()
	popup.progress.SetValue(float64(total - remaining))
}

func (popup *Window) applyPalette(palette theme.Palette) {
	popup.background.FillColor = palette.Card
	popup.header.Color = palette.Accent
	popup.header.Text = headerText + "!"
	popup.countdown.Color = palette.Accent2
	popup.figure.setPalette(palette)

	popup.background.Refresh()
	popup.header.Refresh()
	popup.countdown.Refresh()
	popup.figure.refresh()
}
