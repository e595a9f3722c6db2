// Package history is the history window: totals, a daily chart and the recent sessions.
package history

import (
	"errors"
	"os"
	"strconv"
	"time"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"
	"pomodoro/internal/export"
	"pomodoro/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	fynestorage "fyne.io/fyne/v2/storage"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
)

// Options wires the window to the controller.
type Options struct {
	Post func(app.Command) bool
	Dark bool
	// Now and Location default to time.Now and time.Local.
	Now      func() time.Time
	Location *time.Location
}

// Window shows the focus history. Methods must run on the fyne goroutine.
type Window struct {
	window  fyne.Window
	options Options
	palette theme.Palette
	cards   [4]*statCard
	chart   *chart
	table   *widget.Table
	empty   *widget.Label
	entries []model.HistoryEntry
	rows    []row
	visible bool
}

type statCard struct {
	background *canvas.Rectangle
	title      *canvas.Text
	value      *canvas.Text
}

// New builds the history window hidden.
func New(fyneApp fyne.App, options Options) *Window {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	w := &Window{
		window:  fyneApp.NewWindow("Focus History"),
		options: options,
		palette: theme.For(options.Dark),
	}

	cardObjects := make([]fyne.CanvasObject, 0, len(w.cards))
	for i, title := range []string{"Today", "This Week", "This Month", "Sessions"} {
		w.cards[i] = newStatCard(title, w.palette)
		cardObjects = append(cardObjects, w.cards[i].object())
	}
	cards := container.NewGridWithColumns(len(w.cards), cardObjects...)

	w.chart = newChart(w.palette)

	w.table = widget.NewTable(
		func() (int, int) { return len(w.rows), 3 },
		func() fyne.CanvasObject { return widget.NewLabel("0000-00-00 00:00") },
		func(id widget.TableCellID, object fyne.CanvasObject) {
			label := object.(*widget.Label)
			if id.Row >= len(w.rows) {
				label.SetText("")
				return
			}
			item := w.rows[id.Row]
			switch id.Col {
			case 0:
				label.SetText(item.When)
			case 1:
				label.SetText(item.Kind)
			default:
				label.SetText(item.Minutes)
			}
		},
	)
	w.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	w.table.UpdateHeader = func(id widget.TableCellID, object fyne.CanvasObject) {
		label := object.(*widget.Label)
		switch id.Col {
		case 0:
			label.SetText("Date")
		case 1:
			label.SetText("Type")
		default:
			label.SetText("Minutes")
		}
	}
	w.table.ShowHeaderRow = true
	w.table.SetColumnWidth(0, 170)
	w.table.SetColumnWidth(1, 90)
	w.table.SetColumnWidth(2, 80)

	w.empty = widget.NewLabel("No focus sessions recorded yet.")
	w.empty.Alignment = fyne.TextAlignCenter

	exportBtn := widget.NewButtonWithIcon("Export", fynetheme.DownloadIcon(), w.exportHistory)
	clearBtn := widget.NewButtonWithIcon("Clear", fynetheme.DeleteIcon(), w.confirmClear)
	clearBtn.Importance = widget.DangerImportance
	closeBtn := widget.NewButton("Close", w.Hide)
	buttons := container.NewHBox(exportBtn, clearBtn, layout.NewSpacer(), closeBtn)

	zone := widget.NewLabelWithStyle(zoneCaption(options.Location), fyne.TextAlignTrailing, fyne.TextStyle{Italic: true})
	zone.Importance = widget.LowImportance

	top := container.NewVBox(cards, widget.NewSeparator(), w.chart.container, zone, widget.NewSeparator())
	body := container.NewStack(w.table, w.empty)
	w.window.SetContent(container.NewPadded(container.NewBorder(top, buttons, nil, nil, body)))
	w.window.Resize(fyne.NewSize(560, 620))
	w.window.SetCloseIntercept(w.Hide)

	w.SetEntries(nil)
	return w
}

// Show opens the window and asks the controller for fresh entries.
func (w *Window) Show() {
	w.visible = true
	w.window.Show()
	w.window.RequestFocus()
	if w.options.Post != nil {
		w.options.Post(app.LoadHistory())
	}
}

// Hide closes the window.
func (w *Window) Hide() {
	w.visible = false
	w.window.Hide()
}

// Visible reports whether the window is open.
func (w *Window) Visible() bool {
	return w.visible
}

// SetEntries redraws the totals, the chart and the table.
func (w *Window) SetEntries(entries []model.HistoryEntry) {
	w.entries = entries
	summary := stats.Summarize(entries, w.options.Now(), w.options.Location)
	w.cards[0].set(stats.FormatMinutes(summary.TodayMinutes))
	w.cards[1].set(stats.FormatMinutes(summary.WeekMinutes))
	w.cards[2].set(stats.FormatMinutes(summary.MonthMinutes))
	w.cards[3].set(strconv.Itoa(summary.Sessions))

	w.chart.setDays(chartDays(summary.Daily, ChartDays))

	w.rows = tableRows(entries, w.options.Location)
	if len(w.rows) == 0 {
		w.empty.Show()
	} else {
		w.empty.Hide()
	}
	w.table.Refresh()
}

// ShowNotice reports the result of an export or clear.
func (w *Window) ShowNotice(message string, err error) {
	if !w.visible {
		log.Info().Err(err).Msg(message)
		return
	}
	if err != nil && !errors.Is(err, export.ErrEmptyHistory) {
		dialog.ShowError(errors.New(message), w.window)
		return
	}
	dialog.ShowInformation("History", message, w.window)
}

// SetDark recolours the cards and the chart.
func (w *Window) SetDark(dark bool) {
	w.options.Dark = dark
	w.palette = theme.For(dark)
	for _, card := range w.cards {
		card.setPalette(w.palette)
	}
	w.chart.setPalette(w.palette)
}

func (w *Window) exportHistory() {
	if len(w.entries) == 0 {
		dialog.ShowInformation("Export", "No history to export", w.window)
		return
	}
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if writer == nil {
			return
		}
		chosen := writer.URI().Path()
		_ = writer.Close()

		path := export.WithDefaultExtension(chosen)
		if path != chosen {
			// The dialog already created the bare file.
			_ = os.Remove(chosen)
		}
		if w.options.Post != nil {
			w.options.Post(app.ExportHistory(path))
		}
	}, w.window)
	save.SetFileName("pomodoro_history.json")
	save.SetFilter(fynestorage.NewExtensionFileFilter([]string{".json", ".csv", ".pdf"}))
	save.Show()
}

func (w *Window) confirmClear() {
	dialog.ShowConfirm("Clear history", "Delete all recorded focus sessions?", func(confirmed bool) {
		if confirmed && w.options.Post != nil {
			w.options.Post(app.ClearHistory())
		}
	}, w.window)
}

func newStatCard(title string, palette theme.Palette) *statCard {
	card := &statCard{
		background: canvas.NewRectangle(palette.Card),
		title:      canvas.NewText(title, palette.Subtle),
		value:      canvas.NewText("0h 0m", palette.Accent),
	}
	card.background.CornerRadius = 6
	card.title.TextSize = 11
	card.title.Alignment = fyne.TextAlignCenter
	card.value.TextSize = 18
	card.value.TextStyle = fyne.TextStyle{Bold: true}
	card.value.Alignment = fyne.TextAlignCenter
	return card
}

func (card *statCard) object() fyne.CanvasObject {
	return container.NewStack(card.background, container.NewPadded(container.NewVBox(card.title, card.value)))
}

func (card *statCard) set(value string) {
	card.value.Text = value
	card.value.Refresh()
}

func (card *statCard) setPalette(palette theme.Palette) {
	card.background.FillColor = palette.Card
	card.title.Color = palette.Subtle
	card.value.Color = palette.Accent
	card.background.Refresh()
	card.title.Refresh()
	card.value.Refresh()
}
