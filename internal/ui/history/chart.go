package history

import (
	"pomodoro/internal/core/stats"
	"pomodoro/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	chartHeight = float32(140)
	barGap      = float32(6)
)

// chart is a bar chart of focus minutes per day.
type chart struct {
	layout    *barsLayout
	container *fyne.Container
	palette   theme.Palette
}

func newChart(palette theme.Palette) *chart {
	c := &chart{layout: &barsLayout{}, palette: palette}
	c.container = container.New(c.layout)
	return c
}

func (c *chart) setDays(days []stats.DayTotal) {
	c.layout.fractions = barFractions(days)
	objects := make([]fyne.CanvasObject, 0, len(days)*2)
	for range days {
		bar := canvas.NewRectangle(c.palette.Accent)
		bar.CornerRadius = 3
		objects = append(objects, bar)
	}
	for _, day := range days {
		label := canvas.NewText(day.Day.Format("01/02"), c.palette.Subtle)
		label.Alignment = fyne.TextAlignCenter
		label.TextSize = 10
		objects = append(objects, label)
	}
	c.container.Objects = objects
	c.container.Refresh()
}

func (c *chart) setPalette(palette theme.Palette) {
	c.palette = palette
	for _, object := range c.container.Objects {
		switch item := object.(type) {
		case *canvas.Rectangle:
			item.FillColor = palette.Accent
		case *canvas.Text:
			item.Color = palette.Subtle
		}
		object.Refresh()
	}
}

// barsLayout expects n bars followed by n labels.
type barsLayout struct {
	fractions []float32
}

func (layout *barsLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	count := len(layout.fractions)
	if count == 0 || len(objects) < 2*count {
		return
	}
	labelHeight := objects[count].MinSize().Height
	plotHeight := size.Height - labelHeight
	if plotHeight < 0 {
		plotHeight = 0
	}
	column := size.Width / float32(count)
	barWidth := column - barGap
	if barWidth < 1 {
		barWidth = 1
	}

	for i, fraction := range layout.fractions {
		x := column * float32(i)
		height := plotHeight * fraction
		objects[i].Move(fyne.NewPos(x+barGap/2, plotHeight-height))
		objects[i].Resize(fyne.NewSize(barWidth, height))

		label := objects[count+i]
		label.Move(fyne.NewPos(x, plotHeight))
		label.Resize(fyne.NewSize(column, labelHeight))
	}
}

func (layout *barsLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(float32(ChartDays)*24, chartHeight)
}
