package mainwindow

import (
	"math"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	ringDots      = 60
	ringSize      = float32(260)
	ringThickness = float32(14)
	dotSize       = float32(10)
)

// ring draws progress as a circle of dots, clockwise from the top, with the
// phase name and the clock in the middle.
type ring struct {
	dots      []*canvas.Circle
	mode      *canvas.Text
	clock     *canvas.Text
	layout    *ringLayout
	container *fyne.Container
	palette   theme.Palette
	state     timer.State
}

func newRing(palette theme.Palette) *ring {
	r := &ring{
		layout:  &ringLayout{count: ringDots},
		palette: palette,
	}

	objects := make([]fyne.CanvasObject, 0, ringDots+2)
	for i := 0; i < ringDots; i++ {
		dot := canvas.NewCircle(palette.RingBack)
		r.dots = append(r.dots, dot)
		objects = append(objects, dot)
	}

	r.mode = canvas.NewText("Ready", palette.Foreground)
	r.mode.Alignment = fyne.TextAlignCenter
	r.mode.TextStyle = fyne.TextStyle{Bold: true}
	r.mode.TextSize = 13

	r.clock = canvas.NewText("00:00", palette.Accent)
	r.clock.Alignment = fyne.TextAlignCenter
	r.clock.TextStyle = fyne.TextStyle{Bold: true}
	r.clock.TextSize = 40

	objects = append(objects, r.mode, r.clock)
	r.container = container.New(r.layout, objects...)
	return r
}

func (r *ring) update(state timer.State) {
	r.state = state
	if state.Status() == timer.StatusIdle {
		r.mode.Text = "Ready"
	} else {
		r.mode.Text = state.Phase.Label()
	}
	r.clock.Text = state.Clock()
	r.paint()
}

func (r *ring) setPalette(palette theme.Palette) {
	r.palette = palette
	r.mode.Color = palette.Foreground
	r.paint()
}

// setPulse grows every dot by extra pixels on each side.
func (r *ring) setPulse(extra float32) {
	if r.layout.extra == extra {
		return
	}
	r.layout.extra = extra
	r.container.Refresh()
}

func (r *ring) paint() {
	accent := r.palette.PhaseAccent(r.state.Phase != timer.PhaseBreak)
	lit := litDots(r.state.Progress(), len(r.dots))
	for i, dot := range r.dots {
		if i < lit {
			dot.FillColor = accent
		} else {
			dot.FillColor = r.palette.RingBack
		}
		dot.Refresh()
	}
	r.clock.Color = accent
	r.mode.Refresh()
	r.clock.Refresh()
}

// litDots is the number of dots drawn in the accent colour for progress in [0,1].
func litDots(progress float64, count int) int {
	if progress <= 0 || count <= 0 {
		return 0
	}
	if progress >= 1 {
		return count
	}
	return int(math.Round(progress * float64(count)))
}

// dotCenter places dot index of count on a circle inset from the edges of size.
func dotCenter(index, count int, size fyne.Size, inset float32) fyne.Position {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	radius := float64(side/2 - inset)
	if radius < 0 {
		radius = 0
	}
	angle := -math.Pi/2 + 2*math.Pi*float64(index)/float64(count)
	return fyne.NewPos(
		size.Width/2+float32(radius*math.Cos(angle)),
		size.Height/2+float32(radius*math.Sin(angle)),
	)
}

type ringLayout struct {
	count int
	extra float32
}

func (layout *ringLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < layout.count+2 {
		return
	}
	diameter := dotSize + 2*layout.extra
	inset := ringThickness + 6
	for i := 0; i < layout.count; i++ {
		center := dotCenter(i, layout.count, size, inset)
		objects[i].Move(fyne.NewPos(center.X-diameter/2, center.Y-diameter/2))
		objects[i].Resize(fyne.NewSize(diameter, diameter))
	}

	mode := objects[layout.count]
	modeSize := mode.MinSize()
	mode.Move(fyne.NewPos(0, size.Height*0.28-modeSize.Height/2))
	mode.Resize(fyne.NewSize(size.Width, modeSize.Height))

	clock := objects[layout.count+1]
	clockSize := clock.MinSize()
	clock.Move(fyne.NewPos(0, size.Height*0.55-clockSize.Height/2))
	clock.Resize(fyne.NewSize(size.Width, clockSize.Height))
}

func (layout *ringLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(ringSize, ringSize)
}
