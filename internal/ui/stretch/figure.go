package stretch

import (
	"image/color"

	"pomodoro/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	figureWidth  = float32(340)
	figureHeight = float32(140)
	headRadius   = float32(12)
	limbWidth    = float32(5)
	glowRings    = 4
)

var skinColor = color.NRGBA{R: 0xff, G: 0xe0, B: 0xb2, A: 0xff}

// figure is a stick figure whose arms swing by offset.
type figure struct {
	center fyne.Position
	glow   []*canvas.Circle
	head   *canvas.Circle
	body   *canvas.Line
	arms   [2]*canvas.Line
	legs   [2]*canvas.Line
}

func newFigure(palette theme.Palette) *figure {
	fig := &figure{center: fyne.NewPos(figureWidth/2, 50)}

	for ring := 0; ring < glowRings; ring++ {
		circle := canvas.NewCircle(color.Transparent)
		circle.StrokeWidth = 2
		fig.glow = append(fig.glow, circle)
	}
	fig.head = canvas.NewCircle(skinColor)
	fig.head.StrokeWidth = 3
	fig.body = newLimb()
	fig.arms = [2]*canvas.Line{newLimb(), newLimb()}
	fig.legs = [2]*canvas.Line{newLimb(), newLimb()}

	fig.layoutStatic()
	fig.setOffset(0)
	fig.setPalette(palette)
	return fig
}

func newLimb() *canvas.Line {
	line := canvas.NewLine(color.Transparent)
	line.StrokeWidth = limbWidth
	return line
}

// objects returns the canvas objects, back to front.
func (fig *figure) objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(fig.glow)+6)
	for _, circle := range fig.glow {
		objects = append(objects, circle)
	}
	return append(objects, fig.legs[0], fig.legs[1], fig.body, fig.arms[0], fig.arms[1], fig.head)
}

func (fig *figure) layoutStatic() {
	cx, cy := fig.center.X, fig.center.Y

	for ring, circle := range fig.glow {
		spread := float32(2 * (glowRings - ring))
		radius := headRadius + 2 + spread
		circle.Move(fyne.NewPos(cx-radius, cy-radius))
		circle.Resize(fyne.NewSize(radius*2, radius*2))
	}
	fig.head.Move(fyne.NewPos(cx-headRadius, cy-headRadius))
	fig.head.Resize(fyne.NewSize(headRadius*2, headRadius*2))

	fig.body.Position1 = fyne.NewPos(cx, cy+12)
	fig.body.Position2 = fyne.NewPos(cx, cy+48)
	fig.legs[0].Position1 = fyne.NewPos(cx, cy+48)
	fig.legs[0].Position2 = fyne.NewPos(cx-20, cy+86)
	fig.legs[1].Position1 = fyne.NewPos(cx, cy+48)
	fig.legs[1].Position2 = fyne.NewPos(cx+20, cy+86)
}

// setOffset raises both hands by offset pixels.
func (fig *figure) setOffset(offset float32) {
	cx, cy := fig.center.X, fig.center.Y
	shoulder := fyne.NewPos(cx, cy+6)
	fig.arms[0].Position1 = shoulder
	fig.arms[0].Position2 = fyne.NewPos(cx-30, cy+20-offset)
	fig.arms[1].Position1 = shoulder
	fig.arms[1].Position2 = fyne.NewPos(cx+30, cy+20-offset)
}

func (fig *figure) setPalette(palette theme.Palette) {
	for ring, circle := range fig.glow {
		circle.StrokeColor = palette.Accent
		if ring%2 == 1 {
			circle.StrokeColor = palette.BreakAccent
		}
	}
	fig.head.StrokeColor = palette.Accent
	fig.body.StrokeColor = palette.Accent
	for _, leg := range fig.legs {
		leg.StrokeColor = palette.Accent
	}
	for _, arm := range fig.arms {
		arm.StrokeColor = palette.BreakAccent
	}
}

func (fig *figure) refresh() {
	for _, object := range fig.objects() {
		object.Refresh()
	}
}
