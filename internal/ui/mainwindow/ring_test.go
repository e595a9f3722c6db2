package mainwindow

import (
	"testing"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestLitDots(t *testing.T) {
	assert.Zero(t, litDots(0, 60))
	assert.Zero(t, litDots(-1, 60))
	assert.Equal(t, 15, litDots(0.25, 60))
	assert.Equal(t, 60, litDots(1, 60))
	assert.Equal(t, 60, litDots(1.5, 60))
	assert.Zero(t, litDots(0.5, 0))
}

func TestDotCenterStartsAtTopClockwise(t *testing.T) {
	size := fyne.NewSize(200, 200)
	top := dotCenter(0, 4, size, 20)
	assert.InDelta(t, 100, top.X, 0.01)
	assert.InDelta(t, 20, top.Y, 0.01)

	right := dotCenter(1, 4, size, 20)
	assert.InDelta(t, 180, right.X, 0.01)
	assert.InDelta(t, 100, right.Y, 0.01)
}

func TestRingUpdate(t *testing.T) {
	test.NewTempApp(t)
	palette := theme.For(true)
	r := newRing(palette)
	assert.Equal(t, "Ready", r.mode.Text)

	r.update(timer.State{Running: true, Phase: timer.PhaseBreak, RemainingSeconds: 150, TotalSeconds: 300})
	assert.Equal(t, "Break", r.mode.Text)
	assert.Equal(t, "02:30", r.clock.Text)
	assert.Equal(t, palette.BreakAccent, r.clock.Color)
	assert.Equal(t, palette.BreakAccent, r.dots[29].FillColor)
	assert.Equal(t, palette.RingBack, r.dots[30].FillColor)

	r.update(timer.State{Phase: timer.PhaseFocus})
	assert.Equal(t, "Ready", r.mode.Text)
	assert.Equal(t, palette.RingBack, r.dots[0].FillColor)
}

func TestRingLayoutPulse(t *testing.T) {
	test.NewTempApp(t)
	r := newRing(theme.For(false))
	r.container.Resize(fyne.NewSize(ringSize, ringSize))
	assert.Equal(t, fyne.NewSize(dotSize, dotSize), r.dots[0].Size())

	r.setPulse(1)
	assert.Equal(t, fyne.NewSize(dotSize+2, dotSize+2), r.dots[0].Size())
}
