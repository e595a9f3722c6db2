package animation

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Config contains animation timing values.
type Config struct {
	PulseInterval time.Duration
	PulsePeriod   int
	PulseWidth    float32

	FrameInterval  time.Duration
	SwingFrames    int
	SwingAmplitude float32

	HeaderInterval time.Duration
	HeaderDots     int

	CountdownStep time.Duration
}

// StretchHooks receive stretch popup updates. They run on the animation
// goroutine; callers marshal onto the UI thread themselves. Nil hooks are skipped.
type StretchHooks struct {
	OnFrame     func(offset float32)
	OnHeader    func(dots string)
	OnCountdown func(remaining, total int)
	OnDone      func()
}

// Engine runs one animation at a time. Starting a new one cancels the previous.
type Engine struct {
	mu     sync.Mutex
	config Config
	cancel context.CancelFunc
	run    uint64
}

// New creates a new animation engine.
func New(config Config) *Engine {
	return &Engine{config: config}
}

// StartPulse calls onWidth with the extra ring width every PulseInterval until stopped.
func (engine *Engine) StartPulse(ctx context.Context, onWidth func(extra float32)) {
	engine.start(ctx, func(runCtx context.Context) {
		for step := 0; ; step++ {
			if !sleepWithContext(runCtx, engine.config.PulseInterval) {
				return
			}
			onWidth(PulseExtra(step, engine.config.PulsePeriod, engine.config.PulseWidth))
		}
	})
}

// StartStretch counts down seconds, animating the figure and header meanwhile.
// OnDone fires when the countdown reaches zero, not when the engine is stopped.
func (engine *Engine) StartStretch(ctx context.Context, seconds int, hooks StretchHooks) {
	engine.start(ctx, func(runCtx context.Context) {
		loopCtx, stopLoops := context.WithCancel(runCtx)
		defer stopLoops()

		var elapsed atomic.Int64

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			engine.runFrames(loopCtx, hooks.OnFrame)
		}()
		go func() {
			defer wg.Done()
			engine.runHeader(loopCtx, &elapsed, hooks.OnHeader)
		}()

		finished := engine.runCountdown(runCtx, seconds, &elapsed, hooks.OnCountdown)
		stopLoops()
		wg.Wait()
		if finished && hooks.OnDone != nil {
			hooks.OnDone()
		}
	})
}

// Active reports whether an animation is running.
func (engine *Engine) Active() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.run++
	id := engine.run
	engine.mu.Unlock()

	go func() {
		run(runCtx)
		engine.mu.Lock()
		if engine.run == id {
			engine.cancel = nil
		}
		engine.mu.Unlock()
		cancel()
	}()
}

func (engine *Engine) runCountdown(ctx context.Context, seconds int, elapsed *atomic.Int64, onCountdown func(int, int)) bool {
	for remaining := seconds; ; remaining-- {
		elapsed.Store(int64(seconds - remaining))
		if onCountdown != nil {
			onCountdown(remaining, seconds)
		}
		if remaining <= 0 {
			return true
		}
		if !sleepWithContext(ctx, engine.config.CountdownStep) {
			return false
		}
	}
}

func (engine *Engine) runFrames(ctx context.Context, onFrame func(float32)) {
	if onFrame == nil {
		return
	}
	for frame := 0; ; frame++ {
		onFrame(SwingOffset(frame, engine.config.SwingFrames, engine.config.SwingAmplitude))
		if !sleepWithContext(ctx, engine.config.FrameInterval) {
			return
		}
	}
}

func (engine *Engine) runHeader(ctx context.Context, elapsed *atomic.Int64, onHeader func(string)) {
	if onHeader == nil {
		return
	}
	for {
		onHeader(HeaderDots(int(elapsed.Load()), engine.config.HeaderDots))
		if !sleepWithContext(ctx, engine.config.HeaderInterval) {
			return
		}
	}
}

// PulseExtra is the added ring width for a pulse step: on for the first half of each period.
func PulseExtra(step, period int, width float32) float32 {
	if period <= 1 {
		return 0
	}
	if step%period < period/2 {
		return width
	}
	return 0
}

// SwingOffset is a triangle wave from 0 up to amplitude and back over frames.
func SwingOffset(frame, frames int, amplitude float32) float32 {
	if frames <= 0 {
		return 0
	}
	fraction := float32(frame%frames) / float32(frames)
	distance := 2*fraction - 1
	if distance < 0 {
		distance = -distance
	}
	return (1 - distance) * amplitude
}

// HeaderDots cycles from zero to cycle-1 dots as the countdown advances.
func HeaderDots(elapsed, cycle int) string {
	if cycle <= 0 || elapsed < 0 {
		return ""
	}
	return strings.Repeat(".", elapsed%cycle)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
