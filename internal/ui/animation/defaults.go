package animation

import "time"

// DefaultConfig returns the timings of the desktop front-end.
func DefaultConfig() Config {
	return Config{
		PulseInterval:  180 * time.Millisecond,
		PulsePeriod:    6,
		PulseWidth:     1,
		FrameInterval:  100 * time.Millisecond,
		SwingFrames:    12,
		SwingAmplitude: 30,
		HeaderInterval: 350 * time.Millisecond,
		HeaderDots:     4,
		CountdownStep:  time.Second,
	}
}
