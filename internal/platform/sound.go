package platform

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"pomodoro/internal/core/timer"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"
)

// ErrSoundUnavailable means neither the audio device nor the bell can be used.
var ErrSoundUnavailable = errors.New("sound player unavailable")

// Alert tone: 1000 Hz for 700 ms, 16-bit mono.
const (
	toneFrequency      = 1000
	toneDuration       = 700 * time.Millisecond
	toneSampleRate     = 44100
	toneAmplitude      = 0.3
	toneFade           = 10 * time.Millisecond
	deviceReadyTimeout = 2 * time.Second
)

// tonePlayer plays 16-bit little-endian mono PCM and blocks until it finishes.
type tonePlayer interface {
	Play(pcm []byte) error
}

// Sound plays the alert tone on phase completion, falling back to the
// terminal bell when there is no audio device.
type Sound struct {
	player tonePlayer
	bell   io.Writer
	tone   []byte
	busy   atomic.Bool
}

// NewSound returns a Sound on the default audio device with stdout as the bell.
func NewSound() *Sound {
	return &Sound{
		player: &otoPlayer{},
		bell:   os.Stdout,
		tone:   toneSamples(toneFrequency, toneDuration, toneSampleRate),
	}
}

// PhaseComplete starts the tone without blocking the caller. A completion
// that arrives while the tone is still playing is not queued.
func (sound *Sound) PhaseComplete(timer.Completion) error {
	if sound.player == nil {
		return sound.ring()
	}
	if !sound.busy.CompareAndSwap(false, true) {
		return nil
	}
	go func() {
		defer sound.busy.Store(false)
		if err := sound.player.Play(sound.tone); err != nil {
			log.Debug().Err(err).Msg("alert tone failed, ringing bell")
			_ = sound.ring()
		}
	}()
	return nil
}

func (sound *Sound) ring() error {
	if sound.bell == nil {
		return ErrSoundUnavailable
	}
	if _, err := io.WriteString(sound.bell, "\a"); err != nil {
		return fmt.Errorf("ring terminal bell: %w", err)
	}
	return nil
}

// toneSamples renders a sine wave with short linear fades so it starts and
// ends without a click.
func toneSamples(frequency int, duration time.Duration, sampleRate int) []byte {
	count := sampleRate * int(duration/time.Millisecond) / 1000
	fade := sampleRate * int(toneFade/time.Millisecond) / 1000
	pcm := make([]byte, count*2)
	for i := range count {
		gain := toneAmplitude
		if i < fade {
			gain *= float64(i) / float64(fade)
		}
		if tail := count - 1 - i; tail < fade {
			gain *= float64(tail) / float64(fade)
		}
		value := gain * math.Sin(2*math.Pi*float64(frequency)*float64(i)/float64(sampleRate))
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(int16(value*math.MaxInt16)))
	}
	return pcm
}

// otoPlayer opens the audio device on first use. oto allows one context per process.
type otoPlayer struct {
	once  sync.Once
	audio *oto.Context
	err   error
}

func (player *otoPlayer) open() (*oto.Context, error) {
	player.once.Do(func() {
		audio, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   toneSampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			player.err = fmt.Errorf("open audio device: %w", err)
			return
		}
		select {
		case <-ready:
			player.audio = audio
		case <-time.After(deviceReadyTimeout):
			player.err = errors.New("open audio device: not ready")
		}
	})
	return player.audio, player.err
}

func (player *otoPlayer) Play(pcm []byte) error {
	audio, err := player.open()
	if err != nil {
		return err
	}
	stream := audio.NewPlayer(bytes.NewReader(pcm))
	defer stream.Close()
	stream.Play()
	for stream.IsPlaying() {
		time.Sleep(20 * time.Millisecond)
	}
	return stream.Err()
}
