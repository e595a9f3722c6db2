package platform

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pomodoro/internal/core/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type stubPlayer struct {
	err    error
	played chan []byte
}

func (p *stubPlayer) Play(pcm []byte) error {
	p.played <- pcm
	return p.err
}

func TestSoundPlaysTone(t *testing.T) {
	bell := &lockedBuffer{}
	player := &stubPlayer{played: make(chan []byte, 1)}
	sound := &Sound{player: player, bell: bell, tone: []byte{1, 2}}

	require.NoError(t, sound.PhaseComplete(timer.Completion{Phase: timer.PhaseFocus}))
	select {
	case pcm := <-player.played:
		assert.Equal(t, []byte{1, 2}, pcm)
	case <-time.After(2 * time.Second):
		t.Fatal("tone was not played")
	}
	require.Eventually(t, func() bool { return !sound.busy.Load() }, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, bell.String())
}

func TestSoundFallsBackToBell(t *testing.T) {
	bell := &lockedBuffer{}
	player := &stubPlayer{err: errors.New("no audio device"), played: make(chan []byte, 1)}
	sound := &Sound{player: player, bell: bell}

	require.NoError(t, sound.PhaseComplete(timer.Completion{Phase: timer.PhaseFocus}))
	require.Eventually(t, func() bool { return bell.String() == "\a" }, 2*time.Second, 10*time.Millisecond)
}

func TestSoundSkipsOverlappingCompletions(t *testing.T) {
	player := &stubPlayer{played: make(chan []byte)}
	sound := &Sound{player: player, bell: &lockedBuffer{}}

	require.NoError(t, sound.PhaseComplete(timer.Completion{}))
	require.Eventually(t, sound.busy.Load, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, sound.PhaseComplete(timer.Completion{}))
	<-player.played
	require.Eventually(t, func() bool { return !sound.busy.Load() }, 2*time.Second, 10*time.Millisecond)
	select {
	case <-player.played:
		t.Fatal("second completion played while the first was running")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSoundWithoutBell(t *testing.T) {
	sound := &Sound{}
	assert.ErrorIs(t, sound.PhaseComplete(timer.Completion{}), ErrSoundUnavailable)
}

func TestToneSamples(t *testing.T) {
	pcm := toneSamples(toneFrequency, toneDuration, toneSampleRate)
	require.Len(t, pcm, 30870*2)

	sample := func(i int) int16 { return int16(binary.LittleEndian.Uint16(pcm[2*i:])) }
	assert.Zero(t, sample(0))
	assert.Zero(t, sample(len(pcm)/2-1))

	var peak int16
	for i := range len(pcm) / 2 {
		if v := sample(i); v > peak {
			peak = v
		}
	}
	assert.LessOrEqual(t, float64(peak), toneAmplitude*math.MaxInt16)
	assert.Greater(t, float64(peak), 0.25*math.MaxInt16)
}

func TestSingleInstanceActivation(t *testing.T) {
	appName := fmt.Sprintf("pomodoro-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = guard.Release() })

	_, err = AcquireSingleInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	var activated atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go guard.Serve(ctx, func() { activated.Add(1) })

	require.NoError(t, ActivateRunning(appName))
	require.Eventually(t, func() bool { return activated.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "pomodoro", slug(""))
	assert.Equal(t, "focus-timer", slug("  Focus   Timer "))
}
