// Package audio synthesises the short cue sounds. A single process-scoped
// Synth owns a fixed set of voices; each cue acquires a voice, renders into
// its buffer and releases it.
package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/vibes/internal/engine"
)

// DefaultSampleRate is the rate used by Shared.
const DefaultSampleRate = 44100

// ErrClosed is returned when acquiring from a closed Synth.
var ErrClosed = errors.New("audio: synth closed")

// Synth is a pool of voices at one sample rate.
type Synth struct {
	rate   int
	voices chan *Voice

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

var (
	sharedOnce sync.Once
	shared     *Synth
)

// Shared returns the process-wide synth, creating it on first use.
func Shared() *Synth {
	sharedOnce.Do(func() {
		shared, _ = New(DefaultSampleRate, 4)
	})
	return shared
}

// New creates a synth with the given number of voices.
func New(sampleRate, polyphony int) (*Synth, error) {
	if sampleRate < 8000 {
		return nil, fmt.Errorf("audio: sample rate %d too low", sampleRate)
	}
	if polyphony < 1 {
		return nil, fmt.Errorf("audio: polyphony %d must be at least 1", polyphony)
	}
	s := &Synth{
		rate:   sampleRate,
		voices: make(chan *Voice, polyphony),
		done:   make(chan struct{}),
	}
	for i := 0; i < polyphony; i++ {
		s.voices <- &Voice{synth: s}
	}
	return s, nil
}

// SampleRate returns the rate in Hz.
func (s *Synth) SampleRate() int { return s.rate }

// Acquire waits for a free voice. It fails once the synth is closed or ctx
// is done.
func (s *Synth) Acquire(ctx context.Context) (*Voice, error) {
	select {
	case <-s.done:
		return nil, ErrClosed
	default:
	}
	select {
	case v := <-s.voices:
		v.released = false
		return v, nil
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Render acquires a voice, renders the cue and releases the voice. The
// returned samples are a copy the caller owns.
func (s *Synth) Render(ctx context.Context, cue engine.Cue) ([]float32, error) {
	v, err := s.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	out, err := v.Render(cue)
	if err != nil {
		return nil, err
	}
	return append([]float32(nil), out...), nil
}

// Close stops handing out voices. Voices already acquired stay usable until
// released.
func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	return nil
}

// Voice renders one cue at a time into a reusable buffer.
type Voice struct {
	synth    *Synth
	buf      []float32
	released bool
}

// Render synthesises cue. The returned slice aliases the voice buffer and is
// only valid until the next Render or Release.
func (v *Voice) Render(cue engine.Cue) ([]float32, error) {
	if v.released {
		return nil, errors.New("audio: render on released voice")
	}
	r, ok := recipes[cue]
	if !ok {
		return nil, fmt.Errorf("audio: no sound for cue %q", cue)
	}
	n := int(r.seconds * float64(v.synth.rate))
	if cap(v.buf) < n {
		v.buf = make([]float32, n)
	}
	v.buf = v.buf[:n]
	clear(v.buf)
	r.render(v.buf, float64(v.synth.rate))
	return v.buf, nil
}

// Release returns the voice to its synth. Releasing twice is a no-op.
func (v *Voice) Release() {
	if v.released {
		return
	}
	v.released = true
	v.synth.mu.Lock()
	closed := v.synth.closed
	v.synth.mu.Unlock()
	if closed {
		return
	}
	v.synth.voices <- v
}
