package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/example/vibes/internal/engine"
)

func newTestSynth(t *testing.T, polyphony int) *Synth {
	t.Helper()
	s, err := New(8000, polyphony)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRenderCues(t *testing.T) {
	s := newTestSynth(t, 1)
	for _, cue := range engine.Cues() {
		t.Run(string(cue), func(t *testing.T) {
			samples, err := s.Render(context.Background(), cue)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if want := int(Duration(cue) * 8000); len(samples) != want {
				t.Fatalf("len = %d, want %d", len(samples), want)
			}
			var peak float64
			for _, v := range samples {
				if math.IsNaN(float64(v)) {
					t.Fatal("NaN sample")
				}
				peak = math.Max(peak, math.Abs(float64(v)))
			}
			if peak == 0 || peak > 1 {
				t.Fatalf("peak = %v, want (0,1]", peak)
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	s := newTestSynth(t, 2)
	a, _ := s.Render(context.Background(), engine.CueSpill)
	b, _ := s.Render(context.Background(), engine.CueSpill)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestRenderUnknownCue(t *testing.T) {
	s := newTestSynth(t, 1)
	if _, err := s.Render(context.Background(), engine.Cue("kazoo")); err == nil {
		t.Fatal("expected error")
	}
	// The voice came back despite the error.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := s.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after failed render: %v", err)
	}
	v.Release()
}

func TestAcquireWaitsForRelease(t *testing.T) {
	s := newTestSynth(t, 1)
	v, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := s.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	v.Release()
	v.Release()
	if _, err := v.Render(engine.CueChaos); err == nil {
		t.Fatal("render on released voice succeeded")
	}
	v2, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	v2.Release()
}

func TestCloseRejectsAcquire(t *testing.T) {
	s := newTestSynth(t, 1)
	v, _ := s.Acquire(context.Background())
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Render(engine.CueExplosion); err != nil {
		t.Fatalf("held voice unusable after close: %v", err)
	}
	v.Release()
	if _, err := s.Acquire(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal("second close failed")
	}
}

func TestNewRejectsBadParameters(t *testing.T) {
	if _, err := New(100, 1); err == nil {
		t.Fatal("expected error for low sample rate")
	}
	if _, err := New(8000, 0); err == nil {
		t.Fatal("expected error for zero polyphony")
	}
}

func TestSharedIsSingleton(t *testing.T) {
	if Shared() != Shared() {
		t.Fatal("Shared returned different synths")
	}
}

func TestWriteWAV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWAV(&buf, 8000, []float32{0, 1, -1, 2}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if len(data) != 44+8 {
		t.Fatalf("len = %d, want 52", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Fatalf("bad header %q", data[:44])
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 8000 {
		t.Fatalf("rate = %d", rate)
	}
	want := []int16{0, math.MaxInt16, -math.MaxInt16, math.MaxInt16}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(data[44+2*i:]))
		if got != w {
			t.Fatalf("sample %d = %d, want %d", i, got, w)
		}
	}
}
