package engine

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Cue names a fire-and-forget audio/visual notification.
type Cue string

const (
	CueNone      Cue = ""
	CueSpill     Cue = "spill"
	CueExplosion Cue = "explosion"
	CueSuccess   Cue = "success"
	CueChaos     Cue = "chaos"
)

// Cues lists the known cues.
func Cues() []Cue { return []Cue{CueSpill, CueExplosion, CueSuccess, CueChaos} }

// ParseCue resolves a cue by name. The empty string and "none" map to CueNone.
func ParseCue(name string) (Cue, error) {
	switch name {
	case "", "none":
		return CueNone, nil
	}
	for _, c := range Cues() {
		if string(c) == name {
			return c, nil
		}
	}
	return CueNone, fmt.Errorf("unknown cue %q", name)
}

// CueSink receives notifications. Implementations must not block the caller
// for long; the engine does not wait on or retry them.
type CueSink interface {
	Cue(Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(Cue)

// Cue implements CueSink.
func (f CueFunc) Cue(c Cue) { f(c) }

// emit calls sink and swallows any panic so a failing notifier never aborts a
// state change.
func emit(sink CueSink, c Cue, logger *log.Logger) {
	if sink == nil || c == CueNone {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("cue sink failed", "cue", c, "err", r)
		}
	}()
	sink.Cue(c)
}
