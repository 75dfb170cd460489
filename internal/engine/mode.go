package engine

import (
	"image/color"

	"github.com/charmbracelet/log"
)

// State is the drawing mode state.
type State int

const (
	Idle State = iota
	Terminal
)

func (s State) String() string {
	if s == Terminal {
		return "terminal"
	}
	return "idle"
}

// Controller owns the idle/terminal state and is the single source of truth
// for whether drawing is currently permitted.
type Controller struct {
	state       State
	surface     func() Surface
	background  color.RGBA
	activity    *Accumulator
	sink        CueSink
	terminalCue Cue
	resetCue    Cue
	logger      *log.Logger
}

// Surface is the raster primitive the engine draws through.
type Surface interface {
	FillBackground(col color.RGBA)
	DrawLine(from, to Point, width float64, col color.RGBA, opacity float64)
	DrawGlyph(glyph string, at Point, size float64, col color.RGBA)
	ExportSnapshot() ([]byte, error)
}

// CanDraw reports whether marks may currently be rendered.
func (c *Controller) CanDraw() bool { return c.state == Idle }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Trip enters the terminal state and emits the terminal cue. Tripping an
// already terminal controller does nothing.
func (c *Controller) Trip() {
	if c.state == Terminal {
		return
	}
	c.state = Terminal
	c.logger.Info("drawing disabled", "score", c.activity.Score())
	emit(c.sink, c.terminalCue, c.logger)
}

// Reset clears the surface to its background, zeroes the activity and
// returns to idle. The reset cue plays on every call.
func (c *Controller) Reset() {
	if s := c.surface(); s != nil {
		s.FillBackground(c.background)
	}
	c.activity.Reset()
	c.state = Idle
	emit(c.sink, c.resetCue, c.logger)
}
