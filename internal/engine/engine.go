// Package engine implements the freehand drawing engine shared by the drawing
// modes: pointer marks become strokes or stamps on a raster surface, drawing
// activity accumulates until a one-shot threshold disables input, and clears
// optionally capture snapshots into a gallery.
//
// An Engine is not safe for concurrent use. Hosts deliver all events from a
// single goroutine.
package engine

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
)

// Engine is one drawing mode instance.
type Engine struct {
	cfg     Config
	surface Surface
	logger  *log.Logger

	ctrl    *Controller
	strokes *StrokeRenderer
	stamps  *StampPlacer
	gallery *Gallery

	tool       Tool
	color      color.RGBA
	markerSize float64
	pattern    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transitions and captures.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCueSink sets the notification sink.
func WithCueSink(s CueSink) Option {
	return func(e *Engine) { e.ctrl.sink = s }
}

// New validates cfg and builds an engine. surf may be nil; drawing calls are
// ignored until Mount supplies one.
func New(cfg Config, surf Surface, opts ...Option) (*Engine, error) {
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:        cfg,
		logger:     log.Default(),
		gallery:    NewGallery(),
		tool:       ToolPen,
		color:      cfg.Palette[0],
		markerSize: cfg.MarkerSize,
		pattern:    cfg.Glyphs[0].Name,
	}
	e.ctrl = &Controller{
		surface:     e.currentSurface,
		background:  cfg.Background,
		activity:    NewAccumulator(cfg.ActivityThreshold),
		terminalCue: cfg.TerminalCue,
		resetCue:    cfg.ResetCue,
	}
	e.strokes = &StrokeRenderer{surface: e.currentSurface, ctrl: e.ctrl, units: cfg.SegmentUnits}
	e.stamps = &StampPlacer{surface: e.currentSurface, ctrl: e.ctrl, units: cfg.StampUnits, spacing: cfg.StampMinSpacing}
	for _, o := range opts {
		o(e)
	}
	e.ctrl.logger = e.logger
	if surf != nil {
		e.Mount(surf)
	}
	return e, nil
}

func (e *Engine) currentSurface() Surface { return e.surface }

// Mount attaches the surface and fills it with the background colour.
func (e *Engine) Mount(s Surface) {
	e.surface = s
	if s != nil {
		s.FillBackground(e.cfg.Background)
	}
}

// Mounted reports whether a surface is attached.
func (e *Engine) Mounted() bool { return e.surface != nil }

// Config returns a copy of the active configuration.
func (e *Engine) Config() Config { return e.cfg.Clone() }

// NativeSize is the surface size in pixels.
func (e *Engine) NativeSize() image.Point { return image.Pt(e.cfg.Width, e.cfg.Height) }

// Down starts a mark at the client-space point p shown inside view.
func (e *Engine) Down(p Point, view Box) {
	e.endMark()
	if e.surface == nil || !e.ctrl.CanDraw() {
		return
	}
	at := Map(p, view, e.NativeSize())
	st := e.Style()
	if st.Tool.Stamps() {
		e.stamps.Begin(at, st)
	} else {
		e.strokes.Begin(at, st)
	}
	e.logger.Debug("mark begin", "tool", st.Tool, "x", at.X, "y", at.Y)
}

// Move continues the active mark. Moves without an active mark are ignored.
func (e *Engine) Move(p Point, view Box) {
	at := Map(p, view, e.NativeSize())
	var crossed bool
	switch {
	case e.strokes.Active():
		crossed = e.strokes.Continue(at)
	case e.stamps.Active():
		crossed = e.stamps.Continue(at)
	default:
		return
	}
	if crossed {
		e.endMark()
		e.ctrl.Trip()
	}
}

// Up finalises the active mark.
func (e *Engine) Up() { e.endMark() }

// Leave cancels the active mark when the pointer leaves the surface. It
// finalises exactly like Up.
func (e *Engine) Leave() { e.endMark() }

// Drawing reports whether a mark is in progress.
func (e *Engine) Drawing() bool { return e.strokes.Active() || e.stamps.Active() }

func (e *Engine) endMark() {
	e.strokes.End()
	e.stamps.End()
}

// Style returns the rendering parameters for the current tool selection.
func (e *Engine) Style() Style {
	return e.cfg.StyleFor(e.tool, e.color, e.markerSize, e.pattern)
}

// SetTool selects the tool used by the next mark.
func (e *Engine) SetTool(t Tool) error {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Errorf("unknown tool %d", int(t))
	}
	e.tool = t
	return nil
}

// Tool returns the selected tool.
func (e *Engine) Tool() Tool { return e.tool }

// SetColor selects the stroke colour. Alpha is ignored.
func (e *Engine) SetColor(col color.RGBA) {
	col.A = 255
	e.color = col
}

// SetPaletteColor selects the i-th palette colour.
func (e *Engine) SetPaletteColor(i int) error {
	if i < 0 || i >= len(e.cfg.Palette) {
		return fmt.Errorf("palette index %d out of range [0,%d)", i, len(e.cfg.Palette))
	}
	e.SetColor(e.cfg.Palette[i])
	return nil
}

// Color returns the selected colour.
func (e *Engine) Color() color.RGBA { return e.color }

// SetMarkerSize sets the base size that scaled tool widths multiply.
func (e *Engine) SetMarkerSize(size float64) error {
	if !finite(size) || size <= 0 {
		return fmt.Errorf("marker size %v must be a positive number", size)
	}
	e.markerSize = size
	return nil
}

// MarkerSize returns the base marker size.
func (e *Engine) MarkerSize() float64 { return e.markerSize }

// SetPattern selects a glyph from the mode's glyph set by name.
func (e *Engine) SetPattern(name string) error {
	for _, g := range e.cfg.Glyphs {
		if g.Name == name {
			e.pattern = name
			return nil
		}
	}
	return fmt.Errorf("mode %q has no pattern %q", e.cfg.Name, name)
}

// CyclePattern advances to the next glyph in the set and returns its name.
func (e *Engine) CyclePattern() string {
	gs := e.cfg.Glyphs
	for i, g := range gs {
		if g.Name == e.pattern {
			e.pattern = gs[(i+1)%len(gs)].Name
			return e.pattern
		}
	}
	e.pattern = gs[0].Name
	return e.pattern
}

// Pattern returns the selected pattern name.
func (e *Engine) Pattern() string { return e.pattern }

// Activity returns the current activity score.
func (e *Engine) Activity() float64 { return e.ctrl.activity.Score() }

// State returns the mode state.
func (e *Engine) State() State { return e.ctrl.State() }

// CanDraw reports whether marks are currently rendered.
func (e *Engine) CanDraw() bool { return e.ctrl.CanDraw() }

// Gallery returns the snapshot history.
func (e *Engine) Gallery() *Gallery { return e.gallery }

// Reset ends any mark, clears the surface and returns to idle.
func (e *Engine) Reset() {
	e.endMark()
	e.ctrl.Reset()
}

// Clear is the user-facing clear action. In modes with a gallery the surface
// is captured first; if the capture fails the surface is left untouched.
func (e *Engine) Clear() error {
	e.endMark()
	if e.cfg.GalleryEnabled && e.surface != nil {
		data, err := e.surface.ExportSnapshot()
		if err != nil {
			e.logger.Error("capture failed", "mode", e.cfg.Name, "err", err)
			return fmt.Errorf("capture snapshot: %w", err)
		}
		entry := e.gallery.Capture(data)
		e.logger.Info("captured", "mode", e.cfg.Name, "id", entry.ID, "entries", e.gallery.Len())
	}
	e.ctrl.Reset()
	return nil
}
