package engine

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidConfig reports a mode configuration the engine cannot run with.
var ErrInvalidConfig = errors.New("invalid mode configuration")

// Defaults used when a mode leaves a table entry out.
var (
	DefaultWidth            = WidthRule{Fixed: 4}
	DefaultGlyph            = "♥"
	DefaultHighlighterAlpha = 0.4
	DefaultStampSize        = 36.0
	DefaultMarkerSize       = 32.0
)

// WidthRule yields a stroke width. A positive Fixed wins; otherwise the width
// is Scale times the current marker size.
type WidthRule struct {
	Scale float64 `yaml:"scale,omitempty"`
	Fixed float64 `yaml:"fixed,omitempty"`
}

// Resolve returns the width for the given marker size.
func (w WidthRule) Resolve(markerSize float64) float64 {
	if w.Fixed > 0 {
		return w.Fixed
	}
	return w.Scale * markerSize
}

// Glyph is a named stamp pattern.
type Glyph struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// Config parameterises one drawing mode.
type Config struct {
	Name       string
	Width      int
	Height     int
	Background color.RGBA
	Palette    []color.RGBA

	// ActivityThreshold is nil for modes whose transition never fires.
	ActivityThreshold *float64
	SegmentUnits      float64
	StampUnits        float64

	StampMinSpacing float64
	StampSize       float64

	StrokeWidths       map[Tool]WidthRule
	HighlighterOpacity float64
	Glyphs             []Glyph
	MarkerSize         float64

	GalleryEnabled bool

	// TerminalCue plays on entering the terminal state, ResetCue on every
	// explicit clear.
	TerminalCue Cue
	ResetCue    Cue
}

// Threshold is a convenience for building ActivityThreshold.
func Threshold(v float64) *float64 { return &v }

// Validate fills documented defaults and rejects configurations that have no
// sane fallback.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: mode %q has an empty palette", ErrInvalidConfig, c.Name)
	}
	if c.ActivityThreshold != nil && (!finite(*c.ActivityThreshold) || *c.ActivityThreshold < 0) {
		return fmt.Errorf("%w: negative activity threshold %v", ErrInvalidConfig, *c.ActivityThreshold)
	}
	for _, v := range []float64{c.StampMinSpacing, c.StampSize, c.MarkerSize, c.SegmentUnits, c.StampUnits, c.HighlighterOpacity} {
		if !finite(v) {
			return fmt.Errorf("%w: mode %q has a non-finite setting %v", ErrInvalidConfig, c.Name, v)
		}
	}
	if c.StampMinSpacing < 0 {
		return fmt.Errorf("%w: negative stamp spacing %v", ErrInvalidConfig, c.StampMinSpacing)
	}
	if c.SegmentUnits < 0 || c.StampUnits < 0 {
		return fmt.Errorf("%w: activity units must not be negative", ErrInvalidConfig)
	}
	c.Background.A = 255
	if c.StrokeWidths == nil {
		c.StrokeWidths = map[Tool]WidthRule{}
	}
	if _, ok := c.StrokeWidths[ToolPen]; !ok {
		c.StrokeWidths[ToolPen] = DefaultWidth
	}
	for tool, rule := range c.StrokeWidths {
		if !finite(rule.Fixed) || !finite(rule.Scale) || rule.Fixed < 0 || rule.Scale < 0 || (rule.Fixed == 0 && rule.Scale == 0) {
			return fmt.Errorf("%w: width rule for %s", ErrInvalidConfig, tool)
		}
	}
	if c.HighlighterOpacity <= 0 || c.HighlighterOpacity > 1 {
		c.HighlighterOpacity = DefaultHighlighterAlpha
	}
	if c.StampSize <= 0 {
		c.StampSize = DefaultStampSize
	}
	if c.MarkerSize <= 0 {
		c.MarkerSize = DefaultMarkerSize
	}
	if len(c.Glyphs) == 0 {
		c.Glyphs = []Glyph{{Name: "heart", Text: DefaultGlyph}}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Clone returns a deep copy so presets can be customised per instance.
func (c Config) Clone() Config {
	out := c
	out.Palette = append([]color.RGBA(nil), c.Palette...)
	out.Glyphs = append([]Glyph(nil), c.Glyphs...)
	if c.ActivityThreshold != nil {
		out.ActivityThreshold = Threshold(*c.ActivityThreshold)
	}
	if c.StrokeWidths != nil {
		out.StrokeWidths = make(map[Tool]WidthRule, len(c.StrokeWidths))
		for k, v := range c.StrokeWidths {
			out.StrokeWidths[k] = v
		}
	}
	return out
}
