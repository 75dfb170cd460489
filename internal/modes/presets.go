// Package modes is the mode host: it holds the drawing mode presets, resolves
// text commands and key sequences to modes, and loads user presets.
package modes

import (
	"image/color"

	"github.com/example/vibes/internal/engine"
)

// Names of the built-in drawing modes.
const (
	Coffee = "coffee"
	Wiggly = "wiggly"
)

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// CoffeePreset is the latte-art canvas. Drawing too much spills the coffee.
func CoffeePreset() engine.Config {
	return engine.Config{
		Name:              Coffee,
		Width:             1600,
		Height:            1200,
		Background:        white,
		Palette:           []color.RGBA{hex(0x4e342e), hex(0xff0055), hex(0x00ccaa), hex(0xffcc00)},
		ActivityThreshold: engine.Threshold(1200),
		SegmentUnits:      1,
		StampUnits:        15,
		StampMinSpacing:   55,
		StampSize:         45,
		StrokeWidths: map[engine.Tool]engine.WidthRule{
			engine.ToolPen:    {Fixed: 4},
			engine.ToolMarker: {Fixed: 24},
			engine.ToolEraser: {Fixed: 4},
		},
		HighlighterOpacity: 0.4,
		Glyphs:             []engine.Glyph{{Name: "heart", Text: "❤️"}},
		MarkerSize:         32,
		TerminalCue:        engine.CueSpill,
		ResetCue:           engine.CueSuccess,
	}
}

// WigglyPreset is the paint canvas with a gallery of obliterated creations.
func WigglyPreset() engine.Config {
	return engine.Config{
		Name:            Wiggly,
		Width:           1400,
		Height:          1000,
		Background:      white,
		Palette:         []color.RGBA{hex(0x1a2b3c), hex(0xff0055), hex(0x00ccaa), hex(0xffcc00)},
		SegmentUnits:    1,
		StampUnits:      15,
		StampMinSpacing: 40,
		StampSize:       36,
		StrokeWidths: map[engine.Tool]engine.WidthRule{
			engine.ToolPen:         {Scale: 1},
			engine.ToolMarker:      {Scale: 6},
			engine.ToolHighlighter: {Scale: 8},
			engine.ToolEraser:      {Fixed: 35},
		},
		HighlighterOpacity: 0.4,
		Glyphs: []engine.Glyph{
			{Name: "kitty", Text: "🎀"},
			{Name: "star", Text: "⭐"},
			{Name: "heart", Text: "❤️"},
		},
		MarkerSize:     32,
		GalleryEnabled: true,
		ResetCue:       engine.CueExplosion,
	}
}
