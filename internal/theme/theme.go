package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the built-in themes, one per drawing mode.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the colours of the playground window chrome around the
// drawing surface.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the surface
	Foreground color.RGBA // Status text

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
	StatusAlert      color.RGBA // Terminal state and easter egg banners

	// Swatches
	SwatchBorder   color.RGBA
	SwatchSelected color.RGBA

	// Spill overlay drawn over the surface while drawing is disabled
	Spill    color.RGBA
	SpillRim color.RGBA
}

// Default returns the hardcoded neutral theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{220, 220, 220, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		StatusBackground: color.RGBA{200, 200, 200, 255},
		StatusText:       color.RGBA{0, 0, 0, 255},
		StatusAlert:      color.RGBA{200, 0, 60, 255},
		SwatchBorder:     color.RGBA{0, 0, 0, 255},
		SwatchSelected:   color.RGBA{255, 255, 255, 255},
		Spill:            color.RGBA{0x6f, 0x4e, 0x37, 230},
		SpillRim:         color.RGBA{0x3e, 0x27, 0x23, 255},
	}
}
