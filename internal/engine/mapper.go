package engine

import (
	"image"

	"github.com/example/vibes/internal/surface"
)

// Point is a position in surface space.
type Point = surface.Point

// Box is the displayed bounding box of a surface in client coordinates.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether the box has no displayed area.
func (b Box) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Map converts a client-space point into surface space given the displayed
// box and the native pixel size. The box must be supplied per event since
// layout can change between events. An empty box or native size yields the
// origin.
func Map(client Point, box Box, native image.Point) Point {
	if box.Empty() || native.X <= 0 || native.Y <= 0 {
		return Point{}
	}
	return Point{
		X: (client.X - box.X) * (float64(native.X) / box.Width),
		Y: (client.Y - box.Y) * (float64(native.Y) / box.Height),
	}
}
