package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"
)

var white = color.RGBA{255, 255, 255, 255}

func newTestRaster(t *testing.T, w, h int) *Raster {
	t.Helper()
	r, err := NewRaster(w, h, white)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	return r
}

func TestNewRasterRejectsEmptySize(t *testing.T) {
	if _, err := NewRaster(0, 10, white); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestFillBackgroundForcesOpaque(t *testing.T) {
	r := newTestRaster(t, 4, 4)
	r.FillBackground(color.RGBA{10, 20, 30, 0})
	if got := r.Image().RGBAAt(2, 2); got != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("pixel = %+v, want opaque fill", got)
	}
}

func TestDrawLinePaintsSegmentAndRoundCaps(t *testing.T) {
	r := newTestRaster(t, 40, 40)
	red := color.RGBA{255, 0, 0, 255}
	r.DrawLine(Pt(10, 20), Pt(30, 20), 6, red, 1)

	if got := r.Image().RGBAAt(20, 20); got != red {
		t.Fatalf("midpoint = %+v, want %+v", got, red)
	}
	// Round cap extends past the endpoint by roughly half the width.
	if got := r.Image().RGBAAt(31, 20); got != red {
		t.Fatalf("cap pixel = %+v, want %+v", got, red)
	}
	if got := r.Image().RGBAAt(20, 30); got != white {
		t.Fatalf("pixel outside stroke = %+v, want background", got)
	}
}

func TestDrawLineOpacityBlendsOnce(t *testing.T) {
	r := newTestRaster(t, 20, 20)
	black := color.RGBA{0, 0, 0, 255}
	r.DrawLine(Pt(2, 10), Pt(18, 10), 8, black, 0.4)
	got := r.Image().RGBAAt(10, 10)
	// 255 * 0.6 = 153
	if got.R != 153 || got.G != 153 || got.B != 153 || got.A != 255 {
		t.Fatalf("blended pixel = %+v, want {153 153 153 255}", got)
	}
}

func TestDrawLineZeroOpacityIsNoop(t *testing.T) {
	r := newTestRaster(t, 10, 10)
	before := r.Snapshot()
	r.DrawLine(Pt(0, 0), Pt(9, 9), 4, color.RGBA{255, 0, 0, 255}, 0)
	if !bytes.Equal(before.Pix, r.Image().Pix) {
		t.Fatal("zero opacity changed pixels")
	}
}

func TestSurfaceStaysOpaque(t *testing.T) {
	r := newTestRaster(t, 30, 30)
	r.DrawLine(Pt(0, 0), Pt(29, 29), 12, color.RGBA{0, 200, 100, 10}, 0.3)
	r.DrawGlyph("♥", Pt(15, 15), 20, color.RGBA{200, 0, 0, 255})
	r.DrawGlyph("\U0001F380", Pt(5, 5), 20, color.RGBA{200, 0, 0, 255})
	pix := r.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, pix[i])
		}
	}
}

func TestDrawLineJointsBlendOnce(t *testing.T) {
	r := newTestRaster(t, 60, 40)
	red := color.RGBA{255, 0, 0, 255}
	r.DrawLine(Pt(10, 20), Pt(30, 20), 8, red, 0.4)
	r.DrawLine(Pt(30, 20), Pt(50, 20), 8, red, 0.4)

	mid := r.Image().RGBAAt(20, 20)
	joint := r.Image().RGBAAt(30, 20)
	if mid != (color.RGBA{255, 153, 153, 255}) {
		t.Fatalf("mid-segment pixel = %+v", mid)
	}
	if joint != mid {
		t.Fatalf("joint pixel = %+v, want %+v", joint, mid)
	}
}

func TestDrawLineSeparateStrokesOverlap(t *testing.T) {
	r := newTestRaster(t, 40, 40)
	red := color.RGBA{255, 0, 0, 255}
	r.DrawLine(Pt(20, 5), Pt(20, 35), 8, red, 0.4)
	r.DrawLine(Pt(5, 20), Pt(35, 20), 8, red, 0.4)
	// the second stroke does not start where the first ended
	if got := r.Image().RGBAAt(20, 20).G; got != 92 {
		t.Fatalf("crossing G = %d, want 92", got)
	}
}

// dotFor renders the fallback mark DrawGlyph uses for glyphs it cannot draw.
func dotFor(t *testing.T, at Point, size float64, col color.RGBA) []byte {
	t.Helper()
	r := newTestRaster(t, 60, 60)
	r.DrawLine(at, at, math.Max(size/4, 1)*2, col, 1)
	return r.Image().Pix
}

func TestDrawGlyphRendersArtwork(t *testing.T) {
	ink := color.RGBA{0, 90, 200, 255}
	for _, glyph := range []string{"♥", "❤️", "⭐", "\U0001F380"} {
		t.Run(glyph, func(t *testing.T) {
			if !Drawable(glyph) {
				t.Fatalf("Drawable(%q) = false", glyph)
			}
			r := newTestRaster(t, 60, 60)
			before := r.Snapshot()
			r.DrawGlyph(glyph, Pt(30, 30), 36, ink)
			if bytes.Equal(before.Pix, r.Image().Pix) {
				t.Fatalf("glyph %q left the surface unchanged", glyph)
			}
			if bytes.Equal(dotFor(t, Pt(30, 30), 36, ink), r.Image().Pix) {
				t.Fatalf("glyph %q fell back to a dot", glyph)
			}
		})
	}
}

func TestDrawGlyphColours(t *testing.T) {
	ink := color.RGBA{0, 90, 200, 255}

	r := newTestRaster(t, 60, 60)
	r.DrawGlyph("♥", Pt(30, 30), 40, ink)
	if !hasColour(r, ink) {
		t.Fatal("font glyph not drawn in the stroke colour")
	}

	r = newTestRaster(t, 60, 60)
	r.DrawGlyph("⭐", Pt(30, 30), 40, ink)
	if hasColour(r, ink) || !hasColour(r, shapes["\u2b50"][0].fill) {
		t.Fatal("emoji artwork should keep its own colour")
	}
}

func TestDrawGlyphFallsBackToDot(t *testing.T) {
	const glyph = "\U0001F9FF"
	if Drawable(glyph) {
		t.Skipf("%q became drawable", glyph)
	}
	ink := color.RGBA{0, 90, 200, 255}
	r := newTestRaster(t, 60, 60)
	r.DrawGlyph(glyph, Pt(30, 30), 36, ink)
	if !bytes.Equal(dotFor(t, Pt(30, 30), 36, ink), r.Image().Pix) {
		t.Fatal("unknown glyph did not fall back to a dot in the stroke colour")
	}
}

func hasColour(r *Raster, col color.RGBA) bool {
	b := r.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r.Image().RGBAAt(x, y) == col {
				return true
			}
		}
	}
	return false
}

func TestExportSnapshotIsPNG(t *testing.T) {
	r := newTestRaster(t, 12, 8)
	data, err := r.ExportSnapshot()
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"on segment", Pt(5, 0), 0},
		{"above middle", Pt(5, 3), 3},
		{"past end", Pt(13, 4), 5},
		{"before start", Pt(-3, 4), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentDistance(tt.p, Pt(0, 0), Pt(10, 0)); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
