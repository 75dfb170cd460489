package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
)

// Raster is a drawing surface backed by an *image.RGBA. Every pixel stays
// opaque: the background fill is forced to full alpha and all marks blend
// over it.
type Raster struct {
	img  *image.RGBA
	prev segment
}

// segment is the last line drawn. A line that continues it with the same
// style does not blend the shared pixels a second time.
type segment struct {
	from, to Point
	width    float64
	col      color.RGBA
	opacity  float64
	set      bool
}

func (s segment) continuedBy(from Point, width float64, col color.RGBA, opacity float64) bool {
	return s.set && s.to == from && s.width == width && s.col == col && s.opacity == opacity
}

// NewRaster allocates a width x height surface filled with bg.
func NewRaster(width, height int, bg color.RGBA) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface size %dx%d must be positive", width, height)
	}
	r := &Raster{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	r.FillBackground(bg)
	return r, nil
}

// Size reports the native pixel dimensions.
func (r *Raster) Size() image.Point { return r.img.Bounds().Size() }

// Image exposes the backing buffer. Callers must not retain it across
// mutations they do not own.
func (r *Raster) Image() *image.RGBA { return r.img }

// Snapshot returns a copy of the current contents.
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

// FillBackground replaces every pixel with col.
func (r *Raster) FillBackground(col color.RGBA) {
	r.prev = segment{}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(opaque(col)), image.Point{}, draw.Src)
}

// DrawLine composites a round-capped segment. Pixels inside the capsule of
// radius width/2 around the segment are blended once each, with a one pixel
// soft edge. opacity applies to this call only. When the segment continues the
// previous one with the same style, pixels the previous segment already
// covered are only topped up to the stronger of the two coverages, so joints
// of translucent strokes do not darken.
func (r *Raster) DrawLine(from, to Point, width float64, col color.RGBA, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	if width < 1 {
		width = 1
	}
	prev, chained := r.prev, r.prev.continuedBy(from, width, col, opacity)
	r.prev = segment{from: from, to: to, width: width, col: col, opacity: opacity, set: true}

	half := width / 2
	box := image.Rect(
		int(math.Floor(math.Min(from.X, to.X)-half-1)),
		int(math.Floor(math.Min(from.Y, to.Y)-half-1)),
		int(math.Ceil(math.Max(from.X, to.X)+half+1)),
		int(math.Ceil(math.Max(from.Y, to.Y)+half+1)),
	).Intersect(r.img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			c := Point{float64(x) + 0.5, float64(y) + 0.5}
			a := coverage(c, from, to, half) * opacity
			if a <= 0 {
				continue
			}
			if chained {
				if done := coverage(c, prev.from, prev.to, half) * opacity; done > 0 {
					if a <= done {
						continue
					}
					a = (a - done) / (1 - done)
				}
			}
			r.blend(x, y, col, a)
		}
	}
}

// coverage is the fraction of the pixel centred on c inside the capsule.
func coverage(c, from, to Point, half float64) float64 {
	cover := half + 0.5 - segmentDistance(c, from, to)
	if cover <= 0 {
		return 0
	}
	return math.Min(cover, 1)
}

// DrawGlyph renders glyph centred at at with a box of size pixels. Emoji with
// built-in artwork keep their own colours, font glyphs are drawn in col, and
// anything else becomes a dot in col so a stamp always leaves a mark.
func (r *Raster) DrawGlyph(glyph string, at Point, size float64, col color.RGBA) {
	r.prev = segment{}
	defer func() { r.prev = segment{} }()
	if glyph == "" || size <= 0 {
		return
	}
	if drawShape(r.img, glyph, at, size) || drawText(r.img, glyph, at, size, opaque(col)) {
		return
	}
	radius := math.Max(size/4, 1)
	r.DrawLine(at, at, radius*2, col, 1)
}

// Drawable reports whether glyph is drawn as itself rather than as the
// fallback dot.
func Drawable(glyph string) bool {
	if _, ok := shapes[shapeKey(glyph)]; ok {
		return true
	}
	return hasGlyphs(glyph)
}

// ExportSnapshot encodes the current contents as PNG.
func (r *Raster) ExportSnapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.img); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Raster) blend(x, y int, col color.RGBA, a float64) {
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	p[0] = mix(p[0], col.R, a)
	p[1] = mix(p[1], col.G, a)
	p[2] = mix(p[2], col.B, a)
	p[3] = 255
}

func mix(dst, src uint8, a float64) uint8 {
	v := float64(dst)*(1-a) + float64(src)*a
	return uint8(math.Round(v))
}

func opaque(col color.RGBA) color.RGBA {
	col.A = 255
	return col
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(Point{a.X + t*dx, a.Y + t*dy})
}
