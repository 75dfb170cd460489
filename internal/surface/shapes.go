package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/vector"
)

// pen traces a path given in unit coordinates, where the glyph box spans
// [-0.5, 0.5] on both axes with y pointing down.
type pen struct {
	z      *vector.Rasterizer
	cx, cy float32
	scale  float32
}

func (p pen) pt(x, y float32) (float32, float32) {
	return p.cx + x*p.scale, p.cy + y*p.scale
}

func (p pen) move(x, y float32) { p.z.MoveTo(p.pt(x, y)) }
func (p pen) line(x, y float32) { p.z.LineTo(p.pt(x, y)) }

func (p pen) cube(x1, y1, x2, y2, x3, y3 float32) {
	ax, ay := p.pt(x1, y1)
	bx, by := p.pt(x2, y2)
	cx, cy := p.pt(x3, y3)
	p.z.CubeTo(ax, ay, bx, by, cx, cy)
}

func (p pen) polygon(pts ...[2]float32) {
	p.move(pts[0][0], pts[0][1])
	for _, q := range pts[1:] {
		p.line(q[0], q[1])
	}
	p.z.ClosePath()
}

func (p pen) circle(x, y, r float32) {
	const k = 0.5523
	p.move(x+r, y)
	p.cube(x+r, y+k*r, x+k*r, y+r, x, y+r)
	p.cube(x-k*r, y+r, x-r, y+k*r, x-r, y)
	p.cube(x-r, y-k*r, x-k*r, y-r, x, y-r)
	p.cube(x+k*r, y-r, x+r, y-k*r, x+r, y)
	p.z.ClosePath()
}

// shapePart is one filled layer of a shape. Layers are rasterised separately
// so overlapping parts never cancel each other out.
type shapePart struct {
	fill  color.RGBA
	trace func(p pen)
}

// shapes holds vector artwork for stamp glyphs the font cannot draw. Keys are
// the glyph text without variation selectors.
var shapes = map[string][]shapePart{
	"\u2764": {{fill: color.RGBA{0xdd, 0x2e, 0x44, 0xff}, trace: traceHeart}},
	"\u2b50": {{fill: color.RGBA{0xff, 0xac, 0x33, 0xff}, trace: traceStar}},
	"\U0001F380": {
		{fill: color.RGBA{0xea, 0x59, 0x6e, 0xff}, trace: traceBowTails},
		{fill: color.RGBA{0xf4, 0x70, 0x8a, 0xff}, trace: traceBowLoops},
		{fill: color.RGBA{0xc4, 0x33, 0x55, 0xff}, trace: func(p pen) { p.circle(0, 0, 0.11) }},
	},
}

func traceHeart(p pen) {
	p.move(0, -0.22)
	p.cube(0, -0.47, -0.47, -0.47, -0.47, -0.16)
	p.cube(-0.47, 0.1, -0.16, 0.26, 0, 0.44)
	p.cube(0.16, 0.26, 0.47, 0.1, 0.47, -0.16)
	p.cube(0.47, -0.47, 0, -0.47, 0, -0.22)
	p.z.ClosePath()
}

func traceStar(p pen) {
	const outer, inner = 0.48, 0.19
	pts := make([][2]float32, 0, 10)
	for i := 0; i < 10; i++ {
		r := float32(outer)
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, [2]float32{r * float32(math.Cos(a)), r * float32(math.Sin(a)) + 0.04})
	}
	p.polygon(pts...)
}

func traceBowLoops(p pen) {
	p.move(0, 0)
	p.cube(-0.18, -0.34, -0.5, -0.36, -0.48, -0.06)
	p.cube(-0.47, 0.2, -0.2, 0.14, 0, 0)
	p.z.ClosePath()
	p.move(0, 0)
	p.cube(0.18, -0.34, 0.5, -0.36, 0.48, -0.06)
	p.cube(0.47, 0.2, 0.2, 0.14, 0, 0)
	p.z.ClosePath()
}

func traceBowTails(p pen) {
	p.polygon([2]float32{-0.04, 0.02}, [2]float32{-0.32, 0.46}, [2]float32{-0.16, 0.4}, [2]float32{0.02, 0.1})
	p.polygon([2]float32{-0.02, 0.1}, [2]float32{0.16, 0.4}, [2]float32{0.32, 0.46}, [2]float32{0.04, 0.02})
}

func shapeKey(glyph string) string {
	return strings.ReplaceAll(glyph, "\ufe0f", "")
}

// drawShape fills the vector artwork for glyph centred on at with a box of
// size pixels. It reports false when glyph has no artwork.
func drawShape(dst *image.RGBA, glyph string, at Point, size float64) bool {
	parts, ok := shapes[shapeKey(glyph)]
	if !ok {
		return false
	}
	side := int(math.Ceil(size)) + 2
	origin := image.Pt(int(math.Floor(at.X))-side/2, int(math.Floor(at.Y))-side/2)
	box := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(side, side))}
	p := pen{
		z:     vector.NewRasterizer(side, side),
		cx:    float32(at.X - float64(origin.X)),
		cy:    float32(at.Y - float64(origin.Y)),
		scale: float32(size),
	}
	mask := image.NewAlpha(image.Rect(0, 0, side, side))
	for _, part := range parts {
		p.z.Reset(side, side)
		part.trace(p)
		clear(mask.Pix)
		p.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
		draw.DrawMask(dst, box, image.NewUniform(part.fill), image.Point{}, mask, image.Point{}, draw.Over)
	}
	return true
}
