package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"
)

// SpillOptions configures the coffee spill overlay.
type SpillOptions struct {
	// Color fills the puddle; its alpha sets the puddle opacity.
	Color color.RGBA
	// Rim outlines the puddle edge.
	Rim color.RGBA
	// Radius is the blur radius that softens the puddle edge.
	Radius int
	// Blobs is the number of overlapping drops forming the puddle.
	Blobs int
	// Seed makes the puddle shape reproducible.
	Seed uint64
	// Progress grows the puddle from 0 (nothing) to 1 (full size).
	Progress float64
	// Dim washes the frame underneath towards grey, 0 leaves it untouched.
	Dim float64
}

// DefaultSpillOptions returns a brown puddle covering most of the frame.
func DefaultSpillOptions() SpillOptions {
	return SpillOptions{
		Color:    color.RGBA{0x6f, 0x4e, 0x37, 230},
		Rim:      color.RGBA{0x3e, 0x27, 0x23, 255},
		Radius:   12,
		Blobs:    9,
		Seed:     1200,
		Progress: 1,
		Dim:      0.6,
	}
}

// Spill returns a copy of img with a blurred puddle composited over it. img
// is never modified. The result has a zero origin.
func Spill(img *image.RGBA, opts SpillOptions) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	dst := image.NewRGBA(b.Sub(b.Min))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	if dst.Bounds().Empty() {
		return dst
	}
	if opts.Dim > 0 {
		dim(dst, math.Min(opts.Dim, 1))
	}
	progress := math.Max(0, math.Min(opts.Progress, 1))
	if progress == 0 || opts.Blobs <= 0 {
		return dst
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	mask := puddleMask(dst.Bounds().Size(), opts.Blobs, opts.Seed, progress)
	soft := blurGray(mask, radius)
	rim := rimMask(soft)

	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(opaque(opts.Rim)), image.Point{}, rim, image.Point{}, draw.Over)
	fill := scaleMask(soft, float64(opts.Color.A)/255)
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(opaque(opts.Color)), image.Point{}, fill, image.Point{}, draw.Over)
	return dst
}

// puddleMask draws overlapping discs spreading from the frame centre.
func puddleMask(size image.Point, blobs int, seed uint64, progress float64) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, size.X, size.Y))
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	cx, cy := float64(size.X)/2, float64(size.Y)/2
	base := math.Min(float64(size.X), float64(size.Y)) / 3
	fillDisc(mask, cx, cy, base*0.6*progress)
	for i := 0; i < blobs; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * base * 0.9
		r := base * (0.35 + 0.5*rng.Float64()) * progress
		x := cx + math.Cos(angle)*dist*progress
		y := cy + math.Sin(angle)*dist*progress
		fillDisc(mask, x, y, r)
	}
	return mask
}

func fillDisc(mask *image.Gray, cx, cy, r float64) {
	if r <= 0 {
		return
	}
	box := image.Rect(int(cx-r), int(cy-r), int(cx+r)+1, int(cy+r)+1).Intersect(mask.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				mask.Pix[mask.PixOffset(x, y)] = 0xff
			}
		}
	}
}

// rimMask keeps the band where the blurred edge is partially covered.
func rimMask(soft *image.Gray) *image.Alpha {
	out := image.NewAlpha(soft.Bounds())
	for i, v := range soft.Pix {
		if v > 40 && v < 200 {
			out.Pix[i] = 0xff
		}
	}
	return out
}

func scaleMask(src *image.Gray, f float64) *image.Alpha {
	out := image.NewAlpha(src.Bounds())
	for i, v := range src.Pix {
		out.Pix[i] = uint8(float64(v)*f + 0.5)
	}
	return out
}

// dim blends every pixel towards its grey value and lightens it, like a
// faded print.
func dim(img *image.RGBA, amount float64) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
		grey := 0.299*r + 0.587*g + 0.114*b
		for c, v := range [3]float64{r, g, b} {
			v = v + (grey-v)*0.3*amount
			v = v + (255-v)*0.6*amount
			img.Pix[i+c] = uint8(math.Round(v))
		}
	}
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp.Pix[tmpStart+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}

	return dst
}
