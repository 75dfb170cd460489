package playground

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/vibes/internal/engine"
	"github.com/example/vibes/internal/render"
)

const (
	statusHeight = 24
	swatchSize   = 16
	maxWinWidth  = 1280
	maxWinHeight = 900
)

var (
	messageFaceOnce sync.Once
	messageFace     font.Face
)

func bannerFace() font.Face {
	messageFaceOnce.Do(func() {
		messageFace = basicfont.Face7x13
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return
		}
		messageFace = face
	})
	return messageFace
}

// InitialSize returns a window size that shows a surface of the given native
// size whole, shrunk to fit a typical desktop.
func InitialSize(native image.Point) image.Point {
	if native.X <= 0 || native.Y <= 0 {
		return image.Pt(maxWinWidth, maxWinHeight)
	}
	zoom := math.Min(1, math.Min(float64(maxWinWidth)/float64(native.X), float64(maxWinHeight-statusHeight)/float64(native.Y)))
	return image.Pt(int(float64(native.X)*zoom), int(float64(native.Y)*zoom)+statusHeight)
}

// Layout fits a surface of native size below the status bar of a window,
// keeping its aspect ratio and centring it in the remaining space.
func Layout(win, native image.Point) engine.Box {
	availW := float64(win.X)
	availH := float64(win.Y - statusHeight)
	if availW <= 0 || availH <= 0 || native.X <= 0 || native.Y <= 0 {
		return engine.Box{}
	}
	zoom := math.Min(availW/float64(native.X), availH/float64(native.Y))
	w := float64(native.X) * zoom
	h := float64(native.Y) * zoom
	return engine.Box{X: (availW - w) / 2, Y: statusHeight + (availH-h)/2, Width: w, Height: h}
}

func boxRect(b engine.Box) image.Rectangle {
	return image.Rect(int(math.Round(b.X)), int(math.Round(b.Y)), int(math.Round(b.X+b.Width)), int(math.Round(b.Y+b.Height)))
}

// Frame paints the whole window into dst.
func (s *Session) Frame(dst *image.RGBA) {
	th := s.Theme()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	var src image.Image = s.raster.Image()
	switch {
	case s.viewing && s.galleryImg != nil:
		src = s.galleryImg
	case s.eng.State() == engine.Terminal:
		if s.spill == nil {
			opts := render.DefaultSpillOptions()
			opts.Color = th.Spill
			opts.Rim = th.SpillRim
			s.spill = render.Spill(s.raster.Image(), opts)
		}
		src = s.spill
	default:
		s.spill = nil
	}
	if !s.view.Empty() {
		xdraw.NearestNeighbor.Scale(dst, boxRect(s.view), src, src.Bounds(), draw.Src, nil)
	}

	s.drawStatus(dst)
	if msg := s.Message(); msg != "" {
		drawBanner(dst, msg, th.StatusAlert)
	}
}

func (s *Session) status() string {
	cfg := s.eng.Config()
	text := fmt.Sprintf("%s  %s", cfg.Name, s.eng.Tool())
	if s.eng.Tool() == engine.ToolPattern {
		text += " " + s.eng.Pattern()
	}
	text += fmt.Sprintf("  size %g", s.eng.MarkerSize())
	if cfg.ActivityThreshold != nil {
		text += fmt.Sprintf("  activity %.0f/%.0f", s.eng.Activity(), *cfg.ActivityThreshold)
	}
	if cfg.GalleryEnabled {
		g := s.eng.Gallery()
		if s.viewing {
			text += fmt.Sprintf("  gallery %d/%d", g.Index()+1, g.Len())
		} else {
			text += fmt.Sprintf("  gallery %d", g.Len())
		}
	}
	return text
}

func (s *Session) drawStatus(dst *image.RGBA) {
	th := s.Theme()
	width := dst.Bounds().Dx()
	draw.Draw(dst, image.Rect(0, 0, width, statusHeight), image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13, Dot: fixed.P(6, 16)}
	d.DrawString(s.status())
	if s.eng.State() == engine.Terminal {
		d.Src = image.NewUniform(th.StatusAlert)
		d.DrawString("  DISABLED")
	}

	palette := s.eng.Config().Palette
	x := width - len(palette)*(swatchSize+4) - 2
	for _, col := range palette {
		r := image.Rect(x, (statusHeight-swatchSize)/2, x+swatchSize, (statusHeight+swatchSize)/2)
		draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
		border := th.SwatchBorder
		if col == s.eng.Color() {
			border = th.SwatchSelected
		}
		drawRect(dst, r, border, 2)
		x += swatchSize + 4
	}
}

func drawBanner(dst *image.RGBA, msg string, ink color.RGBA) {
	face := bannerFace()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ink), Face: face}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	width, height := dst.Bounds().Dx(), dst.Bounds().Dy()
	px := (width - wmsg) / 2
	py := (height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, image.NewUniform(color.RGBA{255, 255, 255, 230}), image.Point{}, draw.Over)
	drawRect(dst, rect, ink, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := image.NewUniform(col)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
