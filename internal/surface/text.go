package surface

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	glyphFontOnce sync.Once
	glyphFont     *opentype.Font
	glyphFontErr  error
	glyphFaces    sync.Map // map[float64]font.Face
)

func loadGlyphFont() (*opentype.Font, error) {
	glyphFontOnce.Do(func() {
		glyphFont, glyphFontErr = opentype.Parse(goregular.TTF)
	})
	return glyphFont, glyphFontErr
}

func faceForSize(size float64) (font.Face, error) {
	f, err := loadGlyphFont()
	if err != nil {
		return nil, err
	}
	size = math.Round(size*4) / 4
	if face, ok := glyphFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := glyphFaces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// drawText renders text centred on at. It reports false when the face has no
// glyph for any rune of text, leaving dst untouched.
func drawText(dst *image.RGBA, text string, at Point, size float64, ink color.RGBA) bool {
	face, err := faceForSize(size)
	if err != nil {
		return false
	}
	if !hasGlyphs(text) {
		return false
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ink), Face: face}
	width := d.MeasureString(text)
	m := face.Metrics()
	// Centre horizontally on the advance and vertically on the ascent/descent
	// box, like a canvas with textAlign=center, textBaseline=middle.
	x := fixed.Int26_6(math.Round(at.X*64)) - width/2
	y := fixed.Int26_6(math.Round(at.Y*64)) + (m.Ascent-m.Descent)/2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(text)
	return true
}

// hasGlyphs reports whether the font maps at least one visible rune of text
// to a real glyph. Index 0 is .notdef.
func hasGlyphs(text string) bool {
	f, err := loadGlyphFont()
	if err != nil {
		return false
	}
	var buf sfnt.Buffer
	for _, r := range text {
		if r == '\ufe0f' || r == '\u200d' {
			continue
		}
		if idx, err := f.GlyphIndex(&buf, r); err == nil && idx != 0 {
			return true
		}
	}
	return false
}
