package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func whiteFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func TestSpillLeavesSourceUntouched(t *testing.T) {
	img := whiteFrame(80, 60)
	before := append([]byte(nil), img.Pix...)
	out := Spill(img, DefaultSpillOptions())
	if !bytes.Equal(before, img.Pix) {
		t.Fatal("Spill modified its input")
	}
	if out == img {
		t.Fatal("Spill returned its input")
	}
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
}

func TestSpillCoversCentre(t *testing.T) {
	opts := DefaultSpillOptions()
	opts.Dim = 0
	out := Spill(whiteFrame(120, 90), opts)
	c := out.RGBAAt(60, 45)
	if c.R > 180 || c.A != 255 {
		t.Fatalf("centre pixel = %+v, want puddle brown", c)
	}
	if corner := out.RGBAAt(0, 0); corner != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("corner pixel = %+v, want untouched", corner)
	}
}

func TestSpillProgressZeroOnlyDims(t *testing.T) {
	opts := DefaultSpillOptions()
	opts.Progress = 0
	opts.Dim = 0
	img := whiteFrame(20, 20)
	out := Spill(img, opts)
	if !bytes.Equal(out.Pix, img.Pix) {
		t.Fatal("zero progress drew a puddle")
	}
}

func TestSpillIsReproducible(t *testing.T) {
	a := Spill(whiteFrame(50, 50), DefaultSpillOptions())
	b := Spill(whiteFrame(50, 50), DefaultSpillOptions())
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("same seed produced different puddles")
	}
}

func TestSpillRebasesOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 30, 30))
	out := Spill(img, DefaultSpillOptions())
	if out.Bounds().Min != (image.Point{}) || out.Bounds().Dx() != 20 {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if Spill(nil, DefaultSpillOptions()) != nil {
		t.Fatal("nil input should yield nil")
	}
}

func TestBlurGraySpreads(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 5))
	src.SetGray(2, 2, color.Gray{Y: 255})
	out := blurGray(src, 1)
	if out.GrayAt(2, 2).Y == 0 || out.GrayAt(1, 2).Y == 0 || out.GrayAt(3, 3).Y == 0 {
		t.Fatalf("blur did not spread: %v", out.Pix)
	}
	if out.GrayAt(0, 0).Y != 0 {
		t.Fatal("blur reached beyond its radius")
	}
}
