//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
)

func resetInit() {
	initOnce = sync.Once{}
	initErr = nil
}

func TestHeadlessWritesFail(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	writes := map[string]func() error{
		"image": func() error { return WriteImage(img) },
		"png":   func() error { return WritePNG(append([]byte(nil), pngMagic...)) },
	}
	for name, write := range writes {
		t.Run(name, func(t *testing.T) {
			resetInit()
			if err := write(); !errors.Is(err, errNoDisplay) {
				t.Fatalf("err = %v, want errNoDisplay", err)
			}
			// the failure is latched for the process
			if err := write(); !errors.Is(err, errNoDisplay) {
				t.Fatalf("second write err = %v", err)
			}
		})
	}
}
