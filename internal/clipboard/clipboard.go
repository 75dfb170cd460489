// Package clipboard publishes drawings to the system clipboard as PNG.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

var errNotPNG = errors.New("clipboard data is not a PNG image")

// WriteImage encodes img as PNG and publishes it.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return WritePNG(buf.Bytes())
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func checkPNG(data []byte) error {
	if !bytes.HasPrefix(data, pngMagic) {
		return errNotPNG
	}
	return nil
}
