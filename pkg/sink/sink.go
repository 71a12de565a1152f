// Package sink persists rendered frames as image files. The encoder is
// chosen by the output path's extension: .png (also the fallback for
// missing extensions), .bmp, and .tif/.tiff.
package sink

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat reports an output extension with no encoder.
var ErrUnsupportedFormat = errors.New("sink: unsupported image format")

// Write persists img at path, replacing any previous file there. Removal
// of the prior file is best-effort; a path that cannot be written surfaces
// through the create or encode step instead.
func Write(path string, img image.Image) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}

	_ = os.Remove(path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: create %s: %w", path, err)
	}
	if err := enc(f, img); err != nil {
		f.Close()
		return fmt.Errorf("sink: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sink: close %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the format implied by the extension of name.
// It exists so callers can stream to something other than a file.
func Encode(w io.Writer, name string, img image.Image) error {
	enc, err := encoderFor(name)
	if err != nil {
		return err
	}
	return enc(w, img)
}

func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", "":
		return encodePNG, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return encodeTIFF, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}
