package scene

import (
	"image"
	"image/color"
)

// Frame is a rendered image backed by a raw byte buffer: row-major, three
// interleaved 8-bit channels per pixel, all three carrying the same
// greyscale value. It implements image.Image so encoders can consume it
// without copying.
type Frame struct {
	width  int
	height int
	pix    []uint8
}

var _ image.Image = (*Frame)(nil)

// newFrame allocates a zeroed frame buffer of width*height*3 bytes.
func newFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// set writes v into all three channels of pixel (x, y).
func (f *Frame) set(x, y int, v uint8) {
	i := (y*f.width + x) * 3
	f.pix[i] = v
	f.pix[i+1] = v
	f.pix[i+2] = v
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Pix returns the underlying pixel buffer. The slice is not a copy;
// callers must treat it as read-only.
func (f *Frame) Pix() []uint8 { return f.pix }

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.width, f.height) }

// At implements image.Image. Out-of-bounds queries return transparent
// black, matching the stdlib image types.
func (f *Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return color.RGBA{}
	}
	i := (y*f.width + x) * 3
	return color.RGBA{R: f.pix[i], G: f.pix[i+1], B: f.pix[i+2], A: 0xff}
}
