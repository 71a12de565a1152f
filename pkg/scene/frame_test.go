package scene

import (
	"image"
	"image/color"
	"testing"
)

func TestFrameBufferLayout(t *testing.T) {
	f := newFrame(4, 3)
	if len(f.Pix()) != 4*3*3 {
		t.Fatalf("len(Pix) = %d, want %d", len(f.Pix()), 4*3*3)
	}

	f.set(1, 2, 200)
	i := (2*4 + 1) * 3
	for c := 0; c < 3; c++ {
		if f.Pix()[i+c] != 200 {
			t.Errorf("byte %d = %d, want 200", i+c, f.Pix()[i+c])
		}
	}
	// Neighbors untouched.
	if f.Pix()[i-1] != 0 || f.Pix()[i+3] != 0 {
		t.Error("set wrote outside its pixel slot")
	}
}

func TestFrameImplementsImage(t *testing.T) {
	f := newFrame(5, 4)
	f.set(3, 1, 99)

	if got, want := f.Bounds(), image.Rect(0, 0, 5, 4); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	if f.ColorModel() != color.RGBAModel {
		t.Error("ColorModel is not RGBAModel")
	}

	if got, want := f.At(3, 1), (color.RGBA{R: 99, G: 99, B: 99, A: 0xff}); got != want {
		t.Errorf("At(3,1) = %v, want %v", got, want)
	}
	if got, want := f.At(0, 0), (color.RGBA{A: 0xff}); got != want {
		t.Errorf("At(0,0) = %v, want %v", got, want)
	}
	if got, want := f.At(-1, 0), (color.RGBA{}); got != want {
		t.Errorf("At(-1,0) = %v, want %v", got, want)
	}
	if got, want := f.At(5, 0), (color.RGBA{}); got != want {
		t.Errorf("At(5,0) = %v, want %v", got, want)
	}
}
