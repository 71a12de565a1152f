package scene

import (
	"bytes"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/glowfield/lumen/pkg/geometry"
)

func TestRenderBufferShape(t *testing.T) {
	s, err := New(testShape(), 16, 9, WithSampleCount(4), WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f := s.Render()
	if f.Width() != 16 || f.Height() != 9 {
		t.Errorf("frame = %dx%d, want 16x9", f.Width(), f.Height())
	}
	if len(f.Pix()) != 16*9*3 {
		t.Errorf("len(Pix) = %d, want %d", len(f.Pix()), 16*9*3)
	}
}

func TestRenderChannelsAreEqual(t *testing.T) {
	s, err := New(testShape(), 12, 8, WithSampleCount(8), WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pix := s.Render().Pix()
	for i := 0; i < len(pix); i += 3 {
		if pix[i] != pix[i+1] || pix[i] != pix[i+2] {
			t.Fatalf("pixel %d channels differ: %d %d %d", i/3, pix[i], pix[i+1], pix[i+2])
		}
	}
}

func TestRenderSameSeedIsReproducible(t *testing.T) {
	root := geometry.NewCircle(v2.Vec{X: 10, Y: 8}, 4, 1)
	render := func() []uint8 {
		s, err := New(root, 20, 16, WithSampleCount(16), WithSeed(99))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return s.Render().Pix()
	}

	if !bytes.Equal(render(), render()) {
		t.Error("two renders with the same seed differ")
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	root := geometry.Union(
		geometry.NewCircle(v2.Vec{X: 8, Y: 8}, 5, 1),
		geometry.NewRect(v2.Vec{X: 20, Y: 10}, 0.4, 4, 2, 2),
	)
	render := func(workers int) []uint8 {
		s, err := New(root, 28, 20,
			WithSampleCount(16),
			WithSeed(7),
			WithWorkers(workers),
		)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return s.Render().Pix()
	}

	sequential := render(1)
	for _, workers := range []int{2, 4, 8} {
		if !bytes.Equal(render(workers), sequential) {
			t.Errorf("render with %d workers differs from sequential", workers)
		}
	}
}

func TestRenderSaturatesAtFullEmission(t *testing.T) {
	// emissive 2.0 surrounding every pixel: mean 2.0 clamps to 255.
	root := geometry.NewCircle(v2.Vec{X: 5, Y: 4}, 1000, 2)
	s, err := New(root, 10, 8, WithSampleCount(4), WithSeed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, v := range s.Render().Pix() {
		if v != 255 {
			t.Fatalf("byte %d = %d, want saturated 255", i, v)
		}
	}
}

func TestRenderUnreachableSceneIsBlack(t *testing.T) {
	// The only shape sits far beyond the image diagonal: every sample's
	// first advance already exceeds it, so the frame is exact zeroes.
	root := geometry.NewCircle(v2.Vec{X: -2000, Y: -2000}, 10, 1)
	s, err := New(root, 64, 48, WithSampleCount(4), WithSeed(11))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, v := range s.Render().Pix() {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}

func TestRenderWithConstantStreams(t *testing.T) {
	// A constant-jitter stream pins every sample; a fully covered scene
	// with emissive 0.5 must produce exactly 127 everywhere.
	root := geometry.NewCircle(v2.Vec{X: 0, Y: 0}, 1000, 0.5)
	s, err := New(root, 6, 4,
		WithSampleCount(8),
		WithStreams(constStreams(0.5)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, v := range s.Render().Pix() {
		if v != 127 {
			t.Fatalf("byte %d = %d, want 127", i, v)
		}
	}
}
