package geometry

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// sdfxShape adapts a 2D sdfx model to the Shape interface.
type sdfxShape struct {
	model    sdf.SDF2
	emissive float64
}

var _ Shape = (*sdfxShape)(nil)

// Wrap adapts any sdfx 2D model into a Shape with a constant surface
// emission, so models built with the sdfx package render like native
// primitives.
func Wrap(model sdf.SDF2, emissive float64) Shape {
	return &sdfxShape{model: model, emissive: emissive}
}

func (s *sdfxShape) SDF(p v2.Vec) Sample {
	return Sample{SD: s.model.Evaluate(p), Emissive: s.emissive}
}
