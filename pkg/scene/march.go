package scene

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// march sphere-traces one ray from (ox, oy) along the unit direction
// (dx, dy) and returns its light contribution: the emission of the surface
// it lands on, or 0 when the ray escapes the image diagonal or runs out of
// steps. Each step advances by the queried distance, which an SDF
// guarantees never overshoots a surface.
func (s *Scene) march(ox, oy, dx, dy float64) float64 {
	dist := 0.0
	for step := 0; step < s.cfg.maxStep; step++ {
		q := s.root.SDF(v2.Vec{X: ox + dx*dist, Y: oy + dy*dist})
		if q.SD < Epsilon {
			return q.Emissive
		}
		dist += q.SD
		if dist >= s.maxDist {
			break
		}
	}
	return 0
}

// samplePixel estimates the light arriving at (x, y). Directions are
// stratified: the circle is divided into sampleCount equal buckets and one
// jittered angle is drawn per bucket.
func (s *Scene) samplePixel(x, y float64, src Source) float64 {
	n := s.cfg.sampleCount
	sum := 0.0
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * (float64(i) + src.Float64()) / float64(n)
		sum += s.march(x, y, math.Cos(theta), math.Sin(theta))
	}
	return sum / float64(n)
}

// quantize maps a mean light estimate to an 8-bit channel value,
// saturating at both ends.
func quantize(v float64) uint8 {
	v *= 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
