package geometry

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Sample is the result of a single distance query: the signed distance to
// the nearest surface (negative inside, zero on the boundary, positive
// outside) and the emission of the surface that produced it. The distance
// is a lower bound on the true distance to any surface, which is what
// makes it a safe sphere-tracing step.
type Sample struct {
	SD       float64
	Emissive float64
}

// Shape is implemented by every primitive and combinator. SDF must be
// pure: the same point always yields the same Sample, and concurrent
// queries are safe because a finished tree is never mutated.
type Shape interface {
	SDF(p v2.Vec) Sample
}

// cross returns the scalar 2D cross product of a and b.
func cross(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// clamp01 clamps t to the unit interval.
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// segDist returns the distance from p to the segment ab. A zero-length
// segment degenerates to the point a, so the projection is never divided
// by zero.
func segDist(p, a, b v2.Vec) float64 {
	ab := b.Sub(a)
	t := 0.0
	if den := ab.Length2(); den > 0 {
		t = clamp01(p.Sub(a).Dot(ab) / den)
	}
	return p.Sub(a.Add(ab.MulScalar(t))).Length()
}
