package geometry

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

var (
	_ Shape = (*Circle)(nil)
	_ Shape = (*Plane)(nil)
	_ Shape = (*Capsule)(nil)
	_ Shape = (*Rect)(nil)
	_ Shape = (*Triangle)(nil)
)

// ---------------------------------------------------------------------------
// Circle
// ---------------------------------------------------------------------------

// Circle is a disc with the given radius around Center.
type Circle struct {
	Center   v2.Vec
	Radius   float64
	Emissive float64
}

// NewCircle returns a circle with the given surface emission.
func NewCircle(center v2.Vec, radius, emissive float64) *Circle {
	return &Circle{Center: center, Radius: radius, Emissive: emissive}
}

func (c *Circle) SDF(p v2.Vec) Sample {
	return Sample{SD: p.Sub(c.Center).Length() - c.Radius, Emissive: c.Emissive}
}

// ---------------------------------------------------------------------------
// Plane
// ---------------------------------------------------------------------------

// Plane is the half-space behind the line through Point with outward
// normal Normal. Normal must have unit length; the reported distance
// scales with it otherwise.
type Plane struct {
	Point    v2.Vec
	Normal   v2.Vec
	Emissive float64
}

// NewPlane returns a half-space with the given surface emission.
func NewPlane(point, normal v2.Vec, emissive float64) *Plane {
	return &Plane{Point: point, Normal: normal, Emissive: emissive}
}

func (pl *Plane) SDF(p v2.Vec) Sample {
	return Sample{SD: p.Sub(pl.Point).Dot(pl.Normal), Emissive: pl.Emissive}
}

// ---------------------------------------------------------------------------
// Capsule
// ---------------------------------------------------------------------------

// Capsule is the set of points within Radius of the segment AB. A and B
// may coincide, in which case the capsule is a circle around A.
type Capsule struct {
	A        v2.Vec
	B        v2.Vec
	Radius   float64
	Emissive float64
}

// NewCapsule returns a capsule with the given surface emission.
func NewCapsule(a, b v2.Vec, radius, emissive float64) *Capsule {
	return &Capsule{A: a, B: b, Radius: radius, Emissive: emissive}
}

func (c *Capsule) SDF(p v2.Vec) Sample {
	return Sample{SD: segDist(p, c.A, c.B) - c.Radius, Emissive: c.Emissive}
}

// ---------------------------------------------------------------------------
// Rect
// ---------------------------------------------------------------------------

// Rect is a rectangle centered on Center, rotated by Theta radians, with
// half-extents HalfWidth and HalfHeight.
type Rect struct {
	Center     v2.Vec
	Theta      float64
	HalfWidth  float64
	HalfHeight float64
	Emissive   float64
}

// NewRect returns a rectangle with the given surface emission.
func NewRect(center v2.Vec, theta, halfWidth, halfHeight, emissive float64) *Rect {
	return &Rect{
		Center:     center,
		Theta:      theta,
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
		Emissive:   emissive,
	}
}

func (r *Rect) SDF(p v2.Vec) Sample {
	// Rotate the query into the rectangle's local frame.
	d := p.Sub(r.Center)
	cos, sin := math.Cos(r.Theta), math.Sin(r.Theta)
	local := v2.Vec{X: d.X*cos + d.Y*sin, Y: d.Y*cos - d.X*sin}

	dx := math.Abs(local.X) - r.HalfWidth
	dy := math.Abs(local.Y) - r.HalfHeight
	outside := v2.Vec{X: max(dx, 0), Y: max(dy, 0)}.Length()
	return Sample{SD: min(max(dx, dy), 0) + outside, Emissive: r.Emissive}
}

// ---------------------------------------------------------------------------
// Triangle
// ---------------------------------------------------------------------------

// Triangle is the filled triangle with vertices A, B, C. Either winding
// order works.
type Triangle struct {
	A        v2.Vec
	B        v2.Vec
	C        v2.Vec
	Emissive float64
}

// NewTriangle returns a triangle with the given surface emission.
func NewTriangle(a, b, c v2.Vec, emissive float64) *Triangle {
	return &Triangle{A: a, B: b, C: c, Emissive: emissive}
}

func (t *Triangle) SDF(p v2.Vec) Sample {
	d := min(
		segDist(p, t.A, t.B),
		segDist(p, t.B, t.C),
		segDist(p, t.C, t.A),
	)
	if t.contains(p) {
		d = -d
	}
	return Sample{SD: d, Emissive: t.Emissive}
}

// contains reports whether p lies inside the triangle: the edge cross
// products all share a sign when it does, whichever way the vertices wind.
func (t *Triangle) contains(p v2.Vec) bool {
	c1 := cross(t.B.Sub(t.A), p.Sub(t.A))
	c2 := cross(t.C.Sub(t.B), p.Sub(t.B))
	c3 := cross(t.A.Sub(t.C), p.Sub(t.C))
	return (c1 >= 0 && c2 >= 0 && c3 >= 0) || (c1 <= 0 && c2 <= 0 && c3 <= 0)
}
