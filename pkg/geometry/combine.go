package geometry

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Combinators own their two children exclusively. A finished tree has no
// shared nodes and no cycles, so it is safe for concurrent queries.

// Union returns the boolean union of a and b. The child with the smaller
// signed distance supplies the whole sample, distance and emission
// together; a wins exact ties.
func Union(a, b Shape) Shape { return &union{a: a, b: b} }

// Intersect returns the boolean intersection of a and b. The child with
// the larger signed distance supplies the whole sample, so the emission
// always belongs to the boundary that produced the distance; a wins exact
// ties.
func Intersect(a, b Shape) Shape { return &intersect{a: a, b: b} }

// Subtract returns a with b carved out of it. The emission is always a's;
// b only removes geometry and never contributes its own surface values.
func Subtract(a, b Shape) Shape { return &subtract{a: a, b: b} }

// Round returns s with its boundary offset outward by r, rounding any
// corners. A negative r shrinks the shape instead.
func Round(s Shape, r float64) Shape { return &rounded{child: s, radius: r} }

type union struct {
	a, b Shape
}

func (u *union) SDF(p v2.Vec) Sample {
	sa := u.a.SDF(p)
	sb := u.b.SDF(p)
	if sa.SD <= sb.SD {
		return sa
	}
	return sb
}

type intersect struct {
	a, b Shape
}

func (i *intersect) SDF(p v2.Vec) Sample {
	sa := i.a.SDF(p)
	sb := i.b.SDF(p)
	if sa.SD >= sb.SD {
		return sa
	}
	return sb
}

type subtract struct {
	a, b Shape
}

func (s *subtract) SDF(p v2.Vec) Sample {
	sa := s.a.SDF(p)
	sb := s.b.SDF(p)
	sa.SD = max(sa.SD, -sb.SD)
	return sa
}

type rounded struct {
	child  Shape
	radius float64
}

func (r *rounded) SDF(p v2.Vec) Sample {
	s := r.child.SDF(p)
	s.SD -= r.radius
	return s
}
