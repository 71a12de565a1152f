// Package geometry defines the signed-distance shape tree for lumen.
// A shape answers distance queries: given a point, it reports the signed
// distance to its nearest surface together with that surface's emission.
// Primitive shapes are combined with boolean operators into a binary tree
// owned by a single scene.
package geometry
