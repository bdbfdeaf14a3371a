// Package qef accumulates Hermite data (surface position + unit gradient)
// sampled on the edges of a leaf cell into a quadratic error function, and
// solves that QEF for the cell's dual vertex.
package qef

// Intersection is a Hermite data sample: a point on a cell edge and the
// unit surface gradient (normal) at that point.
type Intersection struct {
	Pos  [3]float32
	Grad [3]float32
}
