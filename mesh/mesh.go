// Package mesh defines the output types the dual-contour walker emits: a
// triangle mesh for 3D renders and a set of polylines for 2D renders.
package mesh

// Vertex is a mesh vertex position in world coordinates.
type Vertex struct {
	X, Y, Z float32
}

// Triangle is three indices into a Mesh's Vertices, wound so that the
// normal (right-hand rule) points from inside (field < 0) to outside.
type Triangle struct {
	A, B, C int
}

// Mesh is the 3D render output: a deduplicated vertex sequence plus an
// ordered triangle list.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// Point2 is a 2D polyline vertex.
type Point2 struct {
	X, Y float32
}

// Polyline is an ordered sequence of 2D vertices. Closed reports whether
// the last vertex implicitly connects back to the first.
type Polyline struct {
	Points []Point2
	Closed bool
}

// Contours is the 2D render output: a set of open or closed polylines,
// oriented with the surface interior on the left of the direction of
// travel.
type Contours struct {
	Polylines []Polyline
}
