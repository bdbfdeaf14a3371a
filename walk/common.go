// Package walk implements the dual-contour tree walker (spec.md §4.8): it
// descends the finished XTree via the classic cellProc/faceProc/edgeProc
// recursive traversal, gathering the cells adjacent to every internal
// face (3D and 2D) and edge (3D only) and emitting triangles or line
// segments from their dual vertices wherever the shared feature crosses
// the surface.
package walk

import (
	"github.com/arl/xtree/cell"
	"github.com/arl/xtree/mesh"
)

// childOrSelf returns c's child at the index built from the given
// (axis, bit) pairs if c is a BRANCH, or c itself otherwise -- the
// "stop descending once a leaf-ish cell is reached" rule every
// traversal in this package follows.
func childOrSelf(c *cell.Cell, axisBits ...[2]int) *cell.Cell {
	if c.Type != cell.Branch {
		return c
	}
	idx := 0
	for _, ab := range axisBits {
		idx |= ab[1] << uint(ab[0])
	}
	return c.Children[idx]
}

// otherAxis2D returns the single axis other than a for a 2D (quadtree)
// traversal.
func otherAxis2D(a int) int {
	if a == 0 {
		return 1
	}
	return 0
}

// vertexRegistry deduplicates leaf cells into a Mesh's vertex sequence:
// one entry per distinct *cell.Cell, since a LEAF's dual vertex is
// shared by every triangle/edge touching it.
type vertexRegistry struct {
	index map[*cell.Cell]int
	verts []mesh.Vertex
}

func newVertexRegistry() *vertexRegistry {
	return &vertexRegistry{index: make(map[*cell.Cell]int)}
}

func (r *vertexRegistry) indexOf(c *cell.Cell) int {
	if i, ok := r.index[c]; ok {
		return i
	}
	i := len(r.verts)
	r.verts = append(r.verts, mesh.Vertex{X: c.Vert[0], Y: c.Vert[1], Z: c.Vert[2]})
	r.index[c] = i
	return i
}
