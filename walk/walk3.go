package walk

import (
	"github.com/arl/xtree/cell"
	"github.com/arl/xtree/mesh"
)

// WalkMesh extracts a triangle mesh from a finalized 3D cell tree (spec.md
// §4.8). root must already have gone through Cell.Finalize.
func WalkMesh(root *cell.Cell) mesh.Mesh {
	w := &walker3{verts: newVertexRegistry()}
	w.cellProc(root)
	return mesh.Mesh{Vertices: w.verts.verts, Triangles: w.tris}
}

type walker3 struct {
	verts *vertexRegistry
	tris  []mesh.Triangle
}

// cellProc recurses into a BRANCH cell's own children to find every
// internal face and edge they share (Ju et al. cellProc).
func (w *walker3) cellProc(c *cell.Cell) {
	if c.Type != cell.Branch {
		return
	}
	for i := 0; i < 8; i++ {
		w.cellProc(c.Children[i])
	}
	for axis := 0; axis < 3; axis++ {
		for _, pair := range facePairs(3, axis) {
			w.faceProc(c.Children[pair[0]], c.Children[pair[1]], axis)
		}
		for _, grp := range edgeGroups(axis) {
			members := [4]edgeMember{}
			b, cc := otherAxes(axis)
			for i, bit := range [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
				members[i] = edgeMember{cell: c.Children[grp.members[i]], p: bit[0], q: bit[1]}
			}
			_ = b
			_ = cc
			w.edgeProc(members, axis, b, cc, true, true)
		}
	}
}

// edgeMember is one of the 4 cells meeting along a shared internal edge,
// at canonical loop position (p, q) relative to that edge's two
// perpendicular axes.
type edgeMember struct {
	cell *cell.Cell
	p, q int
}

// faceProc resolves the internal face shared by A (low side of axis) and
// B (high side), descending into whichever side is a BRANCH until both
// sides are leaf-ish, generating the 4 sub-faces plus the new internal
// edges that appear at the boundary between them.
func (w *walker3) faceProc(a, b *cell.Cell, axis int) {
	if a.Type != cell.Branch && b.Type != cell.Branch {
		return
	}
	p, q := otherAxes(axis)
	for _, combo := range [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		childA := childOrSelf(a, [2]int{axis, 1}, [2]int{p, combo[0]}, [2]int{q, combo[1]})
		childB := childOrSelf(b, [2]int{axis, 0}, [2]int{p, combo[0]}, [2]int{q, combo[1]})
		w.faceProc(childA, childB, axis)
	}
	// New internal edges at the A|B boundary: one family running along
	// each of the face's two in-plane axes.
	for _, perp := range [2]int{p, q} {
		fixedAxis := p
		if perp == p {
			fixedAxis = q
		}
		for fixedBit := 0; fixedBit < 2; fixedBit++ {
			members := [4]edgeMember{
				{cell: childOrSelf(a, [2]int{axis, 1}, [2]int{perp, 0}, [2]int{fixedAxis, fixedBit}), p: 0, q: 0},
				{cell: childOrSelf(a, [2]int{axis, 1}, [2]int{perp, 1}, [2]int{fixedAxis, fixedBit}), p: 1, q: 0},
				{cell: childOrSelf(b, [2]int{axis, 0}, [2]int{perp, 1}, [2]int{fixedAxis, fixedBit}), p: 1, q: 1},
				{cell: childOrSelf(b, [2]int{axis, 0}, [2]int{perp, 0}, [2]int{fixedAxis, fixedBit}), p: 0, q: 1},
			}
			// p is the member's side of perp; q is its side of axis
			// (0 = A, 1 = B).
			w.edgeProc(members, fixedAxis, perp, axis, true, false)
		}
	}
}

// edgeProc resolves the 4 cells sharing an internal edge that runs along
// edgeAxis, with axisP/axisQ the edge's two perpendicular axes. A member at
// loop position (p, q) touches the edge on its (1-p, 1-q) side, so each
// BRANCH member is replaced by its two children with those axisP/axisQ
// bits (one per half of the edge) and keeps its (p, q) position. flipP and
// flipQ do not affect the traversal.
func (w *walker3) edgeProc(members [4]edgeMember, edgeAxis, axisP, axisQ int, flipP, flipQ bool) {
	resolved := true
	for _, m := range members {
		if m.cell.Type == cell.Branch {
			resolved = false
			break
		}
	}
	if resolved {
		w.resolveEdge(members, edgeAxis, axisP, axisQ)
		return
	}
	for rBit := 0; rBit < 2; rBit++ {
		var next [4]edgeMember
		for i, m := range members {
			if m.cell.Type != cell.Branch {
				next[i] = m
				continue
			}
			idx := (rBit << uint(edgeAxis)) | ((1 - m.p) << uint(axisP)) | ((1 - m.q) << uint(axisQ))
			next[i] = edgeMember{cell: m.cell.Children[idx], p: m.p, q: m.q}
		}
		w.edgeProc(next, edgeAxis, axisP, axisQ, flipP, flipQ)
	}
}

// resolveEdge emits two triangles from the 4 (now leaf-ish) members'
// dual vertices if their shared edge crosses the surface.
func (w *walker3) resolveEdge(members [4]edgeMember, edgeAxis, axisP, axisQ int) {
	m0 := members[0]
	lowIdx := ((1 - m0.p) << uint(axisP)) | ((1 - m0.q) << uint(axisQ))
	highIdx := lowIdx | (1 << uint(edgeAxis))
	n := 1 << uint(m0.cell.Dims)
	if lowIdx >= n || highIdx >= n {
		return
	}
	low := m0.cell.Corners[lowIdx]
	high := m0.cell.Corners[highIdx]
	if low == high {
		return
	}
	for _, m := range members {
		if m.cell.Type != cell.Leaf {
			return
		}
	}
	i0 := w.verts.indexOf(members[0].cell)
	i1 := w.verts.indexOf(members[1].cell)
	i2 := w.verts.indexOf(members[2].cell)
	i3 := w.verts.indexOf(members[3].cell)
	// The members loop (0,0) -> (1,0) -> (1,1) -> (0,1) over (axisP, axisQ),
	// so triangle (i0, i1, i2) faces +edgeAxis exactly when (edgeAxis,
	// axisP, axisQ) is a cyclic order of (x, y, z).
	cyclic := axisP == (edgeAxis+1)%3
	if low == cyclic {
		w.tris = append(w.tris, mesh.Triangle{A: i0, B: i1, C: i2}, mesh.Triangle{A: i0, B: i2, C: i3})
	} else {
		w.tris = append(w.tris, mesh.Triangle{A: i0, B: i2, C: i1}, mesh.Triangle{A: i0, B: i3, C: i2})
	}
}
