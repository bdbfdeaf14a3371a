package walk

import (
	"github.com/arl/xtree/cell"
	"github.com/arl/xtree/mesh"
)

// WalkContours extracts 2D contour polylines from a finalized quadtree
// (spec.md §4.8's 2D case): a "face" between two quadtree neighbors is
// itself the shared edge, so no separate edgeProc layer is needed --
// segments are emitted directly wherever the two cells' shared corners
// disagree in sign.
func WalkContours(root *cell.Cell) mesh.Contours {
	w := &walker2{points: make(map[*cell.Cell]int)}
	w.cellProc(root)
	return assemblePolylines(w.points2, w.segs)
}

type walker2 struct {
	points  map[*cell.Cell]int
	points2 []mesh.Point2
	segs    [][2]int
}

func (w *walker2) pointIndex(c *cell.Cell) int {
	if i, ok := w.points[c]; ok {
		return i
	}
	i := len(w.points2)
	w.points2 = append(w.points2, mesh.Point2{X: c.Vert[0], Y: c.Vert[1]})
	w.points[c] = i
	return i
}

func (w *walker2) cellProc(c *cell.Cell) {
	if c.Type != cell.Branch {
		return
	}
	for i := 0; i < 4; i++ {
		w.cellProc(c.Children[i])
	}
	for axis := 0; axis < 2; axis++ {
		for _, pair := range facePairs(2, axis) {
			w.faceProc(c.Children[pair[0]], c.Children[pair[1]], axis)
		}
	}
}

func (w *walker2) faceProc(a, b *cell.Cell, axis int) {
	if a.Type != cell.Branch && b.Type != cell.Branch {
		w.resolveSegment(a, b, axis)
		return
	}
	other := otherAxis2D(axis)
	for bit := 0; bit < 2; bit++ {
		childA := childOrSelf(a, [2]int{axis, 1}, [2]int{other, bit})
		childB := childOrSelf(b, [2]int{axis, 0}, [2]int{other, bit})
		w.faceProc(childA, childB, axis)
	}
}

func (w *walker2) resolveSegment(a, b *cell.Cell, axis int) {
	other := otherAxis2D(axis)
	lowIdx := (1 << uint(axis)) | (0 << uint(other))
	highIdx := (1 << uint(axis)) | (1 << uint(other))
	low := a.Corners[lowIdx]
	high := a.Corners[highIdx]
	if low == high {
		return
	}
	if a.Type != cell.Leaf || b.Type != cell.Leaf {
		return
	}
	ia, ib := w.pointIndex(a), w.pointIndex(b)
	// a -> b runs along +axis; its left side is +y for axis 0 and -x for
	// axis 1, so the interior (the low end of other when low is set) is on
	// the left going a -> b only for axis 1.
	if low == (axis == 1) {
		w.segs = append(w.segs, [2]int{ia, ib})
	} else {
		w.segs = append(w.segs, [2]int{ib, ia})
	}
}

// assemblePolylines walks the directed segment graph into chains: a
// chain closes when it returns to its own start vertex, otherwise it
// stays open (its endpoints lie on the boundary of the sampled region).
func assemblePolylines(points []mesh.Point2, segs [][2]int) mesh.Contours {
	next := make(map[int]int, len(segs))
	hasIncoming := make(map[int]bool, len(segs))
	for _, s := range segs {
		next[s[0]] = s[1]
		hasIncoming[s[1]] = true
	}
	visited := make(map[int]bool, len(segs))
	var out mesh.Contours

	emit := func(start int) {
		var poly mesh.Polyline
		cur := start
		for {
			poly.Points = append(poly.Points, points[cur])
			visited[cur] = true
			nxt, ok := next[cur]
			if !ok {
				break
			}
			if nxt == start {
				poly.Closed = true
				break
			}
			if visited[nxt] {
				break
			}
			cur = nxt
		}
		if len(poly.Points) > 1 {
			out.Polylines = append(out.Polylines, poly)
		}
	}

	// Open chains first: start from vertices with no incoming edge.
	for v := range next {
		if !hasIncoming[v] && !visited[v] {
			emit(v)
		}
	}
	// Remaining closed loops.
	for v := range next {
		if !visited[v] {
			emit(v)
		}
	}
	return out
}
