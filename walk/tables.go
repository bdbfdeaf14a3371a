package walk

// Child indices follow the same bit-per-axis numbering as region.Subregion
// and cell.Cell: bit i of a child index selects the high (1) or low (0)
// side of axis i. The tables below describe how cellProc recurses into a
// cell's own children to find every internal face and edge they share --
// generated from that numbering rather than hand-transcribed, the same
// approach package topology uses for its corner/manifold tables.

// otherAxes returns the two axes other than a, in ascending order.
func otherAxes(a int) (b, c int) {
	axes := [3]int{0, 1, 2}
	var out []int
	for _, x := range axes {
		if x != a {
			out = append(out, x)
		}
	}
	return out[0], out[1]
}

// facePairs returns, for axis a, the 1<<(dims-1) pairs of sibling child
// indices that share an internal face perpendicular to a: the low-side
// child (bit a clear) and the high-side child (bit a set), agreeing on
// every other axis bit.
func facePairs(dims, a int) [][2]int {
	n := 1 << uint(dims)
	var pairs [][2]int
	for c := 0; c < n; c++ {
		if c&(1<<uint(a)) == 0 {
			pairs = append(pairs, [2]int{c, c | (1 << uint(a))})
		}
	}
	return pairs
}

// edgeGroup is 4 sibling child indices (3D only) that meet along a common
// internal edge running along axis a, ordered around the edge as a
// traversal loop (00 -> 10 -> 11 -> 01 over the two other axes' bits) so
// consecutive members share a face.
type edgeGroup struct {
	axis    int
	members [4]int
}

// edgeGroups returns the two edge groups (one per value of bit a) formed
// by a 3D cell's 8 children around their two internal central edges
// parallel to axis a.
func edgeGroups(a int) [2]edgeGroup {
	b, c := otherAxes(a)
	build := func(bitA int) edgeGroup {
		idx := func(bitB, bitC int) int {
			return (bitA << uint(a)) | (bitB << uint(b)) | (bitC << uint(c))
		}
		return edgeGroup{axis: a, members: [4]int{idx(0, 0), idx(1, 0), idx(1, 1), idx(0, 1)}}
	}
	return [2]edgeGroup{build(0), build(1)}
}
