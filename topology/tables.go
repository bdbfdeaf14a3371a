// Package topology provides the corner/edge adjacency tables the core
// dual-contouring algorithm needs to test whether a cell's corner sign
// pattern is safe to collapse or walk across without flipping an induced
// edge's sign (spec.md §4.7, §9).
//
// Tables are generated at package init() rather than hand-transcribed:
// for a hypercube of dimension dims, two corners (indices 0..2^dims-1)
// are adjacent iff their indices differ in exactly one bit, and a corner
// sign pattern is "manifold" iff both its inside-corner set and its
// outside-corner set induce at most one connected component under that
// adjacency. This is the literal reading of the manifold-cell definition
// and is reproducible for any dims without a reference table.
package topology

// supportedDims are the only cell dimensions the kernel ever builds
// (2D quadtree contours, 3D octree meshes); tables are precomputed for
// both at init.
var supportedDims = [...]int{2, 3}

// edgeTables[dims] is the list of corner-index pairs that differ in
// exactly one bit, i.e. the edges of the dims-cube.
var edgeTables = map[int][][2]int{}

// cornerTables[dims] is indexed by a corner sign bitmask (bit c set means
// corner c is "inside"); true means that pattern is manifold-safe.
var cornerTables = map[int][]bool{}

func init() {
	for _, dims := range supportedDims {
		edgeTables[dims] = buildEdges(dims)
		cornerTables[dims] = buildCornerTable(dims, edgeTables[dims])
	}
}

// NumCorners returns 2^dims, the corner count of a dims-dimensional cell.
func NumCorners(dims int) int {
	return 1 << uint(dims)
}

// CellEdges returns the corner-index pairs forming the edges of a
// dims-dimensional cell (differing in exactly one bit of their index,
// matching the corner numbering in package region).
func CellEdges(dims int) [][2]int {
	return edgeTables[dims]
}

// Manifold reports whether the corner sign pattern mask (bit c set means
// corner c is inside the surface) is safe to treat as a single connected
// inside/outside region pair.
func Manifold(dims int, mask uint32) bool {
	return cornerTables[dims][mask]
}

func buildEdges(dims int) [][2]int {
	n := 1 << uint(dims)
	var edges [][2]int
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if popcount(a^b) == 1 {
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	return edges
}

func popcount(v int) int {
	c := 0
	for v != 0 {
		c += v & 1
		v >>= 1
	}
	return c
}

// buildCornerTable evaluates, for every possible sign mask over
// 2^dims corners, whether both the inside set and the outside set form
// at most one connected component under edges.
func buildCornerTable(dims int, edges [][2]int) []bool {
	n := 1 << uint(dims)
	patterns := 1 << uint(n)
	table := make([]bool, patterns)
	for mask := 0; mask < patterns; mask++ {
		table[mask] = componentCount(mask, n, edges) <= 1 &&
			componentCount(^mask&(patterns-1), n, edges) <= 1
	}
	return table
}

// componentCount returns the number of connected components formed by
// the corners whose bit is set in set, restricted to edges between two
// set corners.
func componentCount(set, n int, edges [][2]int) int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, e := range edges {
		a, b := e[0], e[1]
		if set&(1<<uint(a)) != 0 && set&(1<<uint(b)) != 0 {
			union(a, b)
		}
	}

	roots := map[int]bool{}
	for c := 0; c < n; c++ {
		if set&(1<<uint(c)) != 0 {
			roots[find(c)] = true
		}
	}
	return len(roots)
}
