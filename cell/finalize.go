package cell

import (
	"github.com/arl/xtree/eval"
	"github.com/arl/xtree/qef"
	"github.com/arl/xtree/topology"
)

// Finalize recurses bottom-up over the subtree, computing leaf vertices
// and (when FlagCollapse is set) simplifying branches whose children
// merge safely into a single leaf (spec.md §4.4).
func (c *Cell) Finalize(e eval.Evaluator, p BuildParams) {
	n := 1 << uint(c.Dims)

	switch c.Type {
	case Empty, Full:
		c.Level = 0

	case Branch:
		maxLevel := -1
		for i := 0; i < n; i++ {
			ch := c.Children[i]
			ch.Finalize(e, p)
			if ch.Level > maxLevel {
				maxLevel = ch.Level
			}
			c.Corners[i] = ch.Corners[i]
		}
		c.Level = maxLevel + 1
		if p.Flags&FlagCollapse != 0 {
			c.collapseBranch(p)
		}

	case Leaf:
		allSame := true
		for i := 1; i < n; i++ {
			if c.Corners[i] != c.Corners[0] {
				allSame = false
				break
			}
		}
		if allSame {
			if c.Corners[0] {
				c.Type = Full
			} else {
				c.Type = Empty
			}
			c.Level = 0
			return
		}

		c.findIntersections(e, p)
		c.solveVertex(p)
		c.Level = 0
	}
}

// collapseBranch implements spec.md §4.7: a branch collapses to EMPTY,
// FULL, or (when every child is a manifold non-branch and the merge
// would not flip any induced edge's sign) a single LEAF with the
// rank-preserving aggregate QEF solution.
func (c *Cell) collapseBranch(p BuildParams) {
	n := 1 << uint(c.Dims)

	allEmpty, allFull, anyBranch := true, true, false
	for i := 0; i < n; i++ {
		switch c.Children[i].Type {
		case Empty:
			allFull = false
		case Full:
			allEmpty = false
		default:
			allEmpty, allFull = false, false
			if c.Children[i].Type == Branch {
				anyBranch = true
			}
		}
	}

	switch {
	case allEmpty:
		c.Type = Empty
		c.Children = [8]*Cell{}
		return
	case allFull:
		c.Type = Full
		c.Children = [8]*Cell{}
		return
	case anyBranch:
		return
	}

	if !topology.Manifold(c.Dims, c.cornerMask()) {
		return
	}
	for i := 0; i < n; i++ {
		if ch := c.Children[i]; ch.Type == Leaf && !ch.Manifold {
			return
		}
	}
	if !c.leafTopologySafe() {
		return
	}

	agg := c.findBranchMatrices()
	mp, ok := agg.MassPoint()
	if !ok {
		return
	}
	sol, err := agg.Solve(mp, p.RankThreshold)
	if err != nil {
		return
	}
	if sol.Error >= p.CollapseErrorThreshold {
		return
	}

	c.Type = Leaf
	c.Vert = [3]float32{float32(sol.Vertex[0]), float32(sol.Vertex[1]), float32(sol.Vertex[2])}
	c.Rank = sol.Rank
	c.Manifold = true
	c.Error = sol.Error
	c.acc = *agg
	c.Children = [8]*Cell{}
}

// findBranchMatrices sums AtA/AtB/BtB from every child (EMPTY/FULL
// children contribute an untouched, all-zero accumulator) and the mass
// point from only the children sharing the maximum child rank --
// rank-preserving aggregation that keeps sharp features from being
// smoothed out by lower-rank neighbors.
func (c *Cell) findBranchMatrices() *qef.Accumulator {
	n := 1 << uint(c.Dims)
	agg := qef.NewAccumulator(c.Dims)

	maxRank := 0
	for i := 0; i < n; i++ {
		if r := c.Children[i].Rank; r > maxRank {
			maxRank = r
		}
	}
	for i := 0; i < n; i++ {
		ch := c.Children[i]
		agg.AddMatrices(&ch.acc)
		if ch.Rank == maxRank {
			agg.AddMass(&ch.acc)
		}
	}
	return agg
}

// leafTopologySafe checks, for every parent edge, that the two children
// owning its endpoints agree on the sign at the shared sub-edge midpoint
// (spec.md §4.7's derived leafTopology predicate).
func (c *Cell) leafTopologySafe() bool {
	for _, edge := range topology.CellEdges(c.Dims) {
		a, b := edge[0], edge[1]
		if c.Children[a].Corners[b] != c.Children[b].Corners[a] {
			return false
		}
	}
	return true
}
