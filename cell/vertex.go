package cell

import (
	"math"

	"github.com/arl/xtree/topology"
)

// solveVertex places the cell's dual vertex from its accumulated QEF,
// honoring the non-manifold fallback of spec.md §4.6: a non-manifold
// cell always gets its mass-point centroid and an infinite residual, so
// that branch collapse (§4.7) never merges through it.
func (c *Cell) solveVertex(p BuildParams) {
	c.Manifold = topology.Manifold(c.Dims, c.cornerMask())

	mp, ok := c.acc.MassPoint()
	if !ok {
		// No edge crossings were ever sampled: undersampled mixed-sign
		// leaf. Fall back to the cell's geometric center and report it
		// as non-manifold (spec.md §7).
		center := c.Sub.Center()
		c.Vert = center
		c.Rank = 0
		c.Manifold = false
		c.Error = math.Inf(1)
		return
	}

	if !c.Manifold {
		c.Vert = [3]float32{float32(mp[0]), float32(mp[1]), float32(mp[2])}
		c.Error = math.Inf(1)
		return
	}

	sol, err := c.acc.Solve(mp, p.RankThreshold)
	if err != nil {
		// Eigendecomposition failure on a well-posed 3x3/2x2 system is a
		// programmer error (e.g. a non-finite accumulation); fall back
		// the same way an undersampled leaf would rather than propagate
		// a render failure for one pathological cell.
		c.Vert = [3]float32{float32(mp[0]), float32(mp[1]), float32(mp[2])}
		c.Rank = 0
		c.Manifold = false
		c.Error = math.Inf(1)
		return
	}
	if sol.Rank == 0 {
		// s_max == 0: no usable gradient direction. Same fallback as a
		// non-manifold cell.
		c.Vert = [3]float32{float32(mp[0]), float32(mp[1]), float32(mp[2])}
		c.Rank = 0
		c.Manifold = false
		c.Error = math.Inf(1)
		return
	}

	c.Vert = [3]float32{float32(sol.Vertex[0]), float32(sol.Vertex[1]), float32(sol.Vertex[2])}
	c.Rank = sol.Rank
	c.Error = sol.Error
}

// cornerMask packs the cell's corner signs into a bitmask (bit i set
// means corner i is inside), the index into the topology package's
// cornerTable.
func (c *Cell) cornerMask() uint32 {
	var mask uint32
	n := 1 << uint(c.Dims)
	for i := 0; i < n; i++ {
		if c.Corners[i] {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
