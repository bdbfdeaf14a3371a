// Package cell implements the XTree node: one octree (3D) or quadtree (2D)
// cell, its recursive construction against an Evaluator, and the
// bottom-up finalization that computes QEF-based dual vertices and
// performs topology-safe branch collapse.
package cell

import (
	"github.com/arl/assertgo"
	"github.com/arl/xtree/eval"
	"github.com/arl/xtree/qef"
	"github.com/arl/xtree/region"
)

// asInterval converts a region-space [lo, hi] pair into the eval
// package's Interval type.
func asInterval(lo, hi float32) eval.Interval {
	return eval.Interval{Lo: lo, Hi: hi}
}

// Type is a cell's classification.
type Type int

const (
	// Empty cells lie entirely outside the surface (all corners false).
	Empty Type = iota
	// Full cells lie entirely inside the surface (all corners true).
	Full
	// Leaf cells straddle the surface and carry a dual vertex.
	Leaf
	// Branch cells own 1<<Dims children.
	Branch
)

func (t Type) String() string {
	switch t {
	case Empty:
		return "EMPTY"
	case Full:
		return "FULL"
	case Leaf:
		return "LEAF"
	case Branch:
		return "BRANCH"
	default:
		return "UNKNOWN"
	}
}

// Flags controls optional construction/finalization behavior.
type Flags uint32

const (
	// FlagNoJitter disables the extra jittered Hermite samples normally
	// taken around each edge intersection.
	FlagNoJitter Flags = 1 << iota
	// FlagCollapse enables branch simplification during finalize.
	FlagCollapse
)

// BuildParams carries the tunable knobs the spec leaves as Open Questions
// (SEARCH_COUNT, JITTER_COUNT, batch width N) plus the rank/collapse
// thresholds, so that cell construction and finalization never hardcode
// them. The root package's Config is the source of these values at the
// API boundary; this package only consumes plain scalars to stay free of
// an import cycle.
type BuildParams struct {
	SearchCount            int
	JitterCount            int
	BatchWidth             int
	RankThreshold          float64
	CollapseErrorThreshold float64
	Flags                  Flags
}

// Cell is one node of the XTree: tag, corner signs, children (BRANCH
// only), dual vertex (LEAF only), and the bookkeeping finalize needs
// (level, rank, manifold flag, QEF accumulator).
type Cell struct {
	Dims int

	Type     Type
	Corners  [8]bool
	Children [8]*Cell

	Sub region.Subregion

	Vert     [3]float32
	Level    int
	Rank     int
	Manifold bool
	Error    float64

	intersections []qef.Intersection
	acc           qef.Accumulator
}

// Populate constructs a cell (and, recursively, its subtree) over sub
// using e for interval and point evaluation, per spec.md §4.3.
func Populate(e eval.Evaluator, sub region.Subregion, p BuildParams) *Cell {
	c := &Cell{Dims: sub.Dims(), Type: Leaf, Sub: sub, acc: qef.Accumulator{Dims: sub.Dims()}}

	if sub.CanSplitEven() {
		lo, hi := sub.Lower(), sub.Upper()
		iv := e.Eval(asInterval(lo[0], hi[0]), asInterval(lo[1], hi[1]), asInterval(lo[2], hi[2]))
		switch {
		case iv.Hi < 0:
			c.Type = Full
			for i := range c.Corners {
				c.Corners[i] = true
			}
			return c
		case iv.Lo >= 0:
			c.Type = Empty
			return c
		default:
			e.Push()
			children := sub.SplitEven()
			n := 1 << uint(sub.Dims())
			assert.True(n <= len(children), "SplitEven should return at least 1<<Dims children, got %d want >=%d", len(children), n)
			for i := 0; i < n; i++ {
				c.Children[i] = Populate(e, children[i], p)
				assert.True(c.Children[i] != nil, "child %d should not be nil", i)
			}
			e.Pop()
			c.Type = Branch
			return c
		}
	}

	c.populateLeafCorners(e, sub)
	return c
}

// populateLeafCorners batch-evaluates the cell's corners and records their
// signs (value < 0 is inside).
func (c *Cell) populateLeafCorners(e eval.Evaluator, sub region.Subregion) {
	n := 1 << uint(sub.Dims())
	assert.True(n == 4 || n == 8, "leaf corner count should be 4 (2D) or 8 (3D), got %d", n)
	for i := 0; i < n; i++ {
		p := sub.Corner(i)
		e.SetRaw(p[0], p[1], p[2], i)
	}
	vals := e.Values(n)
	for i := 0; i < n; i++ {
		c.Corners[i] = vals[i] < 0
	}
}
