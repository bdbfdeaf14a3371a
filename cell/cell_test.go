package cell

import (
	"testing"

	"github.com/arl/xtree/eval"
	"github.com/arl/xtree/region"
)

func defaultParams(flags Flags) BuildParams {
	return BuildParams{
		SearchCount:            16,
		JitterCount:             8,
		BatchWidth:              16,
		RankThreshold:           0.1,
		CollapseErrorThreshold:  1e-8,
		Flags:                   flags,
	}
}

func plane() *eval.Expr {
	return eval.Sub(eval.X(), eval.Const(0.5))
}

func sphere(r float32) *eval.Expr {
	return eval.Sub(eval.Add(eval.Add(eval.Square(eval.X()), eval.Square(eval.Y())), eval.Square(eval.Z())), eval.Const(r*r))
}

func cubeRegion(t *testing.T, lo, hi float32, res float32) region.Subregion {
	t.Helper()
	r, err := region.NewRegion3(
		region.Interval{Lo: lo, Hi: hi},
		region.Interval{Lo: lo, Hi: hi},
		region.Interval{Lo: lo, Hi: hi},
		res,
	)
	if err != nil {
		t.Fatalf("NewRegion3: %v", err)
	}
	return r.PowerOfTwo()
}

func TestPopulateFullyInsideIsFull(t *testing.T) {
	sub := cubeRegion(t, -0.1, 0.1, 20)
	e := eval.NewEvaluator(sphere(1), 16)
	c := Populate(e, sub, defaultParams(0))
	if c.Type != Full {
		t.Fatalf("expected FULL, got %v", c.Type)
	}
	for i, in := range c.Corners {
		if !in {
			t.Errorf("corner %d should be inside for a FULL cell", i)
		}
	}
}

func TestPopulateFullyOutsideIsEmpty(t *testing.T) {
	sub := cubeRegion(t, 5, 6, 4)
	e := eval.NewEvaluator(sphere(1), 16)
	c := Populate(e, sub, defaultParams(0))
	if c.Type != Empty {
		t.Fatalf("expected EMPTY, got %v", c.Type)
	}
	for i, in := range c.Corners {
		if in {
			t.Errorf("corner %d should be outside for an EMPTY cell", i)
		}
	}
}

func TestFinalizeLeafVertexNearPlane(t *testing.T) {
	sub := cubeRegion(t, -1, 1, 2)
	e := eval.NewEvaluator(plane(), 16)
	c := Populate(e, sub, defaultParams(0))
	c.Finalize(e, defaultParams(0))

	walkLeaves(c, func(leaf *Cell) {
		if leaf.Type != Leaf {
			return
		}
		if d := leaf.Vert[0] - 0.5; d < -0.3 || d > 0.3 {
			t.Errorf("leaf vertex.x = %v, want close to 0.5", leaf.Vert[0])
		}
	})
}

func TestFinalizeInvariants(t *testing.T) {
	sub := cubeRegion(t, -1, 1, 4)
	e := eval.NewEvaluator(sphere(0.5), 16)
	c := Populate(e, sub, defaultParams(FlagCollapse))
	c.Finalize(e, defaultParams(FlagCollapse))

	var check func(*Cell)
	check = func(cell *Cell) {
		n := 1 << uint(cell.Dims)
		switch cell.Type {
		case Empty:
			for i := 0; i < n; i++ {
				if cell.Corners[i] {
					t.Errorf("EMPTY cell has an inside corner")
				}
			}
		case Full:
			for i := 0; i < n; i++ {
				if !cell.Corners[i] {
					t.Errorf("FULL cell has an outside corner")
				}
			}
		case Branch:
			for i := 0; i < n; i++ {
				ch := cell.Children[i]
				if cell.Corners[i] != ch.Corners[i] {
					t.Errorf("branch corner %d != child %d corner %d", i, i, i)
				}
				check(ch)
			}
		}
	}
	check(c)
}

func walkLeaves(c *Cell, fn func(*Cell)) {
	if c.Type == Branch {
		n := 1 << uint(c.Dims)
		for i := 0; i < n; i++ {
			walkLeaves(c.Children[i], fn)
		}
		return
	}
	fn(c)
}
