package walk

import (
	"testing"

	"github.com/arl/xtree/cell"
	"github.com/arl/xtree/eval"
	"github.com/arl/xtree/region"
)

func params(flags cell.Flags) cell.BuildParams {
	return cell.BuildParams{
		SearchCount:            16,
		JitterCount:            8,
		BatchWidth:             16,
		RankThreshold:          0.1,
		CollapseErrorThreshold: 1e-8,
		Flags:                  flags,
	}
}

func sphereExpr(r float32) *eval.Expr {
	return eval.Sub(eval.Add(eval.Add(eval.Square(eval.X()), eval.Square(eval.Y())), eval.Square(eval.Z())), eval.Const(r*r))
}

func circleExpr(r float32) *eval.Expr {
	return eval.Sub(eval.Add(eval.Square(eval.X()), eval.Square(eval.Y())), eval.Const(r*r))
}

func region3(t *testing.T, lo, hi, res float32) region.Subregion {
	t.Helper()
	reg, err := region.NewRegion3(
		region.Interval{Lo: lo, Hi: hi},
		region.Interval{Lo: lo, Hi: hi},
		region.Interval{Lo: lo, Hi: hi},
		res,
	)
	if err != nil {
		t.Fatalf("NewRegion3: %v", err)
	}
	return reg.PowerOfTwo()
}

func region2(t *testing.T, lo, hi, res float32) region.Subregion {
	t.Helper()
	reg, err := region.NewRegion2(
		region.Interval{Lo: lo, Hi: hi},
		region.Interval{Lo: lo, Hi: hi},
		0,
		res,
	)
	if err != nil {
		t.Fatalf("NewRegion2: %v", err)
	}
	return reg.PowerOfTwo()
}

func TestWalkMeshSphereProducesClosedishSurface(t *testing.T) {
	sub := region3(t, -1.5, 1.5, 8)
	e := eval.NewEvaluator(sphereExpr(1), 16)
	root := cell.Populate(e, sub, params(0))
	root.Finalize(e, params(0))

	m := WalkMesh(root)
	if len(m.Triangles) == 0 {
		t.Fatal("expected at least one triangle for a sphere crossing the sampled region")
	}
	for _, tri := range m.Triangles {
		for _, idx := range [3]int{tri.A, tri.B, tri.C} {
			if idx < 0 || idx >= len(m.Vertices) {
				t.Fatalf("triangle references out-of-range vertex %d", idx)
			}
		}
	}
}

func TestWalkMeshEmptyRegionProducesNoTriangles(t *testing.T) {
	sub := region3(t, 10, 11, 4)
	e := eval.NewEvaluator(sphereExpr(1), 16)
	root := cell.Populate(e, sub, params(0))
	root.Finalize(e, params(0))

	m := WalkMesh(root)
	if len(m.Triangles) != 0 {
		t.Fatalf("expected no triangles outside the sphere, got %d", len(m.Triangles))
	}
}

func TestWalkMeshTriangleCountGrowsWithResolution(t *testing.T) {
	e := eval.NewEvaluator(sphereExpr(1), 16)

	coarse := cell.Populate(e, region3(t, -1.5, 1.5, 4), params(0))
	coarse.Finalize(e, params(0))
	fine := cell.Populate(e, region3(t, -1.5, 1.5, 16), params(0))
	fine.Finalize(e, params(0))

	coarseMesh := WalkMesh(coarse)
	fineMesh := WalkMesh(fine)
	if len(fineMesh.Triangles) < len(coarseMesh.Triangles) {
		t.Fatalf("expected finer resolution to produce at least as many triangles: coarse=%d fine=%d",
			len(coarseMesh.Triangles), len(fineMesh.Triangles))
	}
}

func TestWalkContoursCircleProducesClosedLoop(t *testing.T) {
	sub := region2(t, -1.5, 1.5, 16)
	e := eval.NewEvaluator(circleExpr(1), 16)
	root := cell.Populate(e, sub, params(0))
	root.Finalize(e, params(0))

	c := WalkContours(root)
	if len(c.Polylines) == 0 {
		t.Fatal("expected at least one polyline for a circle crossing the sampled region")
	}
	foundClosed := false
	for _, pl := range c.Polylines {
		if pl.Closed {
			foundClosed = true
		}
	}
	if !foundClosed {
		t.Error("expected at least one closed polyline for a circle fully inside the sampled region")
	}
}

func TestWalkMeshDeterministicWithNoJitter(t *testing.T) {
	sub := region3(t, -1.5, 1.5, 8)

	e1 := eval.NewEvaluator(sphereExpr(1), 16)
	root1 := cell.Populate(e1, sub, params(cell.FlagNoJitter))
	root1.Finalize(e1, params(cell.FlagNoJitter))
	m1 := WalkMesh(root1)

	e2 := eval.NewEvaluator(sphereExpr(1), 16)
	root2 := cell.Populate(e2, sub, params(cell.FlagNoJitter))
	root2.Finalize(e2, params(cell.FlagNoJitter))
	m2 := WalkMesh(root2)

	if len(m1.Triangles) != len(m2.Triangles) {
		t.Fatalf("expected deterministic triangle count with FlagNoJitter: %d != %d", len(m1.Triangles), len(m2.Triangles))
	}
	if len(m1.Vertices) != len(m2.Vertices) {
		t.Fatalf("expected deterministic vertex count with FlagNoJitter: %d != %d", len(m1.Vertices), len(m2.Vertices))
	}
	for i := range m1.Vertices {
		if m1.Vertices[i] != m2.Vertices[i] {
			t.Fatalf("vertex %d differs between identical no-jitter runs: %v != %v", i, m1.Vertices[i], m2.Vertices[i])
		}
	}
}
