package qef

import "testing"

func TestAccumulatorSinglePlane(t *testing.T) {
	a := NewAccumulator(3)
	// Plane x = 0.5, gradient +x, sampled at three points on the plane.
	a.Add([3]float32{0.5, 0, 0}, [3]float32{1, 0, 0})
	a.Add([3]float32{0.5, 1, 0}, [3]float32{1, 0, 0})
	a.Add([3]float32{0.5, 0, 1}, [3]float32{1, 0, 0})

	mp, ok := a.MassPoint()
	if !ok {
		t.Fatalf("expected mass point")
	}

	sol, err := a.Solve(mp, DefaultRankThreshold)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Rank != 1 {
		t.Errorf("want rank 1 (planar feature), got %d", sol.Rank)
	}
	if d := sol.Vertex[0] - 0.5; d < -1e-6 || d > 1e-6 {
		t.Errorf("vertex.x = %v, want ~0.5", sol.Vertex[0])
	}
	if sol.Error < -1e-9 || sol.Error > 1e-6 {
		t.Errorf("expected near-zero residual on an exact plane, got %v", sol.Error)
	}
}

func TestAccumulatorCorner(t *testing.T) {
	a := NewAccumulator(3)
	// Three mutually orthogonal planes meeting at (1,1,1): a corner feature.
	a.Add([3]float32{1, 0.5, 0.5}, [3]float32{1, 0, 0})
	a.Add([3]float32{0.5, 1, 0.5}, [3]float32{0, 1, 0})
	a.Add([3]float32{0.5, 0.5, 1}, [3]float32{0, 0, 1})

	mp, ok := a.MassPoint()
	if !ok {
		t.Fatalf("expected mass point")
	}
	sol, err := a.Solve(mp, DefaultRankThreshold)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Rank != 3 {
		t.Errorf("want rank 3 (corner feature), got %d", sol.Rank)
	}
	want := [3]float64{1, 1, 1}
	for i := 0; i < 3; i++ {
		if d := sol.Vertex[i] - want[i]; d < -1e-6 || d > 1e-6 {
			t.Errorf("vertex[%d] = %v, want %v", i, sol.Vertex[i], want[i])
		}
	}
}

func TestAddMatricesExcludesMass(t *testing.T) {
	a := NewAccumulator(3)
	b := NewAccumulator(3)
	b.Add([3]float32{1, 2, 3}, [3]float32{1, 0, 0})

	a.AddMatrices(b)
	if a.MassCount != 0 {
		t.Fatalf("AddMatrices must not fold in mass point, got MassCount=%v", a.MassCount)
	}
	if a.AtA != b.AtA || a.AtB != b.AtB || a.BtB != b.BtB {
		t.Fatalf("AddMatrices failed to copy matrix state")
	}

	a.AddMass(b)
	if a.MassCount != b.MassCount || a.MassSum != b.MassSum {
		t.Fatalf("AddMass failed to copy mass state")
	}
}

func TestMassPointEmpty(t *testing.T) {
	a := NewAccumulator(3)
	if _, ok := a.MassPoint(); ok {
		t.Fatalf("expected ok=false for an empty accumulator")
	}
}
