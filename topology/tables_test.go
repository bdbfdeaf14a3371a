package topology

import "testing"

func TestCellEdgesCount(t *testing.T) {
	if got := len(CellEdges(2)); got != 4 {
		t.Errorf("2D cell should have 4 edges, got %d", got)
	}
	if got := len(CellEdges(3)); got != 12 {
		t.Errorf("3D cell should have 12 edges, got %d", got)
	}
}

func TestManifoldAllSameSign(t *testing.T) {
	// All corners outside, or all inside: trivially one component each
	// side (the empty side has zero components, which is <= 1).
	if !Manifold(3, 0) {
		t.Errorf("all-outside pattern should be manifold")
	}
	if !Manifold(3, uint32(NumCorners(3)-1)) {
		t.Errorf("all-inside pattern should be manifold")
	}
}

func TestManifoldAmbiguousDiagonal2D(t *testing.T) {
	// Classic marching-squares ambiguous case: corners 0 and 3 (diagonal)
	// inside, 1 and 2 outside. Using the bit-per-axis numbering, corners
	// 0 and 3 differ in both bits so they are not adjacent: the inside
	// set {0,3} is two components, so this pattern must be flagged
	// non-manifold.
	mask := uint32(1<<0 | 1<<3)
	if Manifold(2, mask) {
		t.Errorf("diagonal corner pattern should be non-manifold, it is ambiguous")
	}
}

func TestManifoldSingleCornerSign2D(t *testing.T) {
	// A single inside corner: inside set has 1 component, outside set
	// {1,2,3} is connected via edges (1,3) and (2,3). Must be manifold.
	mask := uint32(1 << 0)
	if !Manifold(2, mask) {
		t.Errorf("single-corner pattern should be manifold")
	}
}

func TestComponentCountSymmetry(t *testing.T) {
	edges := CellEdges(3)
	n := NumCorners(3)
	full := (1 << uint(n)) - 1
	for mask := 0; mask < 1<<uint(n); mask++ {
		in := componentCount(mask, n, edges)
		out := componentCount(full^mask, n, edges)
		want := Manifold(3, uint32(mask))
		got := in <= 1 && out <= 1
		if got != want {
			t.Fatalf("mask %d: table says %v, recomputed %v", mask, want, got)
		}
	}
}
