package eval

import "testing"

func sphere(r float32) *Expr {
	return Sub(Add(Add(Square(X()), Square(Y())), Square(Z())), Const(r*r))
}

func TestEvalIntervalInsideOutside(t *testing.T) {
	e := NewEvaluator(sphere(1), 8)

	// Entirely inside the unit sphere.
	iv := e.Eval(Interval{-0.1, 0.1}, Interval{-0.1, 0.1}, Interval{-0.1, 0.1})
	if iv.Hi >= 0 {
		t.Fatalf("expected box entirely inside, got interval %v", iv)
	}

	// Entirely outside.
	iv = e.Eval(Interval{5, 6}, Interval{5, 6}, Interval{5, 6})
	if iv.Lo < 0 {
		t.Fatalf("expected box entirely outside, got interval %v", iv)
	}
}

func TestEvalValuesMatchScalar(t *testing.T) {
	e := NewEvaluator(sphere(1), 4)
	e.Set(0, 0, 0, 0)
	e.Set(1, 0, 0, 1)
	e.Set(2, 0, 0, 2)
	vals := e.Values(3)
	want := []float32{-1, 0, 3}
	for i, w := range want {
		if vals[i] != w {
			t.Errorf("Values[%d] = %v, want %v", i, vals[i], w)
		}
	}
}

func TestDerivsPlane(t *testing.T) {
	e := NewEvaluator(X(), 1)
	e.Set(3, 4, 5, 0)
	vals, dx, dy, dz := e.Derivs(1)
	if vals[0] != 3 || dx[0] != 1 || dy[0] != 0 || dz[0] != 0 {
		t.Fatalf("bad derivs: v=%v dx=%v dy=%v dz=%v", vals[0], dx[0], dy[0], dz[0])
	}
}

func TestPushPopPrunesDominatedMinBranch(t *testing.T) {
	// union of two spheres far apart on x: min(sphere at x=0, sphere at x=100)
	a := sphere(1)
	b := Sub(Add(Add(Square(Sub(X(), Const(100))), Square(Y())), Square(Z())), Const(1))
	tree := Min(a, b)
	e := NewEvaluator(tree, 1)

	// Box tightly around the first sphere: the second sphere's branch is
	// always >= 0 there and can never be selected by Min.
	e.Eval(Interval{-1, 1}, Interval{-1, 1}, Interval{-1, 1})
	e.Push()
	defer e.Pop()

	e.Set(0, 0, 0, 0)
	vals := e.Values(1)
	if vals[0] != -1 {
		t.Fatalf("want -1, got %v", vals[0])
	}
}

func TestPushPopBalanced(t *testing.T) {
	e := NewEvaluator(sphere(1), 1)
	e.Eval(Interval{-1, 1}, Interval{-1, 1}, Interval{-1, 1})
	e.Push()
	e.Push()
	e.Pop()
	e.Pop()
	if len(e.forcedStack) != 0 {
		t.Fatalf("expected balanced push/pop to empty the stack")
	}
}
