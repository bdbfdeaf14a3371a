package eval

import "github.com/arl/math32"

// Evaluator is the contract the XTree core calls to evaluate an implicit
// function, either as an interval bound over a box or as a batch of
// concrete points. Implementations are not required to be thread-safe; the
// core creates one Evaluator per worker.
type Evaluator interface {
	// Eval evaluates the tree over the box [x.Lo,x.Hi] x [y.Lo,y.Hi] x
	// [z.Lo,z.Hi].
	Eval(x, y, z Interval) Interval

	// Push opens a scoped sub-evaluator that may prune branches proven
	// inactive by the most recent Eval call on the current sub-region.
	// Every Push must be matched by exactly one Pop.
	Push()

	// Pop closes the scope opened by the matching Push.
	Pop()

	// Set loads slot i (0 <= i < N, N the batch width passed to
	// NewEvaluator) of the point buffer, applying any affine region
	// normalization the evaluator implementation defines. This reference
	// implementation defines none, so Set and SetRaw coincide.
	Set(x, y, z float32, i int)

	// SetRaw loads slot i like Set, but bypasses region normalization.
	SetRaw(x, y, z float32, i int)

	// Values evaluates the first count loaded points and returns their
	// values.
	Values(count int) []float32

	// Derivs evaluates the first count loaded points and returns their
	// values along with the partial derivatives d/dx, d/dy, d/dz.
	Derivs(count int) (vals, dx, dy, dz []float32)
}

// node is one flattened Expr, with child indices into Eval.nodes.
type node struct {
	op     Op
	cst    float32
	a, b   int // -1 when absent
}

// Eval is the reference Evaluator: it evaluates an in-memory Expr tree
// using interval arithmetic for boxes, and forward-mode partial
// derivatives for batches of concrete points.
type Eval struct {
	nodes []node
	root  int
	n     int

	xs, ys, zs []float32

	// forced[i] applies only when nodes[i].op is OpMin/OpMax: -1 means
	// both branches must be evaluated, 0/1 forces branch A/B because the
	// most recent Push() proved the other branch inactive over the
	// current sub-region.
	forced      []int8
	forcedStack [][]int8

	lastIntervals []Interval
}

// NewEvaluator builds an Evaluator over tree with a batch width of n
// points (the evaluator contract's N).
func NewEvaluator(tree *Expr, n int) *Eval {
	e := &Eval{n: n}
	e.root = e.flatten(tree)
	e.xs = make([]float32, n)
	e.ys = make([]float32, n)
	e.zs = make([]float32, n)
	e.forced = make([]int8, len(e.nodes))
	for i := range e.forced {
		e.forced[i] = -1
	}
	e.lastIntervals = make([]Interval, len(e.nodes))
	return e
}

func (e *Eval) flatten(x *Expr) int {
	if x == nil {
		return -1
	}
	n := node{op: x.Op, cst: x.Const, a: -1, b: -1}
	idx := len(e.nodes)
	e.nodes = append(e.nodes, n)
	a := e.flatten(x.A)
	b := e.flatten(x.B)
	e.nodes[idx].a = a
	e.nodes[idx].b = b
	return idx
}

// Eval implements Evaluator.
func (e *Eval) Eval(x, y, z Interval) Interval {
	return e.evalInterval(e.root, x, y, z)
}

func (e *Eval) evalInterval(idx int, x, y, z Interval) Interval {
	nd := e.nodes[idx]
	var iv Interval
	switch nd.op {
	case OpX:
		iv = x
	case OpY:
		iv = y
	case OpZ:
		iv = z
	case OpConst:
		iv = Point(nd.cst)
	case OpAdd:
		iv = e.evalInterval(nd.a, x, y, z).add(e.evalInterval(nd.b, x, y, z))
	case OpSub:
		iv = e.evalInterval(nd.a, x, y, z).sub(e.evalInterval(nd.b, x, y, z))
	case OpMul:
		iv = e.evalInterval(nd.a, x, y, z).mul(e.evalInterval(nd.b, x, y, z))
	case OpDiv:
		iv = e.evalInterval(nd.a, x, y, z).div(e.evalInterval(nd.b, x, y, z))
	case OpNeg:
		iv = e.evalInterval(nd.a, x, y, z).neg()
	case OpMin:
		iv = e.evalInterval(nd.a, x, y, z).min(e.evalInterval(nd.b, x, y, z))
	case OpMax:
		iv = e.evalInterval(nd.a, x, y, z).max(e.evalInterval(nd.b, x, y, z))
	case OpAbs:
		iv = e.evalInterval(nd.a, x, y, z).abs()
	case OpSqrt:
		iv = e.evalInterval(nd.a, x, y, z).sqrt()
	case OpSquare:
		iv = e.evalInterval(nd.a, x, y, z).square()
	}
	e.lastIntervals[idx] = iv
	return iv
}

// Push implements Evaluator.
func (e *Eval) Push() {
	snapshot := make([]int8, len(e.forced))
	copy(snapshot, e.forced)
	e.forcedStack = append(e.forcedStack, snapshot)

	for idx, nd := range e.nodes {
		switch nd.op {
		case OpMin:
			a, b := e.lastIntervals[nd.a], e.lastIntervals[nd.b]
			switch {
			case dominatesLow(a, b):
				e.forced[idx] = 0
			case dominatesLow(b, a):
				e.forced[idx] = 1
			default:
				e.forced[idx] = -1
			}
		case OpMax:
			a, b := e.lastIntervals[nd.a], e.lastIntervals[nd.b]
			switch {
			case dominatesLow(a, b):
				e.forced[idx] = 1
			case dominatesLow(b, a):
				e.forced[idx] = 0
			default:
				e.forced[idx] = -1
			}
		}
	}
}

// Pop implements Evaluator.
func (e *Eval) Pop() {
	n := len(e.forcedStack) - 1
	e.forced = e.forcedStack[n]
	e.forcedStack = e.forcedStack[:n]
}

// Set implements Evaluator.
func (e *Eval) Set(x, y, z float32, i int) {
	e.SetRaw(x, y, z, i)
}

// SetRaw implements Evaluator.
func (e *Eval) SetRaw(x, y, z float32, i int) {
	e.xs[i] = x
	e.ys[i] = y
	e.zs[i] = z
}

// Values implements Evaluator.
func (e *Eval) Values(count int) []float32 {
	out := make([]float32, count)
	for i := 0; i < count; i++ {
		out[i] = e.evalPoint(e.root, e.xs[i], e.ys[i], e.zs[i])
	}
	return out
}

func (e *Eval) evalPoint(idx int, x, y, z float32) float32 {
	nd := e.nodes[idx]
	switch nd.op {
	case OpX:
		return x
	case OpY:
		return y
	case OpZ:
		return z
	case OpConst:
		return nd.cst
	case OpAdd:
		return e.evalPoint(nd.a, x, y, z) + e.evalPoint(nd.b, x, y, z)
	case OpSub:
		return e.evalPoint(nd.a, x, y, z) - e.evalPoint(nd.b, x, y, z)
	case OpMul:
		return e.evalPoint(nd.a, x, y, z) * e.evalPoint(nd.b, x, y, z)
	case OpDiv:
		return e.evalPoint(nd.a, x, y, z) / e.evalPoint(nd.b, x, y, z)
	case OpNeg:
		return -e.evalPoint(nd.a, x, y, z)
	case OpMin:
		if f := e.forced[idx]; f == 0 {
			return e.evalPoint(nd.a, x, y, z)
		} else if f == 1 {
			return e.evalPoint(nd.b, x, y, z)
		}
		return math32.Min(e.evalPoint(nd.a, x, y, z), e.evalPoint(nd.b, x, y, z))
	case OpMax:
		if f := e.forced[idx]; f == 0 {
			return e.evalPoint(nd.a, x, y, z)
		} else if f == 1 {
			return e.evalPoint(nd.b, x, y, z)
		}
		return math32.Max(e.evalPoint(nd.a, x, y, z), e.evalPoint(nd.b, x, y, z))
	case OpAbs:
		return math32.Abs(e.evalPoint(nd.a, x, y, z))
	case OpSqrt:
		return math32.Sqrt(e.evalPoint(nd.a, x, y, z))
	case OpSquare:
		v := e.evalPoint(nd.a, x, y, z)
		return v * v
	}
	return 0
}

// deriv is (value, d/dx, d/dy, d/dz).
type deriv struct{ v, dx, dy, dz float32 }

// Derivs implements Evaluator.
func (e *Eval) Derivs(count int) (vals, dx, dy, dz []float32) {
	vals = make([]float32, count)
	dx = make([]float32, count)
	dy = make([]float32, count)
	dz = make([]float32, count)
	for i := 0; i < count; i++ {
		d := e.evalDeriv(e.root, e.xs[i], e.ys[i], e.zs[i])
		vals[i], dx[i], dy[i], dz[i] = d.v, d.dx, d.dy, d.dz
	}
	return
}

func (e *Eval) evalDeriv(idx int, x, y, z float32) deriv {
	nd := e.nodes[idx]
	switch nd.op {
	case OpX:
		return deriv{x, 1, 0, 0}
	case OpY:
		return deriv{y, 0, 1, 0}
	case OpZ:
		return deriv{z, 0, 0, 1}
	case OpConst:
		return deriv{nd.cst, 0, 0, 0}
	case OpAdd:
		a, b := e.evalDeriv(nd.a, x, y, z), e.evalDeriv(nd.b, x, y, z)
		return deriv{a.v + b.v, a.dx + b.dx, a.dy + b.dy, a.dz + b.dz}
	case OpSub:
		a, b := e.evalDeriv(nd.a, x, y, z), e.evalDeriv(nd.b, x, y, z)
		return deriv{a.v - b.v, a.dx - b.dx, a.dy - b.dy, a.dz - b.dz}
	case OpMul:
		a, b := e.evalDeriv(nd.a, x, y, z), e.evalDeriv(nd.b, x, y, z)
		return deriv{
			a.v * b.v,
			a.dx*b.v + a.v*b.dx,
			a.dy*b.v + a.v*b.dy,
			a.dz*b.v + a.v*b.dz,
		}
	case OpDiv:
		a, b := e.evalDeriv(nd.a, x, y, z), e.evalDeriv(nd.b, x, y, z)
		inv := 1 / b.v
		return deriv{
			a.v * inv,
			(a.dx*b.v - a.v*b.dx) * inv * inv,
			(a.dy*b.v - a.v*b.dy) * inv * inv,
			(a.dz*b.v - a.v*b.dz) * inv * inv,
		}
	case OpNeg:
		a := e.evalDeriv(nd.a, x, y, z)
		return deriv{-a.v, -a.dx, -a.dy, -a.dz}
	case OpMin:
		if f := e.forced[idx]; f == 0 {
			return e.evalDeriv(nd.a, x, y, z)
		} else if f == 1 {
			return e.evalDeriv(nd.b, x, y, z)
		}
		a, b := e.evalDeriv(nd.a, x, y, z), e.evalDeriv(nd.b, x, y, z)
		if a.v <= b.v {
			return a
		}
		return b
	case OpMax:
		if f := e.forced[idx]; f == 0 {
			return e.evalDeriv(nd.a, x, y, z)
		} else if f == 1 {
			return e.evalDeriv(nd.b, x, y, z)
		}
		a, b := e.evalDeriv(nd.a, x, y, z), e.evalDeriv(nd.b, x, y, z)
		if a.v >= b.v {
			return a
		}
		return b
	case OpAbs:
		a := e.evalDeriv(nd.a, x, y, z)
		if a.v < 0 {
			return deriv{-a.v, -a.dx, -a.dy, -a.dz}
		}
		return a
	case OpSqrt:
		a := e.evalDeriv(nd.a, x, y, z)
		v := math32.Sqrt(a.v)
		if v == 0 {
			return deriv{0, 0, 0, 0}
		}
		inv := 1 / (2 * v)
		return deriv{v, a.dx * inv, a.dy * inv, a.dz * inv}
	case OpSquare:
		a := e.evalDeriv(nd.a, x, y, z)
		return deriv{a.v * a.v, 2 * a.v * a.dx, 2 * a.v * a.dy, 2 * a.v * a.dz}
	}
	return deriv{}
}
