package eval

import "github.com/arl/math32"

// Interval is an interval-arithmetic bound [Lo, Hi] on the value of an
// expression over some box. An upper bound below zero proves the box is
// entirely inside the implicit surface; a lower bound at or above zero
// proves it is entirely outside.
type Interval struct {
	Lo, Hi float32
}

// Point returns the degenerate interval [v, v].
func Point(v float32) Interval {
	return Interval{v, v}
}

func (a Interval) add(b Interval) Interval {
	return Interval{a.Lo + b.Lo, a.Hi + b.Hi}
}

func (a Interval) sub(b Interval) Interval {
	return Interval{a.Lo - b.Hi, a.Hi - b.Lo}
}

func (a Interval) neg() Interval {
	return Interval{-a.Hi, -a.Lo}
}

func (a Interval) mul(b Interval) Interval {
	p := [4]float32{a.Lo * b.Lo, a.Lo * b.Hi, a.Hi * b.Lo, a.Hi * b.Hi}
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return Interval{lo, hi}
}

func (a Interval) div(b Interval) Interval {
	if b.Lo <= 0 && b.Hi >= 0 {
		// Division by an interval straddling zero: the result is
		// unbounded; widen conservatively rather than producing NaN/Inf
		// noise that downstream pruning cannot act on meaningfully.
		return Interval{-math32.MaxFloat32, math32.MaxFloat32}
	}
	return a.mul(Interval{1 / b.Hi, 1 / b.Lo})
}

func (a Interval) min(b Interval) Interval {
	return Interval{math32.Min(a.Lo, b.Lo), math32.Min(a.Hi, b.Hi)}
}

func (a Interval) max(b Interval) Interval {
	return Interval{math32.Max(a.Lo, b.Lo), math32.Max(a.Hi, b.Hi)}
}

func (a Interval) abs() Interval {
	if a.Lo >= 0 {
		return a
	}
	if a.Hi <= 0 {
		return a.neg()
	}
	return Interval{0, math32.Max(-a.Lo, a.Hi)}
}

func (a Interval) square() Interval {
	return a.abs().mul(a.abs())
}

func (a Interval) sqrt() Interval {
	lo, hi := a.Lo, a.Hi
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	return Interval{math32.Sqrt(lo), math32.Sqrt(hi)}
}

// dominatesLow reports whether a is entirely <= b (a.Hi <= b.Lo), i.e. a
// is always selected by Min(a, b) and never by Max(a, b), for every point
// in the box that produced these intervals.
func dominatesLow(a, b Interval) bool {
	return a.Hi <= b.Lo
}
