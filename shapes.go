package xtree

import "github.com/arl/xtree/eval"

// Expression parsing (text to tree) is explicitly out of scope (spec.md
// Non-goals); these constructors build the same small set of built-in
// shapes the CLI and tests use directly as eval opcode trees, the way
// Expr's own doc comment says trees are meant to be built.

// Sphere returns the signed-distance-like implicit function of a sphere
// of radius r centered at the origin: x²+y²+z²-r².
func Sphere(r float32) *eval.Expr {
	sum := eval.Add(eval.Add(eval.Square(eval.X()), eval.Square(eval.Y())), eval.Square(eval.Z()))
	return eval.Sub(sum, eval.Const(r*r))
}

// Plane returns the implicit function of a plane perpendicular to axis
// (0=x, 1=y, 2=z) at the given offset: axis - offset.
func Plane(axis int, offset float32) *eval.Expr {
	var coord *eval.Expr
	switch axis {
	case 0:
		coord = eval.X()
	case 1:
		coord = eval.Y()
	default:
		coord = eval.Z()
	}
	return eval.Sub(coord, eval.Const(offset))
}

// Box returns the Chebyshev (L-infinity) implicit function of an
// axis-aligned box centered at the origin with the given half-extents:
// max(|x|-hx, |y|-hy, |z|-hz).
func Box(hx, hy, hz float32) *eval.Expr {
	dx := eval.Sub(eval.Abs(eval.X()), eval.Const(hx))
	dy := eval.Sub(eval.Abs(eval.Y()), eval.Const(hy))
	dz := eval.Sub(eval.Abs(eval.Z()), eval.Const(hz))
	return eval.Max(eval.Max(dx, dy), dz)
}

// Torus returns the implicit function of a torus centered at the origin,
// lying in the xy plane, with major radius major and minor (tube) radius
// minor: (sqrt(x²+y²)-major)² + z² - minor².
func Torus(major, minor float32) *eval.Expr {
	planar := eval.Sqrt(eval.Add(eval.Square(eval.X()), eval.Square(eval.Y())))
	ring := eval.Square(eval.Sub(planar, eval.Const(major)))
	return eval.Sub(eval.Add(ring, eval.Square(eval.Z())), eval.Const(minor*minor))
}

// Circle returns the 2D implicit function of a circle of radius r
// centered at the origin: x²+y²-r².
func Circle(r float32) *eval.Expr {
	return eval.Sub(eval.Add(eval.Square(eval.X()), eval.Square(eval.Y())), eval.Const(r*r))
}
