package cell

import (
	"math/rand"

	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
	"github.com/arl/xtree/eval"
	"github.com/arl/xtree/qef"
	"github.com/arl/xtree/topology"
)

// findIntersections walks every cell edge with a sign change, binary
// searches the zero crossing, optionally jitters extra Hermite samples
// around it, and folds each sample into the cell's QEF accumulator
// (spec.md §4.5). Must only be called on a LEAF cell with mixed corner
// signs.
func (c *Cell) findIntersections(e eval.Evaluator, p BuildParams) {
	for _, edge := range topology.CellEdges(c.Dims) {
		a, b := edge[0], edge[1]
		if c.Corners[a] == c.Corners[b] {
			continue
		}

		pa, pb := vec3(c.Sub.Corner(a)), vec3(c.Sub.Corner(b))
		if !c.Corners[a] {
			pa, pb = pb, pa
		}

		crossingA, crossingB := c.searchEdge(e, pa, pb, p)
		c.sampleHermite(e, crossingA, crossingB, p)
	}
}

// searchEdge narrows (a, b) -- a on the inside, b on the outside -- onto
// the zero crossing by repeated N-way binary search, N = BatchWidth,
// returning both converged endpoints.
func (c *Cell) searchEdge(e eval.Evaluator, a, b d3.Vec3, p BuildParams) (d3.Vec3, d3.Vec3) {
	n := p.BatchWidth
	if n < 2 {
		n = 2
	}
	iterations := p.SearchCount / 4
	if iterations < 1 {
		iterations = 1
	}

	for iter := 0; iter < iterations; iter++ {
		for i := 0; i < n; i++ {
			t := float32(i) / float32(n-1)
			pt := a.Lerp(b, t)
			e.SetRaw(pt[0], pt[1], pt[2], i)
		}
		vals := e.Values(n)

		j := n - 1
		for i := 0; i < n; i++ {
			if vals[i] >= 0 {
				j = i
				break
			}
		}
		if j == 0 {
			// a itself is already >= 0: corner sign bookkeeping guarantees
			// this shouldn't happen, but keep the search well-formed.
			j = 1
		}

		ta := float32(j-1) / float32(n-1)
		tb := float32(j) / float32(n-1)
		a, b = a.Lerp(b, ta), a.Lerp(b, tb)
	}
	return a, b
}

// sampleHermite records the converged crossing (and, unless FlagNoJitter
// is set in 3D/2D, JitterCount-1 extra samples scattered around it) as
// Hermite data, folding each into the QEF accumulator. radius is derived
// from the converged (a, b) pair straddling the crossing, per spec.md
// §4.5 -- a small fraction of the search's final bracket, not the cell
// edge it started from.
func (c *Cell) sampleHermite(e eval.Evaluator, crossing, converged d3.Vec3, p BuildParams) {
	samples := []d3.Vec3{crossing}

	if p.Flags&FlagNoJitter == 0 && p.JitterCount > 1 {
		radius := crossing.Dist(converged) / 10
		count := p.JitterCount - 1
		if count > p.BatchWidth-1 {
			count = p.BatchWidth - 1
		}
		for i := 0; i < count; i++ {
			var offset d3.Vec3
			if c.Dims == 3 {
				offset = randomOnSphere(radius)
			} else {
				offset = randomOnCircle(radius)
			}
			samples = append(samples, crossing.Add(offset))
		}
	}

	n := len(samples)
	for i, s := range samples {
		e.SetRaw(s[0], s[1], s[2], i)
	}
	_, dx, dy, dz := e.Derivs(n)

	for i, s := range samples {
		grad := d3.NewVec3XYZ(dx[i], dy[i], dz[i])
		grad.Normalize()
		c.intersections = append(c.intersections, qef.Intersection{Pos: [3]float32{s[0], s[1], s[2]}, Grad: [3]float32{grad[0], grad[1], grad[2]}})
		c.acc.Add([3]float32{s[0], s[1], s[2]}, [3]float32{grad[0], grad[1], grad[2]})
	}
}

func vec3(p [3]float32) d3.Vec3 {
	return d3.NewVec3XYZ(p[0], p[1], p[2])
}

// randomOnSphere returns a uniformly-distributed point on a sphere of the
// given radius, centered at the origin.
func randomOnSphere(radius float32) d3.Vec3 {
	u := float32(rand.Float64())*2 - 1
	theta := float32(rand.Float64()) * 2 * math32.Pi
	r := math32.Sqrt(1 - u*u)
	return d3.NewVec3XYZ(
		radius*r*math32.Cos(theta),
		radius*r*math32.Sin(theta),
		radius*u,
	)
}

// randomOnCircle returns a uniformly-distributed point on a circle of the
// given radius in the XY plane, centered at the origin.
func randomOnCircle(radius float32) d3.Vec3 {
	theta := float32(rand.Float64()) * 2 * math32.Pi
	return d3.NewVec3XYZ(radius*math32.Cos(theta), radius*math32.Sin(theta), 0)
}
