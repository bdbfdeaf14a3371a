package qef

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlath/matrix"
	"github.com/katalvlaran/lvlath/matrix/ops"
)

// DefaultRankThreshold is the relative eigenvalue cutoff used, absent an
// explicit caller-supplied value, to estimate the rank of AtA and to zero
// out ill-conditioned directions in its pseudo-inverse (spec §4.6):
// eigenvalues with |lambda|/s_max below this threshold are treated as
// zero. The spec leaves this configurable, so Solve takes it as a
// parameter rather than hardcoding it.
const DefaultRankThreshold = 0.1

// EigenTolerance and EigenMaxIter configure the Jacobi eigensolver used to
// decompose AtA.
const (
	EigenTolerance = 1e-9
	EigenMaxIter   = 100
)

// Solution is the result of solving a cell's QEF: the placed vertex, the
// residual QEF error at that vertex, and the estimated rank of AtA (1 =
// planar feature, 2 = edge feature, 3 = corner feature).
type Solution struct {
	Vertex [3]float64
	Error  float64
	Rank   int
}

// Solve minimizes the accumulated QEF, regularized around massPoint, using
// a real symmetric eigendecomposition of AtA (spec's Design Notes call for
// a symmetric solver in place of the original kernel's non-symmetric one).
//
// A massPoint with ok == false (no samples ever accumulated) is a
// programmer error: callers must collapse such leaves to EMPTY/FULL before
// ever reaching Solve (spec §4.6, §7). rankThreshold is typically
// DefaultRankThreshold, threaded through from Config.
func (a *Accumulator) Solve(massPoint [3]float64, rankThreshold float64) (Solution, error) {
	n := a.Dims
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return Solution{}, fmt.Errorf("qef: allocate AtA: %w", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if err := m.Set(i, j, a.AtA[i][j]); err != nil {
				return Solution{}, fmt.Errorf("qef: populate AtA: %w", err)
			}
		}
	}

	eigvals, q, err := ops.Eigen(m, EigenTolerance, EigenMaxIter)
	if err != nil {
		return Solution{}, fmt.Errorf("qef: eigendecomposition: %w", err)
	}

	sMax := 0.0
	for _, lambda := range eigvals {
		if v := math.Abs(lambda); v > sMax {
			sMax = v
		}
	}

	rank := 0
	d := make([]float64, n)
	if sMax > 0 {
		for i, lambda := range eigvals {
			if math.Abs(lambda)/sMax >= rankThreshold {
				d[i] = 1 / lambda
				rank++
			}
		}
	}

	// AtAp = Q . diag(d) . Q^T
	var atAp [3][3]float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				qik, err := q.At(i, k)
				if err != nil {
					return Solution{}, fmt.Errorf("qef: read eigenvector: %w", err)
				}
				qjk, err := q.At(j, k)
				if err != nil {
					return Solution{}, fmt.Errorf("qef: read eigenvector: %w", err)
				}
				sum += qik * d[k] * qjk
			}
			atAp[i][j] = sum
		}
	}

	// rhs = AtB - AtA . massPoint
	var rhs [3]float64
	for i := 0; i < n; i++ {
		var atAp0 float64
		for j := 0; j < n; j++ {
			atAp0 += a.AtA[i][j] * massPoint[j]
		}
		rhs[i] = a.AtB[i] - atAp0
	}

	var v [3]float64
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += atAp[i][j] * rhs[j]
		}
		v[i] = sum + massPoint[i]
	}

	// error = v^T AtA v - 2 v^T AtB + BtB
	var vtAtAv, vtAtB float64
	for i := 0; i < n; i++ {
		var row float64
		for j := 0; j < n; j++ {
			row += a.AtA[i][j] * v[j]
		}
		vtAtAv += v[i] * row
		vtAtB += v[i] * a.AtB[i]
	}
	residual := vtAtAv - 2*vtAtB + a.BtB

	return Solution{Vertex: v, Error: residual, Rank: rank}, nil
}
