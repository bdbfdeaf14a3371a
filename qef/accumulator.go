package qef

// Accumulator is the per-cell QEF state: the symmetric AtA, vector AtB and
// scalar BtB of the least-squares system built from Hermite samples, plus
// the mass-point (running centroid) used to regularize the solve.
//
// Only the first Dims rows/columns of AtA and entries of AtB are
// meaningful; the struct is sized for 3D and used truncated for 2D so a
// single type serves both.
type Accumulator struct {
	Dims int

	AtA [3][3]float64
	AtB [3]float64
	BtB float64

	MassSum   [3]float64
	MassCount float64
}

// NewAccumulator returns an empty accumulator for the given dimension.
func NewAccumulator(dims int) *Accumulator {
	return &Accumulator{Dims: dims}
}

// Add folds one Hermite sample (p, unit gradient n) into the system: the
// row [n; n.p] is added to (AtA | AtB), n.p^2 to BtB, and p to the mass
// point.
func (a *Accumulator) Add(p, n [3]float32) {
	var row [3]float64
	for i := 0; i < a.Dims; i++ {
		row[i] = float64(n[i])
	}
	var b float64
	for i := 0; i < a.Dims; i++ {
		b += row[i] * float64(p[i])
	}
	for i := 0; i < a.Dims; i++ {
		for j := 0; j < a.Dims; j++ {
			a.AtA[i][j] += row[i] * row[j]
		}
		a.AtB[i] += row[i] * b
	}
	a.BtB += b * b

	for i := 0; i < a.Dims; i++ {
		a.MassSum[i] += float64(p[i])
	}
	a.MassCount++
}

// AddMatrices sums another accumulator's AtA, AtB and BtB into this one.
// Mass-point aggregation is deliberately excluded: branch collapse (spec
// §4.7, findBranchMatrices) only carries the mass point of the
// highest-rank children, which the caller selects explicitly via AddMass.
func (a *Accumulator) AddMatrices(b *Accumulator) {
	for i := 0; i < a.Dims; i++ {
		for j := 0; j < a.Dims; j++ {
			a.AtA[i][j] += b.AtA[i][j]
		}
		a.AtB[i] += b.AtB[i]
	}
	a.BtB += b.BtB
}

// AddMass folds another accumulator's mass point into this one.
func (a *Accumulator) AddMass(b *Accumulator) {
	for i := 0; i < a.Dims; i++ {
		a.MassSum[i] += b.MassSum[i]
	}
	a.MassCount += b.MassCount
}

// MassPoint returns the centroid of all accumulated samples (Sigma p / n).
// ok is false when no samples were ever accumulated, in which case the
// centroid is undefined and callers must fall back (spec §4.6/§7: a leaf
// with zero intersections is handled upstream, never here).
func (a *Accumulator) MassPoint() (p [3]float64, ok bool) {
	if a.MassCount == 0 {
		return p, false
	}
	for i := 0; i < a.Dims; i++ {
		p[i] = a.MassSum[i] / a.MassCount
	}
	return p, true
}
