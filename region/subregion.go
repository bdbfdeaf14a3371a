package region

// axisState is the discretized state of one axis of a Subregion: a lower
// world-space bound, the world-space size of one voxel, and the number of
// voxels currently spanned.
type axisState struct {
	lo    float32
	voxel float32
	n     uint32
}

func (a axisState) upper() float32 {
	return a.lo + a.voxel*float32(a.n)
}

// Subregion is a Region discretized into a power-of-two voxel grid. Corner
// and child indices follow the same numbering throughout this package and
// its dependents: bit i of an index selects the high (1) or low (0) side of
// axis i.
type Subregion struct {
	dims int
	axes [3]axisState
}

// Dims reports 2 or 3.
func (s Subregion) Dims() int { return s.dims }

// Lower returns the subregion's lower bound on each of the three axes (the
// third is meaningless, and fixed, for a 2D subregion).
func (s Subregion) Lower() [3]float32 {
	return [3]float32{s.axes[0].lo, s.axes[1].lo, s.axes[2].lo}
}

// Upper returns the subregion's upper bound on each of the three axes.
func (s Subregion) Upper() [3]float32 {
	return [3]float32{s.axes[0].upper(), s.axes[1].upper(), s.axes[2].upper()}
}

// Center returns the subregion's geometric center.
func (s Subregion) Center() [3]float32 {
	lo, hi := s.Lower(), s.Upper()
	return [3]float32{
		(lo[0] + hi[0]) / 2,
		(lo[1] + hi[1]) / 2,
		(lo[2] + hi[2]) / 2,
	}
}

// Corner returns the world position of corner i, 0 <= i < 1<<Dims, using
// the bit-per-axis numbering documented on Subregion.
func (s Subregion) Corner(i int) [3]float32 {
	lo, hi := s.Lower(), s.Upper()
	var p [3]float32
	for axis := 0; axis < 3; axis++ {
		if axis < s.dims && (i>>uint(axis))&1 == 1 {
			p[axis] = hi[axis]
		} else {
			p[axis] = lo[axis]
		}
	}
	return p
}

// CanSplit reports whether any subdivision axis still spans more than one
// voxel.
func (s Subregion) CanSplit() bool {
	for i := 0; i < s.dims; i++ {
		if s.axes[i].n > 1 {
			return true
		}
	}
	return false
}

// CanSplitEven reports whether every subdivision axis spans more than one
// voxel, i.e. an even split along all of them is possible.
func (s Subregion) CanSplitEven() bool {
	for i := 0; i < s.dims; i++ {
		if s.axes[i].n <= 1 {
			return false
		}
	}
	return true
}

// SplitEven splits the subregion in half along every subdivision axis,
// returning the 1<<Dims children indexed by the corner-numbering scheme: in
// child i, axis a is the high half of the parent iff bit a of i is set.
//
// Only the first 1<<Dims entries of the returned array are meaningful.
func (s Subregion) SplitEven() [8]Subregion {
	var half [3]axisState
	for i := 0; i < 3; i++ {
		a := s.axes[i]
		if i < s.dims {
			half[i] = axisState{lo: a.lo, voxel: a.voxel, n: a.n / 2}
		} else {
			half[i] = a
		}
	}

	var out [8]Subregion
	count := 1 << uint(s.dims)
	for i := 0; i < count; i++ {
		child := Subregion{dims: s.dims, axes: half}
		for axis := 0; axis < s.dims; axis++ {
			if (i>>uint(axis))&1 == 1 {
				child.axes[axis].lo = half[axis].lo + half[axis].voxel*float32(half[axis].n)
			}
		}
		out[i] = child
	}
	return out
}
