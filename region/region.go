// Package region implements axis-aligned regions and their discretization
// into power-of-two subregions, the unit that the XTree recursion splits.
package region

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval is returned when an axis interval has its bounds
// reversed (lower > upper).
var ErrInvalidInterval = errors.New("region: interval lower bound exceeds upper bound")

// ErrInvalidResolution is returned when a non-positive resolution is
// supplied to NewRegion2/NewRegion3.
var ErrInvalidResolution = errors.New("region: resolution must be > 0")

// Interval is a closed range [Lo, Hi] on one axis.
type Interval struct {
	Lo, Hi float32
}

// Length returns Hi - Lo.
func (iv Interval) Length() float32 {
	return iv.Hi - iv.Lo
}

// Region is an axis-aligned bounding box over x, y (and, for 3D regions,
// z) plus a uniform sampling resolution expressed in voxels per unit.
//
// A 2D region is a Region whose Z interval is degenerate (Lo == Hi); Dims
// reports which case applies.
type Region struct {
	X, Y, Z Interval
	Res     float32
	Dims    int
}

// NewRegion3 validates and builds a 3D region.
func NewRegion3(x, y, z Interval, res float32) (Region, error) {
	if err := checkInterval(x, y, z); err != nil {
		return Region{}, err
	}
	if res <= 0 {
		return Region{}, ErrInvalidResolution
	}
	return Region{X: x, Y: y, Z: z, Res: res, Dims: 3}, nil
}

// NewRegion2 validates and builds a 2D region at the given z plane.
func NewRegion2(x, y Interval, z float32, res float32) (Region, error) {
	if err := checkInterval(x, y, Interval{z, z}); err != nil {
		return Region{}, err
	}
	if res <= 0 {
		return Region{}, ErrInvalidResolution
	}
	return Region{X: x, Y: y, Z: Interval{z, z}, Res: res, Dims: 2}, nil
}

func checkInterval(axes ...Interval) error {
	for i, a := range axes {
		if a.Lo > a.Hi {
			return fmt.Errorf("%w (axis %d: [%v, %v])", ErrInvalidInterval, i, a.Lo, a.Hi)
		}
	}
	return nil
}

// axis returns the axis i (0=x,1=y,2=z) of the region.
func (r Region) axis(i int) Interval {
	switch i {
	case 0:
		return r.X
	case 1:
		return r.Y
	default:
		return r.Z
	}
}

// PowerOfTwo pads each of the first Dims axes to the next power-of-two
// voxel count, anchored at the lower bound, so that recursive even splits
// of the resulting Subregion terminate exactly at single voxels.
func (r Region) PowerOfTwo() Subregion {
	var s Subregion
	s.dims = r.Dims
	for i := 0; i < 3; i++ {
		a := r.axis(i)
		if i >= r.Dims {
			// Non-subdivided axis (z of a 2D region): a single degenerate
			// voxel, carried along but never split.
			s.axes[i] = axisState{lo: a.Lo, voxel: 0, n: 1}
			continue
		}
		n := voxelCount(a.Length(), r.Res)
		n = nextPow2(n)
		if n == 0 {
			n = 1
		}
		voxel := a.Length() / float32(voxelCount(a.Length(), r.Res))
		if voxel <= 0 {
			voxel = 1 / r.Res
		}
		s.axes[i] = axisState{lo: a.Lo, voxel: voxel, n: n}
	}
	return s
}

// voxelCount returns length*res rounded to the nearest whole number of
// voxels, with a floor of 1.
func voxelCount(length float32, res float32) uint32 {
	n := uint32(length*res + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// nextPow2 rounds v up to the next power of two, adapted from the
// teacher's dtNextPow2 bit-twiddle (formerly at the module root).
func nextPow2(v uint32) uint32 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v++
	return v
}
