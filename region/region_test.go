package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegion3InvalidInterval(t *testing.T) {
	_, err := NewRegion3(Interval{1, -1}, Interval{-1, 1}, Interval{-1, 1}, 1)
	assert.Error(t, err, "expected error for inverted interval")
}

func TestNewRegion3InvalidResolution(t *testing.T) {
	_, err := NewRegion3(Interval{-1, 1}, Interval{-1, 1}, Interval{-1, 1}, 0)
	assert.Error(t, err, "expected error for non-positive resolution")
}

func TestPowerOfTwoSplitsToSingleVoxel(t *testing.T) {
	r, err := NewRegion3(Interval{-1, 1}, Interval{-1, 1}, Interval{-1, 1}, 1)
	require.NoError(t, err)
	s := r.PowerOfTwo()
	for s.CanSplit() {
		children := s.SplitEven()
		s = children[0]
	}
	// A single voxel can no longer be split.
	assert.False(t, s.CanSplit(), "expected recursion to terminate at a single voxel")
}

func TestSplitEvenCornerOrdering(t *testing.T) {
	r, err := NewRegion3(Interval{0, 2}, Interval{0, 2}, Interval{0, 2}, 1)
	require.NoError(t, err)
	s := r.PowerOfTwo()
	children := s.SplitEven()
	lo := s.Lower()
	center := s.Center()
	for i := 0; i < 8; i++ {
		clo := children[i].Lower()
		for axis := 0; axis < 3; axis++ {
			bit := (i >> uint(axis)) & 1
			if bit == 0 {
				assert.Equalf(t, lo[axis], clo[axis], "child %d axis %d: want low side", i, axis)
			} else {
				assert.Equalf(t, center[axis], clo[axis], "child %d axis %d: want high side", i, axis)
			}
		}
	}
}

func TestCornerNumbering(t *testing.T) {
	r, err := NewRegion3(Interval{0, 1}, Interval{0, 2}, Interval{0, 4}, 1)
	require.NoError(t, err)
	s := r.PowerOfTwo()
	// corner 0b101 = bit0 (x) high, bit1 (y) low, bit2 (z) high
	c := s.Corner(0b101)
	assert.Equal(t, [3]float32{1, 0, 4}, c)
}

func Test2DRegionDegenerateZ(t *testing.T) {
	r, err := NewRegion2(Interval{-1, 1}, Interval{-1, 1}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Dims)
	s := r.PowerOfTwo()
	assert.True(t, s.CanSplitEven(), "expected an even split to be possible at the root")
}
