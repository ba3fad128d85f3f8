package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	assert.Equal(t, 20, Capacity(300, 15))
	assert.Equal(t, 21, Capacity(301, 15))
	assert.Equal(t, 1, Capacity(0, 15))
	assert.Equal(t, 1, Capacity(300, 0))
}

func TestLocate_ThousandItems(t *testing.T) {
	capacity := Capacity(300, 15)
	require.Equal(t, 20, capacity)

	loc := Locate(0.5, 1000, capacity)
	assert.Equal(t, 500, loc.Index)
	assert.Equal(t, 0.0, loc.Offset)
	assert.Equal(t, 490, loc.Start)
	assert.Equal(t, 510, loc.End)
}

func TestLocate_OffsetIsSliceRemainder(t *testing.T) {
	loc := Locate(0.125, 10, 4)
	assert.Equal(t, 1, loc.Index)
	assert.InDelta(t, 0.25, loc.Offset, 1e-12)
}

func TestLocate_WindowInvariants(t *testing.T) {
	for _, n := range []int{1, 2, 7, 20, 21, 100, 1000} {
		for _, capacity := range []int{1, 3, 20, 50} {
			for i := 0; i < 200; i++ {
				f := float64(i) / 200
				loc := Locate(f, n, capacity)
				require.LessOrEqual(t, 0, loc.Start, "n=%d cap=%d f=%v", n, capacity, f)
				require.LessOrEqual(t, loc.Start, loc.Index, "n=%d cap=%d f=%v", n, capacity, f)
				require.LessOrEqual(t, loc.Index, loc.End, "n=%d cap=%d f=%v", n, capacity, f)
				require.LessOrEqual(t, loc.End, n-1, "n=%d cap=%d f=%v", n, capacity, f)
				require.GreaterOrEqual(t, loc.Size(), min(capacity, n))
				require.GreaterOrEqual(t, loc.Offset, 0.0)
				require.Less(t, loc.Offset, 1.0)
			}
		}
	}
}

func TestLocate_FullFractionLandsOnSentinel(t *testing.T) {
	loc := Locate(1, 1000, 20)
	assert.True(t, loc.IsSentinel(1000))
	assert.Equal(t, 1000, loc.Index)
	assert.Equal(t, 0.0, loc.Offset)
	// The sentinel sits just past a full window of real items.
	assert.Equal(t, 999, loc.End)
	assert.Equal(t, 980, loc.Start)
}

func TestLocate_EdgesKeepWindowFull(t *testing.T) {
	top := Locate(0, 1000, 20)
	assert.Equal(t, 0, top.Index)
	assert.Equal(t, 0, top.Start)
	assert.Equal(t, 19, top.End)

	small := Locate(0.5, 5, 20)
	assert.Equal(t, 0, small.Start)
	assert.Equal(t, 4, small.End)
}

func TestLocate_EmptyCollection(t *testing.T) {
	for _, f := range []float64{0, 0.5, 1} {
		loc := Locate(f, 0, 20)
		assert.Equal(t, 0, loc.Size())
		assert.True(t, loc.IsSentinel(0))
		assert.False(t, loc.Contains(0))
	}
}
