package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollFraction_Endpoints(t *testing.T) {
	assert.Equal(t, 0.0, ScrollFraction(0, 15000, 300))
	assert.Equal(t, 1.0, ScrollFraction(14700, 15000, 300))
	assert.Equal(t, 0.5, ScrollFraction(7350, 15000, 300))
}

func TestScrollFraction_Clamps(t *testing.T) {
	assert.Equal(t, 0.0, ScrollFraction(-50, 15000, 300))
	assert.Equal(t, 1.0, ScrollFraction(99999, 15000, 300))
}

func TestScrollFraction_DegenerateGeometry(t *testing.T) {
	// Content fits the viewport: no span, fraction is always 0.
	assert.Equal(t, 0.0, ScrollFraction(10, 200, 300))
	assert.Equal(t, 0.0, ScrollFraction(10, 300, 300))
	assert.ErrorIs(t, CheckGeometry(300, 300), ErrDegenerateGeometry)
	assert.NoError(t, CheckGeometry(301, 300))
}

func TestScrollFraction_Monotonic(t *testing.T) {
	prev := -1.0
	for off := -10.0; off <= 1300; off += 7 {
		f := ScrollFraction(off, 1500, 300)
		require.GreaterOrEqual(t, f, prev, "offset %v", off)
		prev = f
	}
}

func TestOffsetForFraction_Inverse(t *testing.T) {
	for _, off := range []float64{0, 1, 250, 600, 1199, 1200} {
		f := ScrollFraction(off, 1500, 300)
		assert.InDelta(t, off, OffsetForFraction(f, 1500, 300), 1e-9)
	}
	assert.Equal(t, 0.0, OffsetForFraction(0.7, 100, 300))
	assert.Equal(t, 1200.0, MaxScrollOffset(1500, 300))
	assert.Equal(t, 0.0, MaxScrollOffset(100, 300))
}
