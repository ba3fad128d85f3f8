package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_DefaultAndRecord(t *testing.T) {
	l := NewLedger(15)
	assert.Equal(t, 15.0, l.HeightOf("a"))
	assert.False(t, l.Has("a"))

	assert.True(t, l.Record("a", 40))
	assert.Equal(t, 40.0, l.HeightOf("a"))
	assert.False(t, l.Record("a", 40), "same value is not a change")
	assert.True(t, l.Record("a", 22))
	assert.Equal(t, 22.0, l.HeightOf("a"))
	assert.Equal(t, 1, l.Len())
}

func TestLedger_IgnoresNonPositive(t *testing.T) {
	l := NewLedger(15)
	assert.False(t, l.Record("a", 0))
	assert.False(t, l.Record("a", -3))
	assert.False(t, l.Has("a"))
}

func TestLedger_SetDefaultKeepsMeasurements(t *testing.T) {
	l := NewLedger(15)
	l.Record("a", 9)
	l.SetDefault(3)
	assert.Equal(t, 3.0, l.HeightOf("b"))
	assert.Equal(t, 9.0, l.HeightOf("a"))
	l.SetDefault(0)
	assert.Equal(t, 3.0, l.Default())
}

func TestLedger_ResetAndSnapshot(t *testing.T) {
	l := NewLedger(15)
	l.Record("a", 1)
	l.Record("b", 2)
	snap := l.Snapshot()
	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, map[string]float64{"a": 1, "b": 2}, snap)
}
