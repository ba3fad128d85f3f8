package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivergence(t *testing.T) {
	cases := []struct {
		name     string
		old, new []string
		want     int
	}{
		{"insert front", []string{"a", "b"}, []string{"x", "a", "b"}, 0},
		{"insert middle", []string{"a", "b", "c"}, []string{"a", "x", "b", "c"}, 1},
		{"append", []string{"a", "b"}, []string{"a", "b", "c"}, 2},
		{"remove front", []string{"a", "b", "c"}, []string{"b", "c"}, 0},
		{"remove tail", []string{"a", "b", "c"}, []string{"a", "b"}, 2},
		{"empty old", nil, []string{"a"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Divergence(SnapshotOf(tc.old), SnapshotOf(tc.new)))
		})
	}
}

// placeKey scrolls an engine so that item i sits at rel pixels, and returns
// the relative top actually achieved.
func placeKey(t *testing.T, e *Engine[string], i int, rel float64) float64 {
	t.Helper()
	require.True(t, e.ScrollToRelative(RelativeTarget{ItemIndex: i, RelativeTop: rel}))
	e.CommitMeasurements(MeasureFunc(func(string) (float64, bool) { return 0, false }))
	top, ok := e.RelativeTopOf(i)
	require.True(t, ok)
	return top
}

func TestReconcile_InsertAtFrontKeepsVisibleItemStill(t *testing.T) {
	box := &fakeContainer{height: 300}
	e := New(identity, box, WithAssumedItemHeight(15))
	e.SetItems(seqKeys("", 100))

	before := placeKey(t, e, 50, 120)
	require.InDelta(t, 120, before, 1e-9)

	e.SetItems(append([]string{"new"}, seqKeys("", 100)...))

	idx := indexOf(e.Items(), "50")
	require.Equal(t, 51, idx)
	after, ok := e.RelativeTopOf(idx)
	require.True(t, ok)
	assert.InDelta(t, 120, after, 1)
}

func TestReconcile_InsertAtFrontWithMeasuredHeights(t *testing.T) {
	box := &fakeContainer{height: 300}
	e := New(identity, box, WithAssumedItemHeight(15))
	keys := seqKeys("", 100)
	e.SetItems(keys)
	for i, k := range keys {
		e.Ledger().Record(k, float64(10+i%11))
	}

	before := placeKey(t, e, 50, 120)
	require.InDelta(t, 120, before, 1)

	e.SetItems(append([]string{"new"}, keys...))
	after, ok := e.RelativeTopOf(51)
	require.True(t, ok)
	assert.InDelta(t, before, after, 1)
	assert.InDelta(t, 120, after, 1.5)
}

func TestReconcile_RemoveAtFront(t *testing.T) {
	keys := seqKeys("", 100)
	ledger := NewLedger(15)
	req := ReconcileRequest{
		Old:               SnapshotOf(keys),
		New:               SnapshotOf(keys[1:]),
		ScrollOffset:      600,
		ViewportHeight:    300,
		AssumedItemHeight: 15,
		Ledger:            ledger,
	}
	target, ok := Reconcile(req)
	require.True(t, ok)

	f := ScrollFraction(600, 1500, 300)
	loc := Locate(f, 100, 20)
	// Divergence is above the window: its first item anchors, one index lower.
	assert.Equal(t, loc.Start-1, target.ItemIndex)
	top, _ := NewLayout(loc, f, 300, 100, ledger, KeysOf(keys)).RelativeTopOf(loc.Start)
	assert.Equal(t, top, target.RelativeTop)
}

func TestReconcile_ChangeBelowWindowAnchorsLastWindowItem(t *testing.T) {
	keys := seqKeys("", 100)
	ledger := NewLedger(15)
	target, ok := Reconcile(ReconcileRequest{
		Old:               SnapshotOf(keys),
		New:               SnapshotOf(append(append([]string{}, keys...), "tail")),
		ScrollOffset:      0,
		ViewportHeight:    300,
		AssumedItemHeight: 15,
		Ledger:            ledger,
	})
	require.True(t, ok)
	assert.Equal(t, 19, target.ItemIndex)
	assert.Equal(t, 19*15.0, target.RelativeTop)
}

func TestReconcile_InsideWindowAnchorsItemAboveChange(t *testing.T) {
	keys := seqKeys("", 100)
	next := append(append(append([]string{}, keys[:5]...), "x"), keys[5:]...)
	target, ok := Reconcile(ReconcileRequest{
		Old:               SnapshotOf(keys),
		New:               SnapshotOf(next),
		ViewportHeight:    300,
		AssumedItemHeight: 15,
		Ledger:            NewLedger(15),
	})
	require.True(t, ok)
	// Item 4 is the last one before the insert and keeps its index and top.
	assert.Equal(t, 4, target.ItemIndex)
	assert.Equal(t, 60.0, target.RelativeTop)
}

func TestReconcile_InsertAtFrontOfVisibleHead(t *testing.T) {
	keys := seqKeys("", 100)
	target, ok := Reconcile(ReconcileRequest{
		Old:               SnapshotOf(keys),
		New:               SnapshotOf(append([]string{"x"}, keys...)),
		ViewportHeight:    300,
		AssumedItemHeight: 15,
		Ledger:            NewLedger(15),
	})
	require.True(t, ok)
	assert.Equal(t, 1, target.ItemIndex)
	assert.Equal(t, 0.0, target.RelativeTop)
}

func TestReconcile_RemoveBelowLocatedKeepsItemsAboveStill(t *testing.T) {
	box := &fakeContainer{height: 300}
	e := New(identity, box, WithAssumedItemHeight(15))
	keys := seqKeys("", 100)
	e.SetItems(keys)
	e.Ledger().Record("55", 40)

	placeKey(t, e, 50, 120)
	st := e.State()
	require.True(t, st.Location().Contains(55))
	require.Less(t, st.Located, 55)
	located := keys[st.Located]

	before := map[string]float64{}
	for _, k := range []string{"48", "50", "54", located} {
		top, ok := e.RelativeTopOf(indexOf(keys, k))
		require.True(t, ok)
		before[k] = top
	}

	next := append(append([]string{}, keys[:55]...), keys[56:]...)
	e.SetItems(next)

	for k, want := range before {
		top, ok := e.RelativeTopOf(indexOf(next, k))
		require.True(t, ok, "key %s", k)
		assert.InDelta(t, want, top, 1, "key %s", k)
	}
}

func TestReconcile_NothingSurvives(t *testing.T) {
	_, ok := Reconcile(ReconcileRequest{
		Old:               SnapshotOf([]string{"a", "b"}),
		New:               SnapshotOf([]string{"c"}),
		ViewportHeight:    300,
		AssumedItemHeight: 15,
		Ledger:            NewLedger(15),
	})
	assert.False(t, ok)

	_, ok = Reconcile(ReconcileRequest{
		Old:               SnapshotOf([]string{"a"}),
		New:               SnapshotOf(nil),
		ViewportHeight:    300,
		AssumedItemHeight: 15,
		Ledger:            NewLedger(15),
	})
	assert.False(t, ok)
}

func indexOf(keys []string, k string) int {
	for i, v := range keys {
		if v == k {
			return i
		}
	}
	return -1
}
