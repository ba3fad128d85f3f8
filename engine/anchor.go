package engine

import "log/slog"

// RelativeTarget asks for item ItemIndex to sit RelativeTop pixels below the
// viewport's top edge.
type RelativeTarget struct {
	ItemIndex   int
	RelativeTop float64
}

// Snapshot is one version of the collection, reduced to its keys.
type Snapshot struct {
	Len   int
	KeyAt KeyAt
}

// SnapshotOf builds a Snapshot over a key slice.
func SnapshotOf(keys []string) Snapshot {
	return Snapshot{Len: len(keys), KeyAt: KeysOf(keys)}
}

// ReconcileRequest carries everything needed to re-anchor after a length change.
type ReconcileRequest struct {
	Old, New          Snapshot
	ScrollOffset      float64
	ViewportHeight    float64
	AssumedItemHeight float64
	Ledger            *Ledger
	Logger            *slog.Logger
}

// Divergence returns the first index whose key differs between a and b, or
// the shorter length when one is a prefix of the other.
func Divergence(a, b Snapshot) int {
	n := min(a.Len, b.Len)
	for i := 0; i < n; i++ {
		ka, okA := a.KeyAt(i)
		kb, okB := b.KeyAt(i)
		if !okA || !okB || ka != kb {
			return i
		}
	}
	return n
}

// Reconcile re-expresses the old scroll position as a RelativeTarget against
// the new collection.
//
// The old layout is rebuilt from the old length, because the scrollable
// height (and so the fraction) depends on it. The anchor is the last
// unchanged item before the divergence point, or item 0 when the change starts
// at the front, as long as it is inside the old render window. Otherwise the
// first surviving window item at or after the divergence point anchors, and
// failing that the last surviving window item before it. Items above the
// change keep their ledger heights, so they stay where they were.
func Reconcile(req ReconcileRequest) (RelativeTarget, bool) {
	if req.Old.Len == 0 || req.New.Len == 0 || req.Ledger == nil {
		return RelativeTarget{}, false
	}

	scrollable := float64(req.Old.Len) * req.AssumedItemHeight
	f := ScrollFraction(req.ScrollOffset, scrollable, req.ViewportHeight)
	loc := Locate(f, req.Old.Len, Capacity(req.ViewportHeight, req.AssumedItemHeight))
	layout := NewLayout(loc, f, req.ViewportHeight, req.Old.Len, req.Ledger, req.Old.KeyAt)
	layout.logger = req.Logger

	d := Divergence(req.Old, req.New)

	var newIndex map[string]int
	lookup := func(oldIdx int) (int, bool) {
		key, ok := req.Old.KeyAt(oldIdx)
		if !ok {
			return 0, false
		}
		// Unchanged prefix keeps its index.
		if oldIdx < d {
			return oldIdx, true
		}
		if newIndex == nil {
			newIndex = make(map[string]int, req.New.Len)
			for i := d; i < req.New.Len; i++ {
				if k, ok := req.New.KeyAt(i); ok {
					newIndex[k] = i
				}
			}
		}
		i, ok := newIndex[key]
		return i, ok
	}

	anchor, target := -1, -1
	if a := max(d-1, 0); loc.Contains(a) {
		if ni, ok := lookup(a); ok {
			anchor, target = a, ni
		}
	}
	for a := max(d, loc.Start); anchor < 0 && a <= loc.End; a++ {
		if ni, ok := lookup(a); ok {
			anchor, target = a, ni
			break
		}
	}
	if anchor < 0 {
		for a := min(d, loc.End+1) - 1; a >= loc.Start; a-- {
			if ni, ok := lookup(a); ok {
				anchor, target = a, ni
				break
			}
		}
	}
	if anchor < 0 {
		return RelativeTarget{}, false
	}

	top, ok := layout.RelativeTopOf(anchor)
	if !ok {
		return RelativeTarget{}, false
	}
	if req.Logger != nil {
		req.Logger.Debug("reconciled length change",
			"old_len", req.Old.Len, "new_len", req.New.Len,
			"divergence", d, "anchor_old", anchor, "anchor_new", target, "top", top)
	}
	return RelativeTarget{ItemIndex: target, RelativeTop: top}, true
}
