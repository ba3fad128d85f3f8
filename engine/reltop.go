package engine

import "log/slog"

// KeyAt resolves the stable key of the item at index i. ok is false past the
// end of the collection.
type KeyAt func(i int) (key string, ok bool)

// KeysOf adapts a key slice to KeyAt.
func KeysOf(keys []string) KeyAt {
	return func(i int) (string, bool) {
		if i < 0 || i >= len(keys) {
			return "", false
		}
		return keys[i], true
	}
}

// Layout turns a Location into pixel distances from the viewport's top edge,
// using only ledger heights (measured or default).
type Layout struct {
	loc      Location
	fraction float64
	viewport float64
	n        int
	ledger   *Ledger
	keyAt    KeyAt
	logger   *slog.Logger

	locatedTop float64
}

// NewLayout anchors the located item for fraction f.
//
// The anchor line sits at f*viewport: at the top of the viewport for f=0 and
// at the bottom for f=1. The point Offset of the way into the located item is
// pinned to that line, so the item's own top is the anchor line minus the
// intra-item pixel offset.
func NewLayout(loc Location, f, viewport float64, n int, ledger *Ledger, keyAt KeyAt) Layout {
	l := Layout{
		loc:      loc,
		fraction: clamp01(f),
		viewport: viewport,
		n:        n,
		ledger:   ledger,
		keyAt:    keyAt,
	}
	l.locatedTop = l.fraction * viewport
	if !loc.IsSentinel(n) {
		l.locatedTop -= loc.Offset * l.heightAt(loc.Index)
	}
	return l
}

// Location returns the location the layout was built from.
func (l Layout) Location() Location { return l.loc }

// LocatedTop is the located item's relative top.
func (l Layout) LocatedTop() float64 { return l.locatedTop }

// LocatedAbsoluteTop is the located item's top measured from the content
// origin for the given scroll offset.
func (l Layout) LocatedAbsoluteTop(scrollOffset float64) float64 {
	return scrollOffset + l.locatedTop
}

// Defined reports whether RelativeTopOf(i) has an answer: i must be inside
// the render window or be the located sentinel itself.
func (l Layout) Defined(i int) bool {
	return l.loc.Contains(i) || (i == l.loc.Index && i == l.n)
}

// RelativeTopOf walks the ledger from the located item to item i, subtracting
// heights when walking backward and adding them when walking forward.
func (l Layout) RelativeTopOf(i int) (float64, bool) {
	if !l.Defined(i) {
		return 0, false
	}
	top := l.locatedTop
	if i < l.loc.Index {
		for j := i; j < l.loc.Index; j++ {
			top -= l.heightAt(j)
		}
		return top, true
	}
	for j := l.loc.Index; j < i; j++ {
		top += l.heightAt(j)
	}
	return top, true
}

// AbsoluteTopOf is item i's top measured from the content origin.
func (l Layout) AbsoluteTopOf(i int, scrollOffset float64) (float64, bool) {
	top, ok := l.RelativeTopOf(i)
	return scrollOffset + top, ok
}

// WindowTop is the relative top of the first item in the render window, the
// amount the rendered window must be shifted by. It is 0 for an empty window.
func (l Layout) WindowTop() float64 {
	if l.loc.Size() == 0 {
		return 0
	}
	top, _ := l.RelativeTopOf(l.loc.Start)
	return top
}

func (l Layout) heightAt(i int) float64 {
	key, ok := l.keyAt(i)
	if !ok {
		if l.logger != nil {
			l.logger.Debug("height lookup degraded to default",
				"err", &MissingItemError{Index: i, Len: l.n})
		}
		return l.ledger.Default()
	}
	return l.ledger.HeightOf(key)
}
