package engine

import "math"

// Location is the Range Locator's answer for one scroll fraction.
type Location struct {
	// Index is the located item. It equals the collection length (the
	// end-of-list sentinel) when the fraction is exactly 1 or the collection
	// is empty.
	Index int
	// Offset is the position inside the located item's slice, in [0,1).
	// Always 0 for the sentinel.
	Offset float64
	// Start and End bound the render window, inclusive. End < Start means
	// the window is empty.
	Start int
	End   int
}

// IsSentinel reports whether the located item is the end-of-list sentinel.
func (l Location) IsSentinel(n int) bool { return l.Index >= n }

// Size returns the number of items in the render window.
func (l Location) Size() int {
	if l.End < l.Start {
		return 0
	}
	return l.End - l.Start + 1
}

// Contains reports whether item i is inside the render window.
func (l Location) Contains(i int) bool { return i >= l.Start && i <= l.End }

// Capacity is the number of assumed-height items that fit in the viewport,
// never less than one.
func Capacity(viewportHeight, assumedItemHeight float64) int {
	if viewportHeight <= 0 || assumedItemHeight <= 0 {
		return 1
	}
	c := int(math.Ceil(viewportHeight / assumedItemHeight))
	if c < 1 {
		return 1
	}
	return c
}

// Locate maps a scroll fraction onto n equal slices, one per item, without
// looking at any real height.
//
// The render window keeps capacity/2 items on each side of the located item,
// clamped to [0, n-1]. When a clamp cuts the window below min(capacity, n)
// items the opposite edge grows to compensate, so the window stays full near
// both ends of the list.
func Locate(f float64, n, capacity int) Location {
	if n <= 0 {
		return Location{Index: 0, Start: 0, End: -1}
	}
	if capacity < 1 {
		capacity = 1
	}

	pos := clamp01(f) * float64(n)
	idx := int(math.Floor(pos))
	off := pos - float64(idx)
	if idx >= n {
		idx, off = n, 0
	}

	half := capacity / 2
	start := max(0, idx-half)
	end := min(n-1, idx+half)

	want := min(capacity, n)
	if end-start+1 < want {
		if start == 0 {
			end = min(n-1, want-1)
		} else {
			start = max(0, end-want+1)
		}
	}

	return Location{Index: idx, Offset: off, Start: start, End: end}
}
