package engine

import "math"

// ScrollFraction maps an absolute scroll offset onto [0,1].
//
// The denominator is the scrollable span (content minus viewport), floored at
// one pixel. Content that fits inside the viewport has no span at all and
// always reports 0.
func ScrollFraction(offset, scrollableHeight, viewportHeight float64) float64 {
	span := scrollableHeight - viewportHeight
	if span <= 0 {
		return 0
	}
	return clamp01(offset / math.Max(1, span))
}

// OffsetForFraction is the inverse of ScrollFraction: it returns the scroll
// offset that reports fraction f for the same geometry.
func OffsetForFraction(f, scrollableHeight, viewportHeight float64) float64 {
	span := scrollableHeight - viewportHeight
	if span <= 0 {
		return 0
	}
	return math.Min(clamp01(f)*math.Max(1, span), span)
}

// MaxScrollOffset returns the largest valid scroll offset for the geometry.
func MaxScrollOffset(scrollableHeight, viewportHeight float64) float64 {
	return math.Max(0, scrollableHeight-viewportHeight)
}

// CheckGeometry reports ErrDegenerateGeometry when the content does not
// overflow the viewport. Callers treat it as a hint, never as a failure.
func CheckGeometry(scrollableHeight, viewportHeight float64) error {
	if scrollableHeight-viewportHeight <= 0 {
		return ErrDegenerateGeometry
	}
	return nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
