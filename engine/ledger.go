package engine

// Ledger caches the last measured height of every item by stable key.
//
// Entries are only written while the item is mounted and measured. Items
// that leave the render window keep their stale entry until they are
// measured again; a missing entry means the default height.
type Ledger struct {
	heights map[string]float64
	def     float64
}

// NewLedger creates an empty ledger that answers defaultHeight for unknown keys.
func NewLedger(defaultHeight float64) *Ledger {
	return &Ledger{
		heights: make(map[string]float64),
		def:     defaultHeight,
	}
}

// Record stores a measured height. Non-positive heights are ignored.
// It reports whether the stored value changed.
func (l *Ledger) Record(key string, height float64) bool {
	if height <= 0 {
		return false
	}
	if prev, ok := l.heights[key]; ok && prev == height {
		return false
	}
	l.heights[key] = height
	return true
}

// HeightOf returns the measured height for key, or the default.
func (l *Ledger) HeightOf(key string) float64 {
	if h, ok := l.heights[key]; ok {
		return h
	}
	return l.def
}

// Has reports whether key has ever been measured.
func (l *Ledger) Has(key string) bool {
	_, ok := l.heights[key]
	return ok
}

// Len returns the number of measured keys.
func (l *Ledger) Len() int { return len(l.heights) }

// Default returns the assumed height for unmeasured items.
func (l *Ledger) Default() float64 { return l.def }

// SetDefault changes the assumed height. Measured entries are kept.
func (l *Ledger) SetDefault(h float64) {
	if h > 0 {
		l.def = h
	}
}

// Snapshot returns a copy of the measured entries.
func (l *Ledger) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(l.heights))
	for k, v := range l.heights {
		out[k] = v
	}
	return out
}

// Reset drops every measurement.
func (l *Ledger) Reset() {
	l.heights = make(map[string]float64)
}
