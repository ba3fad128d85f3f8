// Package msg defines the tea.Msg types dispatched within the list viewer.
// It has no upstream imports (model, source) to avoid import cycles.
package msg

import "time"

// -- Rendering --

// FrameMsg marks one rendering-frame boundary for the list's frame queue.
type FrameMsg struct{}

// TickMsg drives once-a-second housekeeping (toast expiry).
type TickMsg time.Time

// -- Sources --

// RefreshMsg asks the app to reload the active source. Live sources schedule
// one every refresh interval.
type RefreshMsg struct {
	// Gen matches the refresh loop that scheduled it; stale loops stop.
	Gen int
}

// SourceError reports a failed load. The previous items stay on screen.
type SourceError struct {
	Source string
	Gen    int
	Err    error
}

// -- Navigation --

// JumpRequest scrolls item Index so that its top sits Offset lines below the
// viewport's top edge.
type JumpRequest struct {
	Index  int
	Offset float64
}

// JumpCancelled closes the jump prompt without moving.
type JumpCancelled struct{}
