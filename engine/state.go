package engine

// Status is the positioning state machine's phase.
type Status int

const (
	StatusIdle           Status = iota // mounted, nothing located yet
	StatusMeasurePending               // window recomputed, heights not yet measured
	StatusMeasureSettled               // heights measured, pixel offsets final
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusMeasurePending:
		return "measure_pending"
	case StatusMeasureSettled:
		return "measure_settled"
	default:
		return "unknown"
	}
}

// Event drives Status transitions.
type Event int

const (
	EventScroll          Event = iota // container scroll notification
	EventRetarget                     // programmatic scroll
	EventItemsChanged                 // collection replaced
	EventRenderCommitted              // host measured the render window
	EventUnmount
)

func (e Event) String() string {
	switch e {
	case EventScroll:
		return "scroll"
	case EventRetarget:
		return "retarget"
	case EventItemsChanged:
		return "items_changed"
	case EventRenderCommitted:
		return "render_committed"
	case EventUnmount:
		return "unmount"
	default:
		return "unknown"
	}
}

// Dispatch is the transition function. A render commit only settles a
// pending measurement; anything that moves the window makes it pending again.
func Dispatch(s Status, ev Event) Status {
	switch ev {
	case EventScroll, EventRetarget, EventItemsChanged:
		return StatusMeasurePending
	case EventRenderCommitted:
		if s == StatusMeasurePending {
			return StatusMeasureSettled
		}
		return s
	case EventUnmount:
		return StatusIdle
	}
	return s
}

// State is the positioning state. It is a plain value: copying it is a
// snapshot, and two equal States describe the same screen.
type State struct {
	Status         Status
	ScrollOffset   float64
	Fraction       float64
	Located        int
	OffsetFraction float64
	Start          int
	End            int // inclusive; End < Start for an empty window
	LocatedTop     float64
	// WindowOffset is the absolute pixel offset of the first rendered item,
	// i.e. how far the filler shifts the rendered window.
	WindowOffset float64
}

// Location returns the Range Locator view of the state.
func (s State) Location() Location {
	return Location{Index: s.Located, Offset: s.OffsetFraction, Start: s.Start, End: s.End}
}
