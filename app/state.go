package app

// State represents the current application state.
type State int

const (
	StateLoading  State = iota // Waiting for the first load of the source
	StateBrowsing              // List on screen, keys scroll it
	StateJumping               // Jump prompt has key focus
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateBrowsing:
		return "browsing"
	case StateJumping:
		return "jumping"
	default:
		return "unknown"
	}
}
