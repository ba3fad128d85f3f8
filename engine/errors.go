package engine

import (
	"errors"
	"fmt"
)

// Error taxonomy. None of these abort an operation: MissingItem degrades to
// the default height, UnreachableTarget turns a scroll request into a no-op
// and DegenerateGeometry clamps the scroll fraction to 0.
var (
	ErrMissingItem        = errors.New("engine: missing item")
	ErrUnreachableTarget  = errors.New("engine: unreachable scroll target")
	ErrDegenerateGeometry = errors.New("engine: content does not overflow viewport")
)

// MissingItemError records a key lookup past the end of the collection.
type MissingItemError struct {
	Index int
	Len   int
}

func (e *MissingItemError) Error() string {
	return fmt.Sprintf("engine: no item at index %d (collection length %d)", e.Index, e.Len)
}

func (e *MissingItemError) Unwrap() error { return ErrMissingItem }
