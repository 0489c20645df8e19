package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrDiverged indicates a point left the finite range.
	ErrDiverged = errors.New("sim: simulation diverged (NaN or Inf detected)")

	// ErrCanceled indicates a run stopped because its context ended.
	ErrCanceled = errors.New("sim: run canceled by context")
)

// TickError wraps an error with the tick and point that produced it.
type TickError struct {
	Tick    int
	Point   int
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (point %d): %v", e.Tick, e.Point, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
