package cloth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates a parameter set that cannot build a grid.
	ErrInvalidParams = errors.New("cloth: invalid parameters")

	// ErrGeometryChange indicates a retune that would alter the lattice shape.
	ErrGeometryChange = errors.New("cloth: geometry cannot change on a built grid")
)

// ParamError names the offending parameter.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("cloth: invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}
