package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for cycloid operations.
var (
	// ErrParameterBounds indicates a radius, velocity or timing value that is
	// zero, negative, NaN or infinite.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidState indicates a computed position containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrTooManyFrames indicates a plan too long to materialise.
	ErrTooManyFrames = errors.New("dynamo: frame plan exceeds frame limit")

	// ErrNoFrames indicates a run without recorded frames.
	ErrNoFrames = errors.New("dynamo: no frames")
)

// ParameterError names the offending parameter.
type ParameterError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s = %g: %v", e.Name, e.Value, e.Wrapped)
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}
