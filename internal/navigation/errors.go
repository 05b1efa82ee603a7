package navigation

import (
	"errors"
	"fmt"
)

// Domain errors for navigation runs.
var (
	// ErrInvalidConfiguration indicates a negative noise level or a non-positive step size.
	ErrInvalidConfiguration = errors.New("navigation: invalid configuration")

	// ErrPhaseTransition indicates a run entry point was called out of order.
	ErrPhaseTransition = errors.New("navigation: invalid phase transition")

	// ErrStepLimit indicates the homing loop hit its iteration ceiling.
	ErrStepLimit = errors.New("navigation: homing step limit reached")
)

// RunError wraps an error with the controller state at the time it happened.
type RunError struct {
	Phase   Phase
	Step    int
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s step %d: %v", e.Phase, e.Step, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
