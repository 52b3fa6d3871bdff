package growth

import (
	"errors"
	"fmt"
)

// Domain errors for growth model operations.
var (
	// ErrMissingParameter indicates a required key absent from a ParameterSet.
	ErrMissingParameter = errors.New("growth: missing parameter")

	// ErrAliasConflict indicates "d" and "delta" were both given with different values.
	ErrAliasConflict = errors.New("growth: conflicting values for d and delta")

	// ErrDegenerateDenominator indicates a division by zero in a formula.
	ErrDegenerateDenominator = errors.New("growth: degenerate denominator")

	// ErrInvalidDomain indicates a fractional power of a negative base or a non-finite result.
	ErrInvalidDomain = errors.New("growth: value outside function domain")

	// ErrInvalidStepCount indicates a simulation requested with fewer than one step.
	ErrInvalidStepCount = errors.New("growth: step count must be at least 1")
)

// ComputationError wraps an error with the operation that produced it.
// Step is -1 when the failure is not tied to a simulation step.
type ComputationError struct {
	Op    string
	Step  int
	Value float64
	Err   error
}

func (e *ComputationError) Error() string {
	if e.Step >= 0 {
		return fmt.Sprintf("%s: step %d (value %g): %v", e.Op, e.Step, e.Value, e.Err)
	}
	return fmt.Sprintf("%s (value %g): %v", e.Op, e.Value, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

func fail(op string, value float64, err error) error {
	return &ComputationError{Op: op, Step: -1, Value: value, Err: err}
}

func failAt(op string, step int, value float64, err error) error {
	return &ComputationError{Op: op, Step: step, Value: value, Err: err}
}
