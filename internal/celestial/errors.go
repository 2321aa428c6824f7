package celestial

import (
	"errors"
	"fmt"
)

// Validation errors returned at the store boundary.
var (
	// ErrInvalidMass indicates a mass that is not strictly positive and finite.
	ErrInvalidMass = errors.New("celestial: mass must be positive and finite")

	// ErrNonFinite indicates a NaN or Inf component in position or velocity.
	ErrNonFinite = errors.New("celestial: non-finite position or velocity")

	// ErrUnknownBody indicates an id that is not present in the store.
	ErrUnknownBody = errors.New("celestial: unknown body")
)

// InvariantError reports a bookkeeping mismatch between integration results
// and the live store. It signals a programming defect and is raised with
// panic, never returned.
type InvariantError struct {
	Op      string
	ID      ID
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("celestial: invariant violated in %s (body %d): %s", e.Op, e.ID, e.Message)
}
