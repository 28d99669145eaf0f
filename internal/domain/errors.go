package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for lookup failures. Callers wrap these with the offending
// name via fmt.Errorf("%w: %q", ...) so errors.Is still matches.
var (
	// ErrUnknownVariant is returned when a variant name is not registered.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrDuplicateDraw is returned when a draw for the same variant and date
	// has already been ingested.
	ErrDuplicateDraw = errors.New("duplicate draw")
)

// InvalidParameterError reports a strategy parameter outside its declared
// bounds, of the wrong kind, or not accepted by the strategy at all.
// Out-of-range values are always rejected, never silently clamped.
type InvalidParameterError struct {
	Strategy string
	Param    string
	Value    float64
	Reason   string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q for strategy %q (value %v): %s",
		e.Param, e.Strategy, e.Value, e.Reason)
}

// ExhaustedPoolError reports that the batch generator could not produce the
// requested number of unique combinations within its attempt budget. The
// caller must treat this as undersupply; a short or duplicated batch is
// never returned instead.
type ExhaustedPoolError struct {
	Variant     string
	Strategy    string
	Requested   int
	Produced    int
	MaxAttempts int
}

func (e *ExhaustedPoolError) Error() string {
	return fmt.Sprintf("exhausted pool for variant %q: produced %d of %d requested combinations (strategy %q, %d attempts per slot)",
		e.Variant, e.Produced, e.Requested, e.Strategy, e.MaxAttempts)
}

// InvariantViolationError reports that a strategy returned a combination
// failing the structural invariants. This is always a defect in the strategy
// implementation; it propagates and fails the whole generation call rather
// than being swallowed or replaced with fallback random output.
type InvariantViolationError struct {
	Strategy   string
	Violations []string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("strategy %q produced an invalid combination: %s",
		e.Strategy, strings.Join(e.Violations, "; "))
}
