package fejer

import "errors"

var (
	// ErrNotNonNegative is returned when the input polynomial is not real
	// and non-negative on the circle: a caller precondition violation.
	ErrNotNonNegative = errors.New("fejer: polynomial is not non-negative on the circle")

	// ErrInvariantViolation is returned when an assembled intermediate
	// contradicts a structural guarantee, such as an odd-multiplicity root
	// on the unit circle or a root multiset that breaks the
	// conjugate-reciprocal pairing. Unreachable for inputs satisfying all
	// documented preconditions.
	ErrInvariantViolation = errors.New("fejer: internal invariant violation")

	// ErrNotConverged is returned when a bounded refinement ran out of
	// budget before certifying its result. Retrying with a larger budget is
	// a valid caller strategy.
	ErrNotConverged = errors.New("fejer: refinement budget exhausted")
)
