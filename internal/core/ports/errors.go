package ports

import "errors"

var (
	// ErrUniqueViolation is returned by a store when an insert collides with a
	// uniqueness constraint, e.g. the order idempotency key.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrConditionNotMet is returned by a conditional update that matched no row
	// because the stored state no longer equals the expected one.
	ErrConditionNotMet = errors.New("conditional update matched no row")
)
