package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrItemNotFound is returned when a vocabulary item does not exist.
	ErrItemNotFound = errors.New("vocabulary item not found")

	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific errors wrap this one.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails for a
	// reason other than the entity being absent.
	ErrUpdateFailed = errors.New("update failed")
)

// IsNotFoundError returns true when err indicates a missing entity,
// regardless of which entity-specific sentinel was used.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrItemNotFound)
}
