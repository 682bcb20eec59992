package cache

import "fmt"

type constError string

func (errStr constError) Error() string { return string(errStr) }

const (
	// ErrNotFound is returned by Get and Load when the key is not resident.
	// A key remembered only by the ghost registry is still "not found":
	// ghosts carry no value.
	ErrNotFound = constError("key not found")

	// ErrEmptyKey is returned when a caller passes an empty key.
	// This is a programming error, not a retryable condition.
	ErrEmptyKey = constError("empty key")

	// ErrNilValue is returned by Put when a caller passes a nil value.
	ErrNilValue = constError("nil value")

	// ErrInvalidCapacity may be returned from New.
	ErrInvalidCapacity = constError("invalid capacity")

	// ErrNothingToEvict is returned when eviction runs with both resident
	// queues empty. Under correct occupancy accounting this is unreachable;
	// seeing it means a bookkeeping bug, not a full cache.
	ErrNothingToEvict = constError("nothing to evict")
)

func minCapacityError(capacity int) error {
	return fmt.Errorf("%w: must be >=1 but %d was requested",
		ErrInvalidCapacity, capacity)
}
