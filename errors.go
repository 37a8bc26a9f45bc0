package stripemap

import "errors"

var (
	// ErrInvalidCapacity is returned by the constructors when the requested
	// capacity is not positive.
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")

	// ErrInvalidConcurrencyLevel is returned by the constructors when the
	// requested concurrency level is not positive.
	ErrInvalidConcurrencyLevel = errors.New("concurrency level must be greater than zero")

	// ErrKeyNotFound is returned by lookup operations when no entry matches
	// the given key.
	ErrKeyNotFound = errors.New("key not found")
)
