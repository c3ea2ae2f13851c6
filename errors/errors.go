package errors

import "errors"

// Errors returned by the deque and its supporting packages.
// Causes are wrapped behind these sentinels, so test with errors.Is.
var (
	ErrOutOfRange          = errors.New("index out of range")
	ErrAllocationFailure   = errors.New("page allocation failed")
	ErrConstructionFailure = errors.New("element construction failed")
	ErrForeignIterator     = errors.New("iterator belongs to another deque")
	ErrStaleIterator       = errors.New("iterator was invalidated by a reallocation")
	ErrInvalidConfig       = errors.New("invalid deque configuration")
)

var ErrStatsAlreadyInitialized = errors.New("stats already initialized")
