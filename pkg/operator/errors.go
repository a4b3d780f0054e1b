package operator

import "errors"

// Sentinel errors for operation configuration and execution
var (
	// ErrInvalidConfig indicates an operation was constructed with an
	// unusable configuration; chains reject it before any run starts
	ErrInvalidConfig = errors.New("invalid operation configuration")

	// ErrCallableFailed wraps an error raised by a user-supplied mapper,
	// folder or reducer
	ErrCallableFailed = errors.New("user callable failed")
)
