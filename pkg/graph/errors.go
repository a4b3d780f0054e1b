package graph

import "errors"

// Sentinel errors for chain wiring and scheduling
var (
	// ErrCycleDetected indicates the chain dependency graph contains a cycle
	ErrCycleDetected = errors.New("cycle detected in chain dependencies")

	// ErrEndOfStream is returned by Iterator.Next once the stream is drained.
	// It is a control signal, not a failure.
	ErrEndOfStream = errors.New("end of stream")

	// ErrNilChain indicates a nil chain was passed where a chain is required
	ErrNilChain = errors.New("chain must not be nil")

	// ErrNilOperation indicates a nil operation was appended to a chain
	ErrNilOperation = errors.New("operation must not be nil")
)
