package observer

import "errors"

// Sentinel errors for observer registration
var (
	ErrInvalidObserver = errors.New("invalid observer")
	ErrObserverPanic   = errors.New("observer panicked")
)
