package config

import "errors"

// Sentinel errors for configuration validation
var (
	ErrInvalidMaxChains     = errors.New("invalid max chains: must be non-negative")
	ErrInvalidMaxOperations = errors.New("invalid max operations per chain: must be non-negative")
	ErrInvalidMaxLineBytes  = errors.New("invalid max line bytes: must be non-negative")
	ErrInvalidLogLevel      = errors.New("invalid log level")
)
