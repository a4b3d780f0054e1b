package record

import "errors"

// Sentinel errors for the record model
var (
	// ErrMissingField indicates a row does not carry a key required by an operation
	ErrMissingField = errors.New("row is missing required field")

	// ErrIncomparable indicates an ordering was requested between value kinds
	// that have no defined order
	ErrIncomparable = errors.New("values are not comparable")

	// ErrEmptyKey indicates a row key was empty
	ErrEmptyKey = errors.New("row keys must be non-empty")

	// ErrUnsupportedValue indicates a value that cannot be represented as a
	// record field (for example a nested object)
	ErrUnsupportedValue = errors.New("unsupported field value")
)
