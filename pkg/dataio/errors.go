package dataio

import "errors"

// Sentinel errors for record input and output
var (
	// ErrDecode indicates an input line could not be parsed as a record
	ErrDecode = errors.New("record decode failed")

	// ErrRead indicates the input handle failed while being read
	ErrRead = errors.New("reading input failed")

	// ErrWrite indicates the output handle failed while being written
	ErrWrite = errors.New("writing output failed")
)
