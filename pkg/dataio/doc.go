// Package dataio reads and writes the engine's record streams as
// line-delimited JSON.
//
// Each line of an input holds one JSON object with string keys and
// scalar or list values. Lines whose stripped length is two characters
// or fewer are skipped silently — this deliberately drops degenerate
// payloads like a bare "{}" and blank lines, and pipelines depend on
// the behavior staying put. Every surviving line must decode; a line
// that does not is a decode error that aborts the run.
//
// Output is symmetric: one JSON object per line, trailing newline per
// record, handle closed at completion.
package dataio
