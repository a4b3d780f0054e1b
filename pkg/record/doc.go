// Package record defines the schemaless row model that flows through the
// dataflow engine.
//
// # Overview
//
// A Row is a finite mapping from non-empty string keys to dynamically
// typed Values. Two rows in the same stream may carry disjoint key sets;
// no schema is enforced anywhere in the engine. Operations that require a
// key fail with ErrMissingField when a row does not carry it.
//
// # Values
//
// Value is a tagged union over the kinds a record field may hold:
//
//   - null
//   - bool
//   - int (signed 64-bit)
//   - float (double precision)
//   - string
//   - list of scalar values
//
// Values of the same kind are ordered; int and float compare numerically
// with each other because both arrive from the same JSON number syntax.
// Comparing any other pair of kinds returns ErrIncomparable.
//
// # Immutability convention
//
// Rows are shared between pipeline stages by reference. A stage that
// transforms a row must emit a fresh row (see Clone and Merge) and never
// write through a row it received from upstream.
package record
