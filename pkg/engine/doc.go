// Package engine executes computational graphs: it schedules chains in
// dependency order, streams records through their operations, caches
// input sources and writes the final chain's result.
//
// # Run lifecycle
//
// A Run invocation builds a fresh run context holding the mutable state
// of one execution — the input handles, the parsed-input cache and every
// chain's materialized result; the scheduler keeps its traversal state
// local to the topological sort of that run. Chain
// definitions themselves stay immutable, so the same graph can be run
// repeatedly (or concurrently from independent engines) with fresh
// handles each time.
//
// For every chain, in topological order, the engine:
//
//  1. Resolves the source: an external input is parsed from its handle
//     on first use and memoized, so each named input is read from disk
//     at most once per run; a chain source borrows the already-computed
//     result of that chain.
//  2. Compiles the chain: an input stage is placed in front and every
//     operation is opened against its predecessor's iterator, producing
//     one pull-based pipeline.
//  3. Executes the chain by draining the terminal iterator into the run
//     context.
//
// The final chain's rows are then written to the output handle, one
// JSON record per line, and the handle is closed.
//
// # Failure policy
//
// Every error is fatal to the run: scheduling errors, input decode
// errors, missing fields, user callable failures. The error is wrapped
// with the offending chain's diagnostic name. Output written before the
// failure is indeterminate.
//
// # Concurrency
//
// A run is single-threaded and runs entirely on the caller's goroutine;
// the cooperative pull iteration inside chains is the only form of
// "concurrency". No locks guard the run context.
package engine
