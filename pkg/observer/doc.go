// Package observer provides the Observer pattern implementation for run
// monitoring. Library consumers register observers to track the engine's
// execution behavior without touching its semantics.
//
// # Events
//
// The engine emits an event at each lifecycle boundary:
//
//   - run_start / run_end: one Run invocation, carrying the execution ID
//   - chain_start / chain_end / chain_failure: one chain of the run,
//     carrying the chain name, its source description, the number of
//     rows it materialized and the elapsed time
//
// # Delivery
//
// Events are delivered synchronously, in order, on the engine's own
// goroutine. Observers must therefore return quickly; anything slow
// belongs behind a buffer owned by the observer. A panicking observer is
// recovered and does not abort the run.
//
// # Built-ins
//
// NoOpObserver discards everything. ConsoleObserver prints events
// through a pluggable Logger. The engine registers neither by default;
// observers are added with Engine.AddObserver.
package observer
