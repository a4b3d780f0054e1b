// Package graph provides the chain abstraction of the dataflow engine
// and the scheduler that orders interdependent chains.
//
// # Chains
//
// A Chain is one linear sequence of operations driven by a single
// source. The source is either a named external input, bound to a file
// handle at run time, or another chain whose materialized result feeds
// this one. Chains connect into a directed acyclic graph through two
// kinds of edges: a chain sourced from another chain depends on it, and
// a chain joining against another chain depends on it. Both edges are
// recorded in the dependency list when the chain is wired, so the
// scheduler only ever looks at that list.
//
// Chains are inert definitions. Per-run state never lives on a chain:
// traversal colors are local to each TopologicalOrder call, and compiled
// iterators and materialized results live in the engine's run context,
// which makes chain definitions reusable across runs.
//
// # Scheduling
//
// TopologicalOrder walks the dependency graph depth-first from the final
// chain using the classic three-color scheme and an explicit work stack,
// so pathologically deep graphs cannot exhaust the goroutine stack.
// Visiting an in-progress chain is a back-edge and fails with
// ErrCycleDetected before any operation executes.
//
// # Operations
//
// The Operation and Iterator interfaces defined here are the contract
// between chains and the operator implementations in pkg/operator. The
// Runtime interface is implemented by the engine's run context and
// breaks the dependency cycle between this package and the engine.
package graph
