// Package operator implements the five streaming operations a chain can
// carry: Map, Fold, Sort, Reduce and Join.
//
// # Execution model
//
// Each operation is an inert configuration object. When a chain runs,
// the engine opens every operation in order, handing it the upstream
// iterator and receiving the operation's own iterator back. The result
// is a stack of pull-based iterators: downstream stages request rows on
// demand and the request propagates upstream. There is no parallelism
// inside a chain; laziness here means cooperative iteration, not task
// suspension.
//
// Sort, the group flush inside Reduce, and Join materialize rows
// internally, but all three still present the pull interface
// downstream.
//
// # Ordering contracts
//
//   - Map preserves upstream order and the order each mapper call emits.
//   - Fold consumes the whole upstream and emits exactly one row.
//   - Sort establishes a new stable ascending order over its key tuple.
//   - Reduce trusts its upstream to already be grouped on the grouping
//     keys; it never sorts. Violating the precondition silently produces
//     fragmented groups, which is why pipelines place a Sort on a prefix
//     of the grouping keys in front of it.
//   - Join stably sorts both of its inputs by their join keys before
//     matching.
//
// # Errors
//
// Misconfigured operations (a Fold without an initial accumulator, a
// Reduce or Sort without keys, a Join with an unknown strategy or a bad
// key list) are rejected with ErrInvalidConfig when appended to a chain.
// Failures raised by user callables are wrapped with ErrCallableFailed
// and abort the run.
package operator
