package graph

import (
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Iterator pulls rows one at a time from a pipeline stage.
//
// Next returns ErrEndOfStream once the stage is drained; any other error
// aborts the chain. Implementations are single-use and not safe for
// concurrent use — the engine drives each compiled pipeline from one
// goroutine.
type Iterator interface {
	Next() (record.Row, error)
}

// Runtime gives operations access to run-scoped state during execution.
// It is implemented by the engine's run context; defining it here breaks
// the circular dependency between the operator implementations and the
// engine.
type Runtime interface {
	// ChainResult returns the materialized result of a chain that the
	// scheduler has already executed in the current run. Requesting the
	// result of a chain that has not run yet is an error.
	ChainResult(c *Chain) ([]record.Row, error)
}

// Operation is one stage of a linear chain. Implementations describe the
// stage's configuration; Open instantiates the per-run iterator state.
type Operation interface {
	// Name identifies the operation kind for diagnostics ("map", "sort", ...)
	Name() string

	// Validate checks the operation configuration. Chains reject
	// misconfigured operations when they are appended, before any run.
	Validate() error

	// Open binds the operation to its upstream iterator and returns the
	// operation's own iterator. Open is called exactly once per run per
	// chain; the returned iterator is driven until ErrEndOfStream.
	Open(rt Runtime, upstream Iterator) (Iterator, error)
}

// ChainDependent is implemented by operations that consume the result of
// another chain (Join). Chains consult it when the operation is appended
// to record the dependency edge.
type ChainDependent interface {
	DependsOn() []*Chain
}
