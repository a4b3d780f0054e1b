package operator

import (
	"fmt"

	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Reduce groups consecutive upstream rows agreeing on all grouping keys
// and flushes each maximal group through a user reducer.
//
// Reduce trusts its upstream: it performs no sort and no global
// grouping. Rows with equal keys that are not adjacent form separate
// groups. Pipelines that need true grouping place a Sort on a prefix of
// the grouping keys directly in front.
type Reduce struct {
	reducer Reducer
	keys    []string
}

// NewReduce creates a Reduce operation over the given grouping keys
func NewReduce(reducer Reducer, keys []string) *Reduce {
	return &Reduce{reducer: reducer, keys: keys}
}

// Name implements graph.Operation
func (r *Reduce) Name() string { return "reduce" }

// Validate implements graph.Operation
func (r *Reduce) Validate() error {
	if r.reducer == nil {
		return fmt.Errorf("%w: reduce requires a reducer", ErrInvalidConfig)
	}
	if len(r.keys) == 0 {
		return fmt.Errorf("%w: reduce requires at least one grouping key", ErrInvalidConfig)
	}
	for _, k := range r.keys {
		if k == "" {
			return fmt.Errorf("%w: reduce keys must be non-empty", ErrInvalidConfig)
		}
	}
	return nil
}

// Open implements graph.Operation
func (r *Reduce) Open(rt graph.Runtime, upstream graph.Iterator) (graph.Iterator, error) {
	return &reduceIterator{reducer: r.reducer, keys: r.keys, upstream: upstream}, nil
}

type reduceIterator struct {
	reducer  Reducer
	keys     []string
	upstream graph.Iterator

	buffer  []record.Row
	prev    record.Row
	pending []record.Row
	done    bool
}

func (it *reduceIterator) Next() (record.Row, error) {
	for {
		if len(it.pending) > 0 {
			row := it.pending[0]
			it.pending = it.pending[1:]
			return row, nil
		}
		if it.done {
			return nil, graph.ErrEndOfStream
		}

		row, err := it.upstream.Next()
		if err == graph.ErrEndOfStream {
			it.done = true
			// Flush the final group. An empty upstream has no group and
			// the reducer is never invoked.
			if len(it.buffer) > 0 {
				if err := it.flush(); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		if it.prev != nil {
			same, err := it.sameGroup(it.prev, row)
			if err != nil {
				return nil, err
			}
			if !same {
				if err := it.flush(); err != nil {
					return nil, err
				}
			}
		}
		it.buffer = append(it.buffer, row)
		it.prev = row
	}
}

// flush runs the buffered group through the reducer and queues its output
func (it *reduceIterator) flush() error {
	out, err := it.reducer(it.buffer)
	if err != nil {
		return fmt.Errorf("%w: reduce: %w", ErrCallableFailed, err)
	}
	it.pending = out
	it.buffer = nil
	return nil
}

func (it *reduceIterator) sameGroup(a, b record.Row) (bool, error) {
	for _, k := range it.keys {
		av, err := a.Field(k)
		if err != nil {
			return false, fmt.Errorf("reduce: %w", err)
		}
		bv, err := b.Field(k)
		if err != nil {
			return false, fmt.Errorf("reduce: %w", err)
		}
		if !av.Equal(bv) {
			return false, nil
		}
	}
	return true, nil
}
