package operator

import (
	"fmt"

	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Map applies a user mapper to every upstream row, emitting every row
// the mapper produces. Stateless across rows.
type Map struct {
	mapper Mapper
}

// NewMap creates a Map operation around the given mapper
func NewMap(mapper Mapper) *Map {
	return &Map{mapper: mapper}
}

// Name implements graph.Operation
func (m *Map) Name() string { return "map" }

// Validate implements graph.Operation
func (m *Map) Validate() error {
	if m.mapper == nil {
		return fmt.Errorf("%w: map requires a mapper", ErrInvalidConfig)
	}
	return nil
}

// Open implements graph.Operation
func (m *Map) Open(rt graph.Runtime, upstream graph.Iterator) (graph.Iterator, error) {
	return &mapIterator{mapper: m.mapper, upstream: upstream}, nil
}

type mapIterator struct {
	mapper   Mapper
	upstream graph.Iterator
	pending  []record.Row
}

func (it *mapIterator) Next() (record.Row, error) {
	for {
		if len(it.pending) > 0 {
			row := it.pending[0]
			it.pending = it.pending[1:]
			return row, nil
		}
		row, err := it.upstream.Next()
		if err != nil {
			// ErrEndOfStream included: nothing buffered, nothing upstream.
			return nil, err
		}
		out, err := it.mapper(row)
		if err != nil {
			return nil, fmt.Errorf("%w: map: %w", ErrCallableFailed, err)
		}
		it.pending = out
	}
}
