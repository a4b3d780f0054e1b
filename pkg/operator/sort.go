package operator

import (
	"fmt"
	"sort"

	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Sort materializes the upstream and emits it stably ordered ascending
// by the tuple of named keys. Sorting happens exactly once per compiled
// instance; re-iteration replays the already-sorted rows.
type Sort struct {
	keys []string
}

// NewSort creates a Sort operation over the given key names
func NewSort(keys ...string) *Sort {
	return &Sort{keys: keys}
}

// Name implements graph.Operation
func (s *Sort) Name() string { return "sort" }

// Validate implements graph.Operation
func (s *Sort) Validate() error {
	if len(s.keys) == 0 {
		return fmt.Errorf("%w: sort requires at least one key", ErrInvalidConfig)
	}
	for _, k := range s.keys {
		if k == "" {
			return fmt.Errorf("%w: sort keys must be non-empty", ErrInvalidConfig)
		}
	}
	return nil
}

// Open implements graph.Operation
func (s *Sort) Open(rt graph.Runtime, upstream graph.Iterator) (graph.Iterator, error) {
	return &sortIterator{keys: s.keys, upstream: upstream}, nil
}

type sortIterator struct {
	keys     []string
	upstream graph.Iterator
	sorted   bool
	rows     []record.Row
	pos      int
}

func (it *sortIterator) Next() (record.Row, error) {
	if !it.sorted {
		rows, err := graph.Drain(it.upstream)
		if err != nil {
			return nil, err
		}
		it.rows, err = SortRows(rows, it.keys)
		if err != nil {
			return nil, err
		}
		it.sorted = true
	}
	if it.pos >= len(it.rows) {
		return nil, graph.ErrEndOfStream
	}
	row := it.rows[it.pos]
	it.pos++
	return row, nil
}

// SortRows returns a stably sorted copy of rows, ordered ascending by
// the tuple of named keys. Every row must carry every key; a missing key
// is a missing-field error. Comparing keys whose values hold different,
// non-numeric kinds is an error as well.
func SortRows(rows []record.Row, keys []string) ([]record.Row, error) {
	// Surface missing keys deterministically, before the sort touches
	// any pair.
	for _, row := range rows {
		for _, k := range keys {
			if _, err := row.Field(k); err != nil {
				return nil, fmt.Errorf("sort: %w", err)
			}
		}
	}

	out := make([]record.Row, len(rows))
	copy(out, rows)

	var cmpErr error
	sort.SliceStable(out, func(i, j int) bool {
		if cmpErr != nil {
			return false
		}
		for _, k := range keys {
			c, err := out[i][k].Compare(out[j][k])
			if err != nil {
				cmpErr = fmt.Errorf("sort key %q: %w", k, err)
				return false
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return out, nil
}
