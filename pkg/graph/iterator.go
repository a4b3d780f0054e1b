package graph

import (
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// sliceIterator replays an already-materialized row list
type sliceIterator struct {
	rows []record.Row
	pos  int
}

// Rows returns an Iterator that yields the given rows in order. The
// slice is not copied; callers hand over ownership for the duration of
// the iteration.
func Rows(rows []record.Row) Iterator {
	return &sliceIterator{rows: rows}
}

func (it *sliceIterator) Next() (record.Row, error) {
	if it.pos >= len(it.rows) {
		return nil, ErrEndOfStream
	}
	row := it.rows[it.pos]
	it.pos++
	return row, nil
}

// Drain pulls the iterator to exhaustion and returns the collected rows.
// ErrEndOfStream terminates the drain cleanly; any other error is
// returned with the rows collected so far discarded.
func Drain(it Iterator) ([]record.Row, error) {
	var rows []record.Row
	for {
		row, err := it.Next()
		if err == ErrEndOfStream {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
