package operator

import (
	"fmt"

	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Fold collapses the whole upstream into a single row by applying a
// folder to an accumulator, strictly left to right in arrival order.
// Over an empty upstream the initial accumulator itself is emitted.
type Fold struct {
	folder  Folder
	initial record.Row
}

// NewFold creates a Fold operation. The initial accumulator is required;
// a Fold constructed without one is rejected when appended to a chain.
func NewFold(folder Folder, initial record.Row) *Fold {
	return &Fold{folder: folder, initial: initial}
}

// Name implements graph.Operation
func (f *Fold) Name() string { return "fold" }

// Validate implements graph.Operation
func (f *Fold) Validate() error {
	if f.folder == nil {
		return fmt.Errorf("%w: fold requires a folder", ErrInvalidConfig)
	}
	if f.initial == nil {
		return fmt.Errorf("%w: fold requires an initial accumulator", ErrInvalidConfig)
	}
	return nil
}

// Open implements graph.Operation
func (f *Fold) Open(rt graph.Runtime, upstream graph.Iterator) (graph.Iterator, error) {
	return &foldIterator{folder: f.folder, acc: f.initial.Clone(), upstream: upstream}, nil
}

type foldIterator struct {
	folder   Folder
	acc      record.Row
	upstream graph.Iterator
	done     bool
}

func (it *foldIterator) Next() (record.Row, error) {
	if it.done {
		return nil, graph.ErrEndOfStream
	}
	for {
		row, err := it.upstream.Next()
		if err == graph.ErrEndOfStream {
			break
		}
		if err != nil {
			return nil, err
		}
		acc, err := it.folder(it.acc, row)
		if err != nil {
			return nil, fmt.Errorf("%w: fold: %w", ErrCallableFailed, err)
		}
		it.acc = acc
	}
	it.done = true
	return it.acc, nil
}
