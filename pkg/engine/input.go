package engine

import (
	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// inputIterator is the implicit first stage of every compiled chain. It
// yields the chain's source rows: parsed external input (loaded lazily
// on the first pull and memoized in the run context) or the materialized
// result of the source chain.
type inputIterator struct {
	rc    *runContext
	chain *graph.Chain

	loaded bool
	rows   []record.Row
	pos    int
}

func newInputIterator(rc *runContext, chain *graph.Chain) *inputIterator {
	return &inputIterator{rc: rc, chain: chain}
}

func (it *inputIterator) Next() (record.Row, error) {
	if !it.loaded {
		if err := it.load(); err != nil {
			return nil, err
		}
		it.loaded = true
	}
	if it.pos >= len(it.rows) {
		return nil, graph.ErrEndOfStream
	}
	row := it.rows[it.pos]
	it.pos++
	return row, nil
}

func (it *inputIterator) load() error {
	if src, ok := it.chain.SourceChain(); ok {
		rows, err := it.rc.ChainResult(src)
		if err != nil {
			return err
		}
		it.rows = rows
		return nil
	}
	name, _ := it.chain.InputName()
	rows, err := it.rc.inputRows(name)
	if err != nil {
		return err
	}
	it.rows = rows
	return nil
}
