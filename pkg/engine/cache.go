package engine

import (
	"fmt"
	"io"

	"github.com/dvpolyakov/computational-graph/pkg/dataio"
	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/logging"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// runContext holds all mutable state of one Run invocation: the parsed
// input cache, every chain's materialized result and the input handles
// still to be drained. It implements graph.Runtime for the operations.
//
// The context is created fresh per Run and discarded afterwards, which
// keeps chain definitions reusable and repeated runs independent.
type runContext struct {
	executionID  string
	handles      map[string]io.ReadCloser
	parsed       map[string][]record.Row
	results      map[*graph.Chain][]record.Row
	maxLineBytes int
	verbose      bool
	log          *logging.Logger
}

func newRunContext(executionID string, handles map[string]io.ReadCloser, maxLineBytes int, verbose bool, log *logging.Logger) *runContext {
	return &runContext{
		executionID:  executionID,
		handles:      handles,
		parsed:       make(map[string][]record.Row),
		results:      make(map[*graph.Chain][]record.Row),
		maxLineBytes: maxLineBytes,
		verbose:      verbose,
		log:          log,
	}
}

// ChainResult implements graph.Runtime
func (rc *runContext) ChainResult(c *graph.Chain) ([]record.Row, error) {
	rows, ok := rc.results[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChainNotExecuted, c.DisplayName())
	}
	return rows, nil
}

// setResult stores a chain's materialized result. Each chain executes at
// most once per run, so a result is written exactly once.
func (rc *runContext) setResult(c *graph.Chain, rows []record.Row) {
	rc.results[c] = rows
}

// inputRows parses the named external input on first use, closes its
// handle, and replays the cached rows on every later use.
func (rc *runContext) inputRows(name string) ([]record.Row, error) {
	inputLog := rc.log.WithInput(name)
	if rows, ok := rc.parsed[name]; ok {
		inputLog.Debug("replaying input from cache")
		return rows, nil
	}
	handle, ok := rc.handles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingInput, name)
	}
	progressLogger(inputLog, rc.verbose)("parsing input")
	rows, err := dataio.ReadAll(handle, rc.maxLineBytes)
	closeErr := handle.Close()
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", name, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("input %q: closing handle: %w", name, closeErr)
	}
	rc.parsed[name] = rows
	progressLogger(inputLog.WithField("records", len(rows)), rc.verbose)("input parsed and cached")
	return rows, nil
}
