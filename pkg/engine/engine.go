package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dvpolyakov/computational-graph/pkg/config"
	"github.com/dvpolyakov/computational-graph/pkg/dataio"
	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/logging"
	"github.com/dvpolyakov/computational-graph/pkg/observer"
	"github.com/dvpolyakov/computational-graph/pkg/record"
	"github.com/dvpolyakov/computational-graph/pkg/telemetry"
)

// Engine executes computational graphs. It carries the pieces shared by
// every run — configuration, logger, observers, telemetry — while all
// per-run state lives in a run context created inside Run.
type Engine struct {
	config      *config.Config
	logger      *logging.Logger
	observerMgr *observer.Manager
}

// New creates an engine with default configuration
func New() *Engine {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates an engine with custom configuration. A nil
// config falls back to the defaults.
func NewWithConfig(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		config: cfg,
		logger: logging.New(logging.Config{
			Level:  cfg.LogLevel,
			Pretty: cfg.LogPretty,
		}),
		observerMgr: observer.NewManager(),
	}
}

// SetLogger replaces the engine's logger
func (e *Engine) SetLogger(logger *logging.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// AddObserver registers an observer for run and chain lifecycle events
func (e *Engine) AddObserver(obs observer.Observer) {
	e.observerMgr.Register(obs)
}

// EnableTelemetry registers a telemetry observer backed by the provider
func (e *Engine) EnableTelemetry(provider *telemetry.Provider) {
	if provider != nil {
		e.observerMgr.Register(telemetry.NewTelemetryObserver(provider))
	}
}

// RunParams binds a run to the outside world: one handle per external
// input name used by any reachable chain, the output handle the final
// result is written to, and the verbosity of progress diagnostics.
type RunParams struct {
	// Inputs maps external input names to their file handles. Each
	// handle is read at most once and closed after its first drain.
	Inputs map[string]io.ReadCloser

	// Output receives the final chain's result, one JSON record per
	// line. It is closed when the run completes.
	Output io.WriteCloser

	// Verbose promotes progress diagnostics from debug to info level
	Verbose bool
}

// RunResult summarizes a completed run
type RunResult struct {
	ExecutionID string
	Chains      int
	RowsWritten int
	Duration    time.Duration
}

// Run executes the graph rooted at the final chain and writes its result.
//
// Chains reachable from the final chain via source and join edges are
// ordered topologically and executed one by one; a dependency cycle
// fails with graph.ErrCycleDetected before any operation runs. Errors
// are fatal and carry the offending chain's diagnostic name.
func (e *Engine) Run(ctx context.Context, final *graph.Chain, params RunParams) (*RunResult, error) {
	if final == nil {
		return nil, ErrNilFinalChain
	}
	if params.Output == nil {
		return nil, ErrNoOutput
	}

	executionID := uuid.New().String()
	log := e.logger.WithExecutionID(executionID)
	started := time.Now()

	e.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventRunStart,
		Status:      observer.StatusStarted,
		Timestamp:   started,
		ExecutionID: executionID,
	})

	result, err := e.run(ctx, final, params, executionID, log)

	e.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventRunEnd,
		Status:      runStatus(err),
		Timestamp:   time.Now(),
		ExecutionID: executionID,
		Rows:        resultRows(result),
		ElapsedTime: time.Since(started),
		Error:       err,
	})

	return result, err
}

func runStatus(err error) observer.ExecutionStatus {
	if err != nil {
		return observer.StatusFailure
	}
	return observer.StatusCompleted
}

func resultRows(r *RunResult) int {
	if r == nil {
		return 0
	}
	return r.RowsWritten
}

func (e *Engine) run(ctx context.Context, final *graph.Chain, params RunParams, executionID string, log *logging.Logger) (*RunResult, error) {
	started := time.Now()
	progress := progressLogger(log, params.Verbose)

	progress("topological sorting started")
	order, err := graph.TopologicalOrder(final)
	if err != nil {
		return nil, err
	}
	progress("topological sorting finished")
	e.logOrder(progress, order)

	if e.config.MaxChains > 0 && len(order) > e.config.MaxChains {
		return nil, fmt.Errorf("%w: %d chains, limit %d", ErrMaxChainsExceeded, len(order), e.config.MaxChains)
	}

	rc := newRunContext(executionID, params.Inputs, e.config.MaxLineBytes, params.Verbose, log)

	for _, chain := range order {
		if err := e.runChain(ctx, rc, chain, log, params.Verbose); err != nil {
			return nil, fmt.Errorf("chain %s: %w", chain.DisplayName(), err)
		}
	}

	finalRows, err := rc.ChainResult(final)
	if err != nil {
		return nil, fmt.Errorf("chain %s: %w", final.DisplayName(), err)
	}
	progress("writing result of the final chain to the output")
	if err := dataio.WriteAll(params.Output, finalRows); err != nil {
		return nil, fmt.Errorf("chain %s: %w", final.DisplayName(), err)
	}

	progress("run completed")
	return &RunResult{
		ExecutionID: executionID,
		Chains:      len(order),
		RowsWritten: len(finalRows),
		Duration:    time.Since(started),
	}, nil
}

// runChain compiles one chain against the run context and drains it into
// the context's result map. The chain's diagnostic name travels as a
// structured logger field rather than a message prefix.
func (e *Engine) runChain(ctx context.Context, rc *runContext, chain *graph.Chain, log *logging.Logger, verbose bool) error {
	chainLogger := log.WithChain(chain.DisplayName())
	chainProgress := progressLogger(chainLogger, verbose)
	chainStarted := time.Now()

	e.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventChainStart,
		Status:      observer.StatusStarted,
		Timestamp:   chainStarted,
		ExecutionID: rc.executionID,
		Chain:       chain.DisplayName(),
		Source:      chain.SourceDescription(),
	})

	rows, err := e.executeChain(rc, chain, chainLogger, chainProgress)
	if err != nil {
		e.observerMgr.Notify(ctx, observer.Event{
			Type:        observer.EventChainFailure,
			Status:      observer.StatusFailure,
			Timestamp:   time.Now(),
			ExecutionID: rc.executionID,
			Chain:       chain.DisplayName(),
			Source:      chain.SourceDescription(),
			ElapsedTime: time.Since(chainStarted),
			Error:       err,
		})
		return err
	}

	rc.setResult(chain, rows)

	e.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventChainEnd,
		Status:      observer.StatusSuccess,
		Timestamp:   time.Now(),
		ExecutionID: rc.executionID,
		Chain:       chain.DisplayName(),
		Source:      chain.SourceDescription(),
		Rows:        len(rows),
		ElapsedTime: time.Since(chainStarted),
	})
	return nil
}

// executeChain resolves the chain's source, wires its pipeline and
// drains it. Source description and compile progress are reported
// through chainProgress per the verbosity of the run.
func (e *Engine) executeChain(rc *runContext, chain *graph.Chain, chainLogger *logging.Logger, chainProgress func(string)) ([]record.Row, error) {
	chainProgress("source is " + chain.SourceDescription())

	ops := chain.Operations()
	if e.config.MaxOperationsPerChain > 0 && len(ops) > e.config.MaxOperationsPerChain {
		return nil, fmt.Errorf("%w: %d operations, limit %d",
			ErrMaxOperationsExceeded, len(ops), e.config.MaxOperationsPerChain)
	}

	chainProgress("compile started")
	var upstream graph.Iterator = newInputIterator(rc, chain)
	for _, op := range ops {
		it, err := op.Open(rc, upstream)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op.Name(), err)
		}
		chainLogger.WithOperation(op.Name()).Debug("operation wired")
		upstream = it
	}
	chainProgress("compile finished")

	rows, err := graph.Drain(upstream)
	if err != nil {
		return nil, err
	}
	chainProgress("executed")
	return rows, nil
}

// progressLogger routes progress diagnostics to info level when the run
// is verbose and debug level otherwise.
func progressLogger(log *logging.Logger, verbose bool) func(string) {
	if verbose {
		return log.Info
	}
	return log.Debug
}

// logOrder reports the computed topological order. Unnamed chains
// degrade to a notice asking the user to name them.
func (e *Engine) logOrder(progress func(string), order []*graph.Chain) {
	names := make([]string, len(order))
	unnamed := false
	for i, chain := range order {
		if chain.Name() == "" {
			unnamed = true
		}
		names[i] = chain.DisplayName()
	}
	progress("topological order: " + strings.Join(names, " -> "))
	if unnamed {
		progress("give names to all chains to see them in the topological order")
	}
}

// Run executes the final chain with a default engine. It is the
// convenience entry point for one-off pipelines.
func Run(final *graph.Chain, params RunParams) (*RunResult, error) {
	return New().Run(context.Background(), final, params)
}
