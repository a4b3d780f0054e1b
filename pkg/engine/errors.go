package engine

import "errors"

// Sentinel errors for run orchestration
var (
	// Run parameter errors
	ErrNilFinalChain = errors.New("final chain is nil")
	ErrNoOutput      = errors.New("run requires an output handle")

	// Input binding errors
	ErrMissingInput = errors.New("no input handle bound for source name")

	// Execution errors
	ErrChainNotExecuted = errors.New("chain result requested before the chain executed")

	// Limit errors
	ErrMaxChainsExceeded     = errors.New("maximum number of chains exceeded")
	ErrMaxOperationsExceeded = errors.New("maximum operations per chain exceeded")
)
