package observer

import (
	"context"
	"time"
)

// EventType represents the type of execution event
type EventType string

const (
	// Run-level events
	EventRunStart EventType = "run_start"
	EventRunEnd   EventType = "run_end"

	// Chain-level events
	EventChainStart   EventType = "chain_start"
	EventChainEnd     EventType = "chain_end"
	EventChainFailure EventType = "chain_failure"
)

// ExecutionStatus represents the status of a chain or run
type ExecutionStatus string

const (
	StatusStarted   ExecutionStatus = "started"
	StatusSuccess   ExecutionStatus = "success"
	StatusFailure   ExecutionStatus = "failure"
	StatusCompleted ExecutionStatus = "completed"
)

// Event represents an execution event with all relevant metadata
type Event struct {
	// Event identification
	Type      EventType       `json:"type"`
	Status    ExecutionStatus `json:"status"`
	Timestamp time.Time       `json:"timestamp"`

	// Execution context
	ExecutionID string `json:"execution_id"`

	// Chain-specific data (empty for run-level events)
	Chain  string `json:"chain,omitempty"`
	Source string `json:"source,omitempty"`

	// Result size: rows materialized by the chain, or written by the run
	Rows int `json:"rows,omitempty"`

	// Timing information
	StartTime   time.Time     `json:"start_time,omitempty"`
	ElapsedTime time.Duration `json:"elapsed_time,omitempty"`

	// Execution results
	Error error `json:"error,omitempty"`

	// Additional metadata
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Observer defines the interface for run execution observers.
// Observers receive notifications about the stages of a run.
type Observer interface {
	// OnEvent is called when an execution event occurs. Delivery is
	// synchronous on the engine goroutine; implementations must return
	// quickly.
	OnEvent(ctx context.Context, event Event)
}

// Logger defines the interface for custom logging. This allows library
// consumers to integrate observer output with their own logging systems.
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields map[string]interface{})

	// Info logs info-level messages
	Info(msg string, fields map[string]interface{})

	// Warn logs warning-level messages
	Warn(msg string, fields map[string]interface{})

	// Error logs error-level messages
	Error(msg string, fields map[string]interface{})
}
