// Package logging provides structured logging for the dataflow engine.
// It wraps the standard library's slog package.
//
// # Overview
//
// The engine logs its progress — topological sorting, per-chain source
// resolution, compilation, execution and output writing — through one
// Logger carried by the engine and enriched per run and per chain with
// contextual fields.
//
// # Fields
//
// The With* helpers attach the fields the engine cares about:
//
//   - execution_id: the unique identifier of one Run invocation
//   - chain: the diagnostic name of the chain being processed
//   - operation: the operation kind ("map", "sort", ...)
//   - input: the external input name being loaded
//
// # Diagnostic sink
//
// Diagnostics go to standard error by default, keeping standard output
// free for pipelines that write their result there.
//
// # Usage
//
//	logger := logging.New(logging.Config{Level: "debug", Pretty: true})
//	logger.WithChain("word_count").Info("chain executed")
package logging
