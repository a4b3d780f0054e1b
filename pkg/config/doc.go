// Package config centralizes the dataflow engine's configuration.
//
// # Overview
//
// All tunable limits live in one Config struct so the engine, the CLI
// and tests share a single source of defaults. The defaults are sized
// for the in-process analytical pipelines the engine targets; raise
// them explicitly for unusually large graphs or inputs.
//
// # Limits
//
//   - MaxChains bounds the number of chains reachable from the final
//     chain, catching accidentally generated graphs.
//   - MaxOperationsPerChain bounds one chain's operation list.
//   - MaxLineBytes bounds a single input line; longer lines fail the
//     read rather than ballooning memory.
//
// A limit of zero disables the corresponding check.
package config
