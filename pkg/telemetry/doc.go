// Package telemetry provides OpenTelemetry metrics and tracing for the
// dataflow engine, exported in Prometheus format.
//
// The Provider owns a dedicated Prometheus registry, so embedding
// applications can mount the scrape handler wherever they serve HTTP
// without touching the global default registry. Metrics cover run and
// chain executions, their durations, and the number of rows each chain
// materialized. The TelemetryObserver bridges the engine's observer
// events into those instruments, so wiring telemetry is one Register
// call.
package telemetry
