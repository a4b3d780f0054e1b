package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Service name for telemetry
	serviceName = "computational-graph"

	// Metric names
	metricRunExecutions   = "run.executions.total"
	metricRunDuration     = "run.execution.duration"
	metricRunSuccess      = "run.executions.success.total"
	metricRunFailure      = "run.executions.failure.total"
	metricChainExecutions = "chain.executions.total"
	metricChainDuration   = "chain.execution.duration"
	metricChainFailure    = "chain.executions.failure.total"
	metricRowsMaterialized = "chain.rows.materialized.total"
)

// Provider manages OpenTelemetry setup and provides access to tracers
// and meters.
type Provider struct {
	registry       *prometheus.Registry
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	// Metrics instruments
	runExecutions    metric.Int64Counter
	runDuration      metric.Float64Histogram
	runSuccess       metric.Int64Counter
	runFailure       metric.Int64Counter
	chainExecutions  metric.Int64Counter
	chainDuration    metric.Float64Histogram
	chainFailure     metric.Int64Counter
	rowsMaterialized metric.Int64Counter

	mu sync.RWMutex
}

// Config holds telemetry configuration
type Config struct {
	// ServiceName is the name of the service for telemetry
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment (e.g., "production", "staging", "development")
	Environment string

	// EnableTracing enables distributed tracing
	EnableTracing bool

	// EnableMetrics enables metrics collection
	EnableMetrics bool
}

// DefaultConfig returns default telemetry configuration
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with a Prometheus metrics
// exporter backed by a dedicated registry.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

// initMetrics initializes the metrics provider with Prometheus exporter
func (p *Provider) initMetrics(res *resource.Resource) error {
	p.registry = prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(p.registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	p.meter = p.meterProvider.Meter(serviceName)

	if err := p.createMetricInstruments(); err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}

	return nil
}

// initTracing initializes the tracing provider. The global tracer
// provider is a no-op unless the embedding application configured one.
func (p *Provider) initTracing() {
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

// createMetricInstruments creates all metric instruments
func (p *Provider) createMetricInstruments() error {
	var err error

	// Run metrics
	p.runExecutions, err = p.meter.Int64Counter(
		metricRunExecutions,
		metric.WithDescription("Total number of run invocations"),
	)
	if err != nil {
		return err
	}

	p.runDuration, err = p.meter.Float64Histogram(
		metricRunDuration,
		metric.WithDescription("Run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.runSuccess, err = p.meter.Int64Counter(
		metricRunSuccess,
		metric.WithDescription("Total number of successful runs"),
	)
	if err != nil {
		return err
	}

	p.runFailure, err = p.meter.Int64Counter(
		metricRunFailure,
		metric.WithDescription("Total number of failed runs"),
	)
	if err != nil {
		return err
	}

	// Chain metrics
	p.chainExecutions, err = p.meter.Int64Counter(
		metricChainExecutions,
		metric.WithDescription("Total number of chain executions"),
	)
	if err != nil {
		return err
	}

	p.chainDuration, err = p.meter.Float64Histogram(
		metricChainDuration,
		metric.WithDescription("Chain execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.chainFailure, err = p.meter.Int64Counter(
		metricChainFailure,
		metric.WithDescription("Total number of failed chain executions"),
	)
	if err != nil {
		return err
	}

	p.rowsMaterialized, err = p.meter.Int64Counter(
		metricRowsMaterialized,
		metric.WithDescription("Total number of rows materialized by chains"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// Registry returns the Prometheus registry backing the exporter, or nil
// when metrics are disabled.
func (p *Provider) Registry() *prometheus.Registry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry
}

// Handler returns an HTTP handler serving the metrics in Prometheus
// exposition format. It returns nil when metrics are disabled.
func (p *Provider) Handler() http.Handler {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// RecordRun records one run invocation with its duration and outcome
func (p *Provider) RecordRun(ctx context.Context, d time.Duration, err error) {
	if p.meter == nil {
		return
	}
	p.runExecutions.Add(ctx, 1)
	p.runDuration.Record(ctx, float64(d.Milliseconds()))
	if err != nil {
		p.runFailure.Add(ctx, 1)
	} else {
		p.runSuccess.Add(ctx, 1)
	}
}

// RecordChain records one chain execution with its duration, result size
// and outcome
func (p *Provider) RecordChain(ctx context.Context, chain string, rows int, d time.Duration, err error) {
	if p.meter == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("chain", chain))
	p.chainExecutions.Add(ctx, 1, attrs)
	p.chainDuration.Record(ctx, float64(d.Milliseconds()), attrs)
	if err != nil {
		p.chainFailure.Add(ctx, 1, attrs)
		return
	}
	p.rowsMaterialized.Add(ctx, int64(rows), attrs)
}

// Shutdown flushes and stops the metric provider
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
