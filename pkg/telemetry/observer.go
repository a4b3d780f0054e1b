package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dvpolyakov/computational-graph/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry
// for run execution events. Register it with the engine to get metrics
// and spans without touching the engine's code paths.
type TelemetryObserver struct {
	provider *Provider

	mu         sync.Mutex
	runSpan    trace.Span
	chainSpans map[string]trace.Span
}

// NewTelemetryObserver creates a new telemetry observer
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{
		provider:   provider,
		chainSpans: make(map[string]trace.Span),
	}
}

// OnEvent implements observer.Observer
func (o *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventRunStart:
		o.onRunStart(ctx, event)
	case observer.EventRunEnd:
		o.onRunEnd(ctx, event)
	case observer.EventChainStart:
		o.onChainStart(ctx, event)
	case observer.EventChainEnd:
		o.onChainEnd(ctx, event)
	case observer.EventChainFailure:
		o.onChainFailure(ctx, event)
	}
}

func (o *TelemetryObserver) onRunStart(ctx context.Context, event observer.Event) {
	if o.provider.Tracer() == nil {
		return
	}
	_, span := o.provider.Tracer().Start(ctx, "run",
		trace.WithAttributes(attribute.String("execution_id", event.ExecutionID)))
	o.mu.Lock()
	o.runSpan = span
	o.mu.Unlock()
}

func (o *TelemetryObserver) onRunEnd(ctx context.Context, event observer.Event) {
	o.provider.RecordRun(ctx, event.ElapsedTime, event.Error)

	o.mu.Lock()
	span := o.runSpan
	o.runSpan = nil
	o.mu.Unlock()
	if span == nil {
		return
	}
	if event.Error != nil {
		span.RecordError(event.Error)
		span.SetStatus(codes.Error, event.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (o *TelemetryObserver) onChainStart(ctx context.Context, event observer.Event) {
	if o.provider.Tracer() == nil {
		return
	}
	_, span := o.provider.Tracer().Start(ctx, "chain "+event.Chain,
		trace.WithAttributes(
			attribute.String("chain", event.Chain),
			attribute.String("source", event.Source),
		))
	o.mu.Lock()
	o.chainSpans[event.Chain] = span
	o.mu.Unlock()
}

func (o *TelemetryObserver) onChainEnd(ctx context.Context, event observer.Event) {
	o.provider.RecordChain(ctx, event.Chain, event.Rows, event.ElapsedTime, nil)
	o.endChainSpan(event.Chain, nil)
}

func (o *TelemetryObserver) onChainFailure(ctx context.Context, event observer.Event) {
	o.provider.RecordChain(ctx, event.Chain, 0, event.ElapsedTime, event.Error)
	o.endChainSpan(event.Chain, event.Error)
}

func (o *TelemetryObserver) endChainSpan(chain string, err error) {
	o.mu.Lock()
	span, ok := o.chainSpans[chain]
	delete(o.chainSpans, chain)
	o.mu.Unlock()
	if !ok {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
