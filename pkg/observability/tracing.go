package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps the global OpenTelemetry tracer. Exporter setup is the
// host application's responsibility; a disabled tracer produces no spans.
type Tracer struct {
	tracer  trace.Tracer
	enabled bool
}

// NewTracer returns a tracer using the globally configured provider.
func NewTracer(serviceName string, enabled bool) *Tracer {
	if !enabled {
		return &Tracer{enabled: false}
	}
	return &Tracer{tracer: otel.Tracer(serviceName), enabled: true}
}

// Start begins a span, or returns ctx unchanged when tracing is off.
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !t.enabled {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks the span as failed.
func (t *Tracer) RecordError(span trace.Span, err error) {
	if !t.enabled || span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
