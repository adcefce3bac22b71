package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("artifactname")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartBatchSpan starts a span for a whole mapping run.
	StartBatchSpan(ctx context.Context, runID string, artifacts int) (context.Context, trace.Span)

	// StartMappingSpan starts a span for one artifact.
	// It should be a child of the batch span.
	StartMappingSpan(ctx context.Context, artifactID, pattern string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{tracer: tracer}
}

// NewSpanManagerWithTracer returns a SpanManager that uses the given tracer.
func NewSpanManagerWithTracer(t trace.Tracer) SpanManager {
	return &otelSpanManager{tracer: t}
}

// StartBatchSpan starts a span for a mapping run.
func (m *otelSpanManager) StartBatchSpan(ctx context.Context, runID string, artifacts int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "artifactname.batch",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("batch.artifacts", artifacts),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartMappingSpan starts a span for one artifact.
func (m *otelSpanManager) StartMappingSpan(ctx context.Context, artifactID, pattern string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "artifactname.mapping",
		trace.WithAttributes(
			attribute.String("artifact.id", artifactID),
			attribute.String("mapping.pattern", pattern),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
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

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
