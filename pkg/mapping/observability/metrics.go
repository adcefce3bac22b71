package observability

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/artifactname/pkg/mapping"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records mapping metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordMapping records one pattern evaluation with its duration and error status.
	RecordMapping(ctx context.Context, pattern string, duration time.Duration, err error)

	// RecordBatch records a mapping run completion.
	RecordBatch(ctx context.Context, success bool, artifacts int, duration time.Duration)

	// RecordCollision records two artifacts mapped to the same file name.
	RecordCollision(ctx context.Context)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations    metric.Int64Counter
	evalLatency    metric.Float64Histogram
	evalErrors     metric.Int64Counter
	batchRuns      metric.Int64Counter
	batchLatency   metric.Float64Histogram
	batchArtifacts metric.Int64Histogram
	collisions     metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("artifactname")

	evaluations, err := meter.Int64Counter("artifactname.mapping.evaluations",
		metric.WithDescription("Number of pattern evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("artifactname.mapping.latency_ms",
		metric.WithDescription("Pattern evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("artifactname.mapping.errors",
		metric.WithDescription("Number of failed pattern evaluations"),
	)
	if err != nil {
		return nil, err
	}

	batchRuns, err := meter.Int64Counter("artifactname.batch.runs",
		metric.WithDescription("Number of mapping runs"),
	)
	if err != nil {
		return nil, err
	}

	batchLatency, err := meter.Float64Histogram("artifactname.batch.latency_ms",
		metric.WithDescription("Mapping run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	batchArtifacts, err := meter.Int64Histogram("artifactname.batch.artifacts",
		metric.WithDescription("Artifacts per mapping run"),
	)
	if err != nil {
		return nil, err
	}

	collisions, err := meter.Int64Counter("artifactname.batch.collisions",
		metric.WithDescription("Number of file name collisions"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations:    evaluations,
		evalLatency:    evalLatency,
		evalErrors:     evalErrors,
		batchRuns:      batchRuns,
		batchLatency:   batchLatency,
		batchArtifacts: batchArtifacts,
		collisions:     collisions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordMapping records a pattern evaluation.
func (m *otelMetrics) RecordMapping(ctx context.Context, pattern string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("pattern", pattern),
	}

	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evalLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if err != nil {
		attrs = append(attrs, attribute.String("kind", ErrorKind(err)))
		m.evalErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordBatch records a mapping run.
func (m *otelMetrics) RecordBatch(ctx context.Context, success bool, artifacts int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.batchRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.batchLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
	m.batchArtifacts.Record(ctx, int64(artifacts), metric.WithAttributes(attrs...))
}

// RecordCollision records a file name collision.
func (m *otelMetrics) RecordCollision(ctx context.Context) {
	m.collisions.Add(ctx, 1)
}

// ErrorKind returns a low-cardinality label for a mapping error.
func ErrorKind(err error) string {
	var ierr *mapping.InterpolationError
	if errors.As(err, &ierr) {
		return ierr.Kind.String()
	}
	return "other"
}
