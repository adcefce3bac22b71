package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/randalmurphal/artifactname/pkg/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a test meter provider and returns its reader
// and a cleanup function.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumWhere totals the data points of an int64 sum whose attributes include key=value.
func sumWhere(t *testing.T, m *metricdata.Metrics, key, value string) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")

	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.Emit() == value {
			total += dp.Value
		}
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordMapping(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordMapping(ctx, "default", 2*time.Millisecond, nil)
	m.RecordMapping(ctx, "default", time.Millisecond, &mapping.InterpolationError{Kind: mapping.UnresolvedToken})
	m.RecordMapping(ctx, "short", time.Millisecond, errors.New("other failure"))

	rm := collectMetrics(t, reader)

	evals := findMetric(rm, "artifactname.mapping.evaluations")
	require.NotNil(t, evals)
	assert.Equal(t, int64(2), sumWhere(t, evals, "pattern", "default"))
	assert.Equal(t, int64(1), sumWhere(t, evals, "pattern", "short"))

	errs := findMetric(rm, "artifactname.mapping.errors")
	require.NotNil(t, errs)
	assert.Equal(t, int64(1), sumWhere(t, errs, "kind", "unresolved_token"))
	assert.Equal(t, int64(1), sumWhere(t, errs, "kind", "other"))

	latency := findMetric(rm, "artifactname.mapping.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "Expected Histogram type")
	require.NotEmpty(t, hist.DataPoints)
}

func TestRecordBatch(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordBatch(ctx, true, 4, 10*time.Millisecond)
	m.RecordBatch(ctx, false, 1, time.Millisecond)
	m.RecordCollision(ctx)

	rm := collectMetrics(t, reader)

	runs := findMetric(rm, "artifactname.batch.runs")
	require.NotNil(t, runs)
	assert.Equal(t, int64(1), sumWhere(t, runs, "success", "true"))
	assert.Equal(t, int64(1), sumWhere(t, runs, "success", "false"))

	artifacts := findMetric(rm, "artifactname.batch.artifacts")
	require.NotNil(t, artifacts)
	hist, ok := artifacts.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram type")
	var total int64
	for _, dp := range hist.DataPoints {
		total += dp.Sum
	}
	assert.Equal(t, int64(5), total)

	collisions := findMetric(rm, "artifactname.batch.collisions")
	require.NotNil(t, collisions)
	sum, ok := collisions.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "malformed_pattern", ErrorKind(&mapping.InterpolationError{Kind: mapping.MalformedPattern}))

	_, err := mapping.Evaluate("@{missing}@", &mapping.Artifact{})
	assert.Equal(t, "unresolved_token", ErrorKind(err))

	assert.Equal(t, "other", ErrorKind(errors.New("x")))
}

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordMapping(ctx, "p", time.Millisecond, errors.New("x"))
		m.RecordBatch(ctx, true, 1, time.Millisecond)
		m.RecordCollision(ctx)
	})
}
