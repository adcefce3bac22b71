package batch

import (
	"log/slog"

	"github.com/randalmurphal/artifactname/pkg/mapping"
	"github.com/randalmurphal/artifactname/pkg/mapping/manifest"
	"github.com/randalmurphal/artifactname/pkg/mapping/observability"
	"github.com/randalmurphal/artifactname/pkg/mapping/registry"
)

// Option configures a Mapper.
type Option func(*Mapper)

// WithRegistry sets the registry used to resolve pattern names.
// Default: registry.New()
func WithRegistry(r *registry.Registry) Option {
	return func(m *Mapper) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithEvaluator sets the evaluator used for every item.
// Default: mapping.NewEvaluator()
func WithEvaluator(e *mapping.Evaluator) Option {
	return func(m *Mapper) {
		if e != nil {
			m.evaluator = e
		}
	}
}

// WithLogger enables structured logging. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// WithMetrics enables metrics recording.
//
// Example:
//
//	mapper := batch.New(batch.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(recorder observability.MetricsRecorder) Option {
	return func(m *Mapper) {
		if recorder != nil {
			m.metrics = recorder
		}
	}
}

// WithSpans enables tracing.
func WithSpans(spans observability.SpanManager) Option {
	return func(m *Mapper) {
		if spans != nil {
			m.spans = spans
		}
	}
}

// WithStore records every mapped artifact in a manifest store.
// A failed save fails the run.
func WithStore(store manifest.Store) Option {
	return func(m *Mapper) {
		m.store = store
	}
}

// WithRunID sets the run ID. Default: a new UUID per Map call.
func WithRunID(runID string) Option {
	return func(m *Mapper) {
		m.runID = runID
	}
}

// WithFailOnCollision makes two artifacts mapped to the same file name an
// error instead of a warning.
func WithFailOnCollision(fail bool) Option {
	return func(m *Mapper) {
		m.failOnCollision = fail
	}
}
