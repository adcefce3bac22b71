// Package batch maps many artifacts to file names in one run.
//
// A run resolves each item's pattern through a registry, evaluates it,
// detects artifacts that end up with the same file name and optionally
// records the outcome in a manifest store. Logging, metrics and tracing
// are wired through the observability package.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/artifactname/pkg/mapping"
	"github.com/randalmurphal/artifactname/pkg/mapping/manifest"
	"github.com/randalmurphal/artifactname/pkg/mapping/observability"
	"github.com/randalmurphal/artifactname/pkg/mapping/registry"
	"go.opentelemetry.io/otel/attribute"
)

// Sentinel errors for batch runs.
var (
	// ErrCollision indicates two artifacts mapped to the same file name
	// while WithFailOnCollision is set.
	ErrCollision = errors.New("file name collision")

	// ErrNilArtifact indicates an item without an artifact.
	ErrNilArtifact = errors.New("item has no artifact")
)

// literalLabel replaces literal patterns in metric labels.
const literalLabel = "literal"

// Item is one artifact to map.
type Item struct {
	Artifact *mapping.Artifact

	// Pattern is a registered pattern name or a literal pattern.
	// Empty means registry.Default.
	Pattern string
}

// Mapped is one artifact's outcome.
type Mapped struct {
	ArtifactID string
	Pattern    string
	FileName   string
}

// Collision records two artifacts mapped to the same file name.
type Collision struct {
	FileName string
	First    string
	Second   string
}

// Result is the outcome of a run.
type Result struct {
	RunID      string
	Mapped     []Mapped
	Collisions []Collision
}

// ItemError wraps an error with the item that caused it.
type ItemError struct {
	Index      int
	ArtifactID string
	Err        error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	if e.ArtifactID == "" {
		return fmt.Sprintf("item %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("item %d (%s): %v", e.Index, e.ArtifactID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// Mapper maps items to file names.
//
// Create with New() and configure with Option functions. A Mapper may be
// reused; each Map call is a separate run.
type Mapper struct {
	registry        *registry.Registry
	evaluator       *mapping.Evaluator
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	store           manifest.Store
	runID           string
	failOnCollision bool
}

// New creates a Mapper with the given options.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		registry:  registry.New(),
		evaluator: mapping.NewEvaluator(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map maps every item in order and stops at the first failure.
//
// On failure the error is an *ItemError, and the returned Result holds the
// items mapped before it. Cancellation of ctx is checked between items.
func (m *Mapper) Map(ctx context.Context, items []Item) (result *Result, runErr error) {
	runID := m.runID
	if runID == "" {
		runID = uuid.New().String()
	}
	logger := observability.EnrichLogger(m.logger, runID)
	result = &Result{RunID: runID, Mapped: make([]Mapped, 0, len(items))}

	startTime := time.Now()
	observability.LogBatchStart(logger, runID, len(items))

	spanCtx, span := m.spans.StartBatchSpan(ctx, runID, len(items))
	defer func() {
		m.spans.EndSpanWithError(span, runErr)
	}()

	lastArtifact := ""
	runErr = m.mapItems(spanCtx, logger, items, result, &lastArtifact)

	duration := time.Since(startTime)
	durationMs := float64(duration.Microseconds()) / 1000

	m.metrics.RecordBatch(ctx, runErr == nil, len(result.Mapped), duration)

	if runErr != nil {
		observability.LogBatchError(logger, runID, runErr, durationMs, lastArtifact)
	} else {
		observability.LogBatchComplete(logger, runID, durationMs, len(result.Mapped), len(result.Collisions))
	}
	return result, runErr
}

// mapItems runs the item loop, appending to result as it goes.
func (m *Mapper) mapItems(ctx context.Context, logger *slog.Logger, items []Item, result *Result, lastArtifact *string) error {
	seen := make(map[string]string, len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return &ItemError{Index: i, Err: err}
		}
		if item.Artifact == nil {
			return &ItemError{Index: i, Err: ErrNilArtifact}
		}

		artifactID := item.Artifact.ID()
		*lastArtifact = artifactID

		mapped, err := m.mapOne(ctx, logger, item, artifactID)
		if err != nil {
			return &ItemError{Index: i, ArtifactID: artifactID, Err: err}
		}

		if first, ok := seen[mapped.FileName]; ok {
			c := Collision{FileName: mapped.FileName, First: first, Second: artifactID}
			result.Collisions = append(result.Collisions, c)

			observability.LogCollision(logger, c.FileName, c.First, c.Second)
			m.metrics.RecordCollision(ctx)
			m.spans.AddSpanEvent(ctx, "collision",
				attribute.String("file_name", c.FileName),
				attribute.String("first", c.First),
				attribute.String("second", c.Second),
			)

			if m.failOnCollision {
				return &ItemError{
					Index:      i,
					ArtifactID: artifactID,
					Err:        fmt.Errorf("%w: %s already used by %s", ErrCollision, c.FileName, c.First),
				}
			}
		} else {
			seen[mapped.FileName] = artifactID
		}

		if m.store != nil {
			err := m.store.Save(manifest.Entry{
				RunID:      result.RunID,
				ArtifactID: artifactID,
				Pattern:    mapped.Pattern,
				FileName:   mapped.FileName,
			})
			if err != nil {
				return &ItemError{Index: i, ArtifactID: artifactID, Err: fmt.Errorf("record manifest entry: %w", err)}
			}
		}

		result.Mapped = append(result.Mapped, mapped)
	}
	return nil
}

// mapOne resolves and evaluates the pattern for one item.
func (m *Mapper) mapOne(ctx context.Context, logger *slog.Logger, item Item, artifactID string) (Mapped, error) {
	ref := item.Pattern
	if ref == "" {
		ref = registry.Default
	}
	label := ref
	if registry.IsLiteral(ref) {
		label = literalLabel
	}

	spanCtx, span := m.spans.StartMappingSpan(ctx, artifactID, ref)
	start := time.Now()

	pattern, err := m.registry.Resolve(ref)
	var fileName string
	if err == nil {
		fileName, err = m.evaluator.Evaluate(pattern, item.Artifact)
	}

	m.metrics.RecordMapping(spanCtx, label, time.Since(start), err)
	m.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogMappingError(logger, artifactID, ref, err)
		return Mapped{}, err
	}

	observability.LogMapped(logger, artifactID, fileName)
	return Mapped{ArtifactID: artifactID, Pattern: pattern, FileName: fileName}, nil
}
