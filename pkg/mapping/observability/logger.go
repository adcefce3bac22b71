// Package observability provides logging, metrics and tracing for mapping
// runs: structured logging via slog, metrics and tracing via OpenTelemetry.
//
// The core mapping package never logs or records anything itself; the batch
// mapper and the CLI call into this package. All features are opt-in and
// have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds the run ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "run-123")
//	enriched.Info("mapping") // includes run_id
func EnrichLogger(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("run_id", runID))
}

// LogBatchStart logs the start of a mapping run.
func LogBatchStart(logger *slog.Logger, runID string, artifacts int) {
	if logger == nil {
		return
	}
	logger.Info("mapping run starting",
		slog.String("run_id", runID),
		slog.Int("artifacts", artifacts),
	)
}

// LogBatchComplete logs successful run completion.
func LogBatchComplete(logger *slog.Logger, runID string, durationMs float64, mapped int, collisions int) {
	if logger == nil {
		return
	}
	logger.Info("mapping run completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("mapped", mapped),
		slog.Int("collisions", collisions),
	)
}

// LogBatchError logs run failure.
func LogBatchError(logger *slog.Logger, runID string, err error, durationMs float64, artifactID string) {
	if logger == nil {
		return
	}
	logger.Error("mapping run failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("artifact", artifactID),
	)
}

// LogMapped logs one artifact mapped to a file name.
func LogMapped(logger *slog.Logger, artifactID, fileName string) {
	if logger == nil {
		return
	}
	logger.Debug("artifact mapped",
		slog.String("artifact", artifactID),
		slog.String("file_name", fileName),
	)
}

// LogMappingError logs a pattern that could not be evaluated for an artifact.
func LogMappingError(logger *slog.Logger, artifactID, pattern string, err error) {
	if logger == nil {
		return
	}
	logger.Error("artifact mapping failed",
		slog.String("artifact", artifactID),
		slog.String("pattern", pattern),
		slog.String("error", err.Error()),
	)
}

// LogCollision logs two artifacts mapped to the same file name.
func LogCollision(logger *slog.Logger, fileName, first, second string) {
	if logger == nil {
		return
	}
	logger.Warn("file name collision",
		slog.String("file_name", fileName),
		slog.String("first", first),
		slog.String("second", second),
	)
}
