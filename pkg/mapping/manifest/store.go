// Package manifest records the file names artifacts were mapped to.
//
// A packaging step that names files in one place and assembles them in
// another reads the manifest of a run instead of re-evaluating patterns.
package manifest

import (
	"errors"
	"time"
)

// Store persists manifest entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save records an entry. Sequence and Timestamp are assigned by the store.
	// Overwrites if an entry for (RunID, ArtifactID) already exists.
	Save(e Entry) error

	// Load retrieves one entry.
	// Returns ErrNotFound if it doesn't exist.
	Load(runID, artifactID string) (Entry, error)

	// List returns all entries of a run, ordered by sequence.
	// Returns empty slice (not error) if the run has no entries.
	List(runID string) ([]Entry, error)

	// Runs summarizes every run, oldest first.
	Runs() ([]RunInfo, error)

	// DeleteRun removes all entries of a run.
	// Returns nil if the run has no entries.
	DeleteRun(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is one artifact mapped to a file name.
type Entry struct {
	RunID      string
	ArtifactID string
	Pattern    string
	FileName   string
	Sequence   int
	Timestamp  time.Time
}

// RunInfo summarizes a run without loading its entries.
type RunInfo struct {
	RunID   string
	Entries int
	Started time.Time
}

// Sentinel errors for manifest operations.
var (
	// ErrNotFound indicates an entry doesn't exist.
	ErrNotFound = errors.New("manifest entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("manifest store closed")
)
