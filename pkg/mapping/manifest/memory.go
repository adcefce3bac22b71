package manifest

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory manifest store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]Entry // runID -> artifactID -> entry
	closed bool
}

// NewMemoryStore creates a new in-memory manifest store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]Entry),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	run := m.data[e.RunID]
	if run == nil {
		run = make(map[string]Entry)
		m.data[e.RunID] = run
	}

	seq := 1
	for _, existing := range run {
		if existing.Sequence >= seq {
			seq = existing.Sequence + 1
		}
	}

	e.Sequence = seq
	e.Timestamp = time.Now().UTC()
	run[e.ArtifactID] = e
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(runID, artifactID string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Entry{}, ErrStoreClosed
	}

	e, ok := m.data[runID][artifactID]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// List implements Store.
func (m *MemoryStore) List(runID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	run := m.data[runID]
	entries := make([]Entry, 0, len(run))
	for _, e := range run {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Sequence < entries[j].Sequence
	})
	return entries, nil
}

// Runs implements Store.
func (m *MemoryStore) Runs() ([]RunInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	runs := make([]RunInfo, 0, len(m.data))
	for runID, run := range m.data {
		if len(run) == 0 {
			continue
		}
		info := RunInfo{RunID: runID, Entries: len(run)}
		for _, e := range run {
			if info.Started.IsZero() || e.Timestamp.Before(info.Started) {
				info.Started = e.Timestamp
			}
		}
		runs = append(runs, info)
	}

	sortRuns(runs)
	return runs, nil
}

// DeleteRun implements Store.
func (m *MemoryStore) DeleteRun(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, runID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of entries across all runs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, run := range m.data {
		count += len(run)
	}
	return count
}

// sortRuns orders runs oldest first, breaking ties by run ID.
func sortRuns(runs []RunInfo) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].Started.Equal(runs[j].Started) {
			return runs[i].Started.Before(runs[j].Started)
		}
		return runs[i].RunID < runs[j].RunID
	})
}
