package manifest

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists manifest entries to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite manifest store.
// The path should be a file path (e.g., "./manifest.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS manifest_entries (
			run_id TEXT NOT NULL,
			artifact_id TEXT NOT NULL,
			pattern TEXT NOT NULL,
			file_name TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			PRIMARY KEY (run_id, artifact_id)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_manifest_entries_run_id
		ON manifest_entries(run_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO manifest_entries (run_id, artifact_id, pattern, file_name, sequence, timestamp)
		VALUES (
			?, ?, ?, ?,
			COALESCE((SELECT MAX(sequence) FROM manifest_entries WHERE run_id = ?), 0) + 1,
			?
		)
		ON CONFLICT(run_id, artifact_id) DO UPDATE SET
			pattern = excluded.pattern,
			file_name = excluded.file_name,
			sequence = (SELECT MAX(sequence) FROM manifest_entries WHERE run_id = excluded.run_id) + 1,
			timestamp = excluded.timestamp
	`, e.RunID, e.ArtifactID, e.Pattern, e.FileName, e.RunID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save manifest entry: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(runID, artifactID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Entry{}, ErrStoreClosed
	}

	e := Entry{RunID: runID, ArtifactID: artifactID}
	var timestamp string
	err := s.db.QueryRow(`
		SELECT pattern, file_name, sequence, timestamp FROM manifest_entries
		WHERE run_id = ? AND artifact_id = ?
	`, runID, artifactID).Scan(&e.Pattern, &e.FileName, &e.Sequence, &timestamp)

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("load manifest entry: %w", err)
	}
	e.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
	return e, nil
}

// List implements Store.
func (s *SQLiteStore) List(runID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT artifact_id, pattern, file_name, sequence, timestamp
		FROM manifest_entries
		WHERE run_id = ?
		ORDER BY sequence
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list manifest entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e := Entry{RunID: runID}
		var timestamp string
		if err := rows.Scan(&e.ArtifactID, &e.Pattern, &e.FileName, &e.Sequence, &timestamp); err != nil {
			return nil, fmt.Errorf("scan manifest entry: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manifest entries: %w", err)
	}
	return entries, nil
}

// Runs implements Store.
func (s *SQLiteStore) Runs() ([]RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT run_id, COUNT(*), MIN(timestamp)
		FROM manifest_entries
		GROUP BY run_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var info RunInfo
		var started string
		if err := rows.Scan(&info.RunID, &info.Entries, &started); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		info.Started, _ = time.Parse(time.RFC3339Nano, started)
		runs = append(runs, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	sortRuns(runs)
	return runs, nil
}

// DeleteRun implements Store.
func (s *SQLiteStore) DeleteRun(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM manifest_entries WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete run entries: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
