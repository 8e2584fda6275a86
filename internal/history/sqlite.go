package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-backed journal.
// Use ":memory:" for an in-memory database, or a file path for persistence;
// parent directories are created as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, founderr.HistoryError("could not create journal directory").
				WithCause(err).
				WithContext("path", dbPath).
				Build()
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, founderr.HistoryError("could not open journal database").
			WithCause(err).
			WithContext("path", dbPath).
			Build()
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, founderr.HistoryError("failed to initialize journal schema").
			WithCause(err).
			Build()
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		plug TEXT NOT NULL,
		title TEXT NOT NULL,
		published INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_plug ON runs(plug);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a completed run to the journal.
func (s *SQLiteStore) Append(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	published := 0
	if run.Published {
		published = 1
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, plug, title, published, status, error, started_at, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Plug, run.Title, published, run.Status, run.Error, run.StartedAt.Unix(), run.DurationMS,
	)
	if err != nil {
		return founderr.HistoryError("failed to append run to journal").
			WithCause(err).
			WithContext("run_id", run.ID).
			Build()
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, plug, title, published, status, error, started_at, duration_ms FROM runs ORDER BY started_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, founderr.HistoryError("failed to query journal").
			WithCause(err).
			Build()
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var published int
		var startedUnix int64

		if err := rows.Scan(&run.ID, &run.Plug, &run.Title, &published, &run.Status, &run.Error, &startedUnix, &run.DurationMS); err != nil {
			return nil, founderr.HistoryError("failed to scan journal rows").
				WithCause(err).
				Build()
		}

		run.Published = published != 0
		run.StartedAt = time.Unix(startedUnix, 0).UTC()
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, founderr.HistoryError("failed to iterate journal rows").
			WithCause(err).
			Build()
	}
	return runs, nil
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
