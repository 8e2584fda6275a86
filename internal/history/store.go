// Package history persists a local journal of scaffold runs so `plugforge
// history` can show what was generated, when, and whether it published.
//
// Journal writes are best-effort: a storage failure never fails the
// scaffold run it records.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded scaffold invocation.
type Run struct {
	ID         string
	Plug       string
	Title      string
	Published  bool
	Status     string // "success" or "failed"
	Error      string
	StartedAt  time.Time
	DurationMS int64
}

// Statuses recorded in the journal.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// NewRun creates a Run with a fresh identifier, started now.
func NewRun(plug, title string, published bool) Run {
	return Run{
		ID:        uuid.NewString(),
		Plug:      plug,
		Title:     title,
		Published: published,
		StartedAt: time.Now().UTC(),
	}
}

// Finish marks the run completed, capturing status and duration.
func (r *Run) Finish(err error) {
	r.DurationMS = time.Since(r.StartedAt).Milliseconds()
	if err != nil {
		r.Status = StatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = StatusSuccess
}

// Store defines the interface for persisting and retrieving scaffold runs.
type Store interface {
	// Append adds a completed run to the journal.
	Append(ctx context.Context, run Run) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Close closes the store and releases resources.
	Close() error
}
