// Package testkit provides in-memory infrastructure implementations for
// tests and for running the binaries without a database.
package testkit

import (
	"context"
	"sync"

	"goinfer/domain/run"
	"goinfer/ports"
)

// InMemoryRunLedger is a thread-safe in-memory RunLedger.
type InMemoryRunLedger struct {
	mu   sync.RWMutex
	runs []run.TestRun
}

// NewInMemoryRunLedger creates an empty in-memory ledger.
func NewInMemoryRunLedger() *InMemoryRunLedger {
	return &InMemoryRunLedger{}
}

var _ ports.RunLedger = (*InMemoryRunLedger)(nil)

// SaveRun appends a run to the ledger.
func (l *InMemoryRunLedger) SaveRun(ctx context.Context, r run.TestRun) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runs = append(l.runs, r)
	return nil
}

// ListRuns returns runs newest first.
func (l *InMemoryRunLedger) ListRuns(ctx context.Context, limit int) ([]run.TestRun, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]run.TestRun, 0, len(l.runs))
	for i := len(l.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, l.runs[i])
	}
	return out, nil
}
