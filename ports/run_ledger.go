// Package ports defines the interfaces between the application services and
// their infrastructure adapters.
package ports

import (
	"context"

	"goinfer/domain/run"
)

// RunLedger persists and retrieves executed test runs.
type RunLedger interface {
	// SaveRun appends a completed test run to the ledger.
	SaveRun(ctx context.Context, r run.TestRun) error

	// ListRuns returns the most recent runs, newest first. A limit <= 0
	// means no limit.
	ListRuns(ctx context.Context, limit int) ([]run.TestRun, error)
}
