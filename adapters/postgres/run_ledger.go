// Package postgres implements the run ledger on PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"goinfer/domain/core"
	"goinfer/domain/run"
	"goinfer/domain/stats"
	"goinfer/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS test_runs (
	id          UUID PRIMARY KEY,
	test_type   TEXT NOT NULL,
	dataset_key TEXT NOT NULL DEFAULT '',
	groups      INT NOT NULL,
	total_n     INT NOT NULL,
	statistic   DOUBLE PRECISION NOT NULL,
	p_value     DOUBLE PRECISION NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
)`

// RunLedgerImpl implements ports.RunLedger for PostgreSQL
type RunLedgerImpl struct {
	db *sqlx.DB
}

// NewRunLedger creates a PostgreSQL run ledger and ensures its schema exists.
func NewRunLedger(db *sqlx.DB) (ports.RunLedger, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &RunLedgerImpl{db: db}, nil
}

// SaveRun appends a completed test run.
func (l *RunLedgerImpl) SaveRun(ctx context.Context, r run.TestRun) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO test_runs (id, test_type, dataset_key, groups, total_n, statistic, p_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID.String(), string(r.TestType), r.DatasetKey.String(), r.Groups, r.TotalN,
		r.Result.Statistic, r.Result.PValue, r.CreatedAt.Time())
	return err
}

type runRow struct {
	ID         string    `db:"id"`
	TestType   string    `db:"test_type"`
	DatasetKey string    `db:"dataset_key"`
	Groups     int       `db:"groups"`
	TotalN     int       `db:"total_n"`
	Statistic  float64   `db:"statistic"`
	PValue     float64   `db:"p_value"`
	CreatedAt  time.Time `db:"created_at"`
}

// ListRuns returns the most recent runs, newest first.
func (l *RunLedgerImpl) ListRuns(ctx context.Context, limit int) ([]run.TestRun, error) {
	query := `
		SELECT id, test_type, dataset_key, groups, total_n, statistic, p_value, created_at
		FROM test_runs
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := l.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []run.TestRun
	for rows.Next() {
		var row runRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		runs = append(runs, run.TestRun{
			ID:         core.RunID(row.ID),
			TestType:   stats.TestType(row.TestType),
			DatasetKey: core.DatasetKey(row.DatasetKey),
			Groups:     row.Groups,
			TotalN:     row.TotalN,
			Result:     stats.TestResult{Statistic: row.Statistic, PValue: row.PValue},
			CreatedAt:  core.NewTimestamp(row.CreatedAt),
		})
	}
	return runs, rows.Err()
}
