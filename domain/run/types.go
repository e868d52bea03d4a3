// Package run defines the persisted audit record for executed hypothesis tests.
package run

import (
	"goinfer/domain/core"
	"goinfer/domain/stats"
)

// TestRun records one executed hypothesis test: what was tested, over which
// dataset shape, and what came out. Runs are immutable once created.
type TestRun struct {
	ID         core.RunID       `json:"id" db:"id"`
	TestType   stats.TestType   `json:"test_type" db:"test_type"`
	DatasetKey core.DatasetKey  `json:"dataset_key,omitempty" db:"dataset_key"`
	Groups     int              `json:"groups" db:"groups"`
	TotalN     int              `json:"total_n" db:"total_n"`
	Result     stats.TestResult `json:"result"`
	CreatedAt  core.Timestamp   `json:"created_at" db:"created_at"`
}

// NewTestRun creates a run record for a completed test.
func NewTestRun(testType stats.TestType, datasetKey core.DatasetKey, groups, totalN int, result stats.TestResult) TestRun {
	return TestRun{
		ID:         core.NewRunID(),
		TestType:   testType,
		DatasetKey: datasetKey,
		Groups:     groups,
		TotalN:     totalN,
		Result:     result,
		CreatedAt:  core.Now(),
	}
}
