// Package app orchestrates the analysis engine over ingested datasets:
// profiling every column, running the test battery, and recording runs.
package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"goinfer/domain/core"
	"goinfer/domain/run"
	"goinfer/domain/stats"
	"goinfer/internal"
	"goinfer/internal/analysis"
	"goinfer/internal/profiling"
	"goinfer/ports"
)

// PairwiseTTest is one executed column-pair t-test.
type PairwiseTTest struct {
	ColumnX string           `json:"column_x"`
	ColumnY string           `json:"column_y"`
	Result  stats.TestResult `json:"result"`
}

// SweepResult aggregates everything a sweep produced over one dataset.
type SweepResult struct {
	DatasetKey core.DatasetKey           `json:"dataset_key"`
	Profiles   []profiling.ColumnProfile `json:"profiles"`
	TTests     []PairwiseTTest           `json:"t_tests"`
	ANOVA      *stats.TestResult         `json:"anova,omitempty"`
	RMANOVA    *stats.TestResult         `json:"rm_anova,omitempty"`
	Skipped    []string                  `json:"skipped,omitempty"`
}

// SweepService runs the full test battery over a grouped dataset.
type SweepService struct {
	ledger        ports.RunLedger
	logger        *internal.Logger
	maxConcurrent int64
}

// NewSweepService creates a sweep service. maxConcurrent bounds how many
// pairwise tests run at once.
func NewSweepService(ledger ports.RunLedger, logger *internal.Logger, maxConcurrent int64) *SweepService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &SweepService{ledger: ledger, logger: logger, maxConcurrent: maxConcurrent}
}

// Sweep profiles every column and runs pairwise t-tests, a one-way ANOVA
// across all columns (when there are at least three), and a repeated-measures
// ANOVA over the optional subjects-by-conditions matrix. Individual test
// failures are recorded as skips and never abort the remaining battery.
func (s *SweepService) Sweep(ctx context.Context, datasetKey core.DatasetKey, names []string, groups stats.GroupedSample, matrix stats.SubjectConditionMatrix) (*SweepResult, error) {
	if len(names) != len(groups) {
		return nil, core.NewInvalidParameterError("sweep", "column name and group counts differ")
	}

	result := &SweepResult{
		DatasetKey: datasetKey,
		Profiles:   profiling.ProfileGroups(names, groups),
	}

	s.runPairwiseTTests(ctx, result, names, groups)
	s.runANOVA(ctx, result, groups)
	s.runRMANOVA(ctx, result, matrix)

	return result, nil
}

// runPairwiseTTests executes every column pair under a bounded semaphore.
// On context cancellation the remaining pairs are recorded as a single skip,
// and already-launched workers are always waited out so the result is never
// handed back while a worker can still write to it.
func (s *SweepService) runPairwiseTTests(ctx context.Context, result *SweepResult, names []string, groups stats.GroupedSample) {
	sem := semaphore.NewWeighted(s.maxConcurrent)
	var mu sync.Mutex
	var wg sync.WaitGroup

pairs:
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				mu.Lock()
				result.Skipped = append(result.Skipped, fmt.Sprintf("ttests canceled: %v", err))
				mu.Unlock()
				break pairs
			}
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				defer sem.Release(1)

				res, err := analysis.TwoSampleTTest(stats.RawSide(groups[i]), stats.RawSide(groups[j]))

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Skipped = append(result.Skipped,
						fmt.Sprintf("ttest %s vs %s: %v", names[i], names[j], err))
					return
				}
				result.TTests = append(result.TTests, PairwiseTTest{
					ColumnX: names[i],
					ColumnY: names[j],
					Result:  res,
				})
				s.record(ctx, stats.TestTTest, result.DatasetKey, 2, len(groups[i])+len(groups[j]), res)
			}(i, j)
		}
	}
	wg.Wait()
}

func (s *SweepService) runANOVA(ctx context.Context, result *SweepResult, groups stats.GroupedSample) {
	if len(groups) < 3 {
		result.Skipped = append(result.Skipped, fmt.Sprintf("anova: only %d columns", len(groups)))
		return
	}

	res, err := analysis.OneWayANOVA(groups)
	if err != nil {
		result.Skipped = append(result.Skipped, fmt.Sprintf("anova: %v", err))
		return
	}
	result.ANOVA = &res

	totalN := 0
	for _, g := range groups {
		totalN += len(g)
	}
	s.record(ctx, stats.TestANOVA, result.DatasetKey, len(groups), totalN, res)
}

func (s *SweepService) runRMANOVA(ctx context.Context, result *SweepResult, matrix stats.SubjectConditionMatrix) {
	if matrix == nil {
		return
	}

	res, err := analysis.RepeatedMeasuresANOVA(matrix)
	if err != nil {
		result.Skipped = append(result.Skipped, fmt.Sprintf("rm_anova: %v", err))
		return
	}
	result.RMANOVA = &res
	s.record(ctx, stats.TestRMANOVA, result.DatasetKey, matrix.Cols(), matrix.Rows()*matrix.Cols(), res)
}

func (s *SweepService) record(ctx context.Context, testType stats.TestType, datasetKey core.DatasetKey, groups, totalN int, res stats.TestResult) {
	if s.ledger == nil {
		return
	}
	r := run.NewTestRun(testType, datasetKey, groups, totalN, res)
	if err := s.ledger.SaveRun(ctx, r); err != nil {
		s.logger.Warn("failed to persist %s run: %v", testType, err)
	}
}
