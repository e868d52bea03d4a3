package app

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goinfer/domain/core"
	"goinfer/domain/stats"
	"goinfer/internal"
	"goinfer/internal/testkit"
)

func newTestService(ledger *testkit.InMemoryRunLedger) *SweepService {
	return NewSweepService(ledger, internal.NewLogger(internal.LogLevelError), 2)
}

func TestSweep_FullBattery(t *testing.T) {
	ledger := testkit.NewInMemoryRunLedger()
	svc := newTestService(ledger)

	names := []string{"steps", "calories", "distance"}
	groups := stats.GroupedSample{
		{100, 120, 90, 115},
		{80, 95, 70, 105},
		{60, 75, 85, 90},
	}
	matrix := stats.SubjectConditionMatrix{
		{100, 80, 60},
		{120, 95, 75},
		{90, 70, 85},
		{115, 105, 90},
	}

	result, err := svc.Sweep(context.Background(), core.DatasetKey("fitbit"), names, groups, matrix)
	require.NoError(t, err)

	assert.Len(t, result.Profiles, 3)
	assert.Len(t, result.TTests, 3) // all column pairs
	require.NotNil(t, result.ANOVA)
	require.NotNil(t, result.RMANOVA)
	assert.Empty(t, result.Skipped)

	// 3 t-tests + ANOVA + RM-ANOVA all persisted.
	runs, err := ledger.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}

func TestSweep_TwoColumnsSkipsANOVA(t *testing.T) {
	svc := newTestService(testkit.NewInMemoryRunLedger())

	result, err := svc.Sweep(context.Background(), "d", []string{"a", "b"}, stats.GroupedSample{
		{1, 2, 3},
		{4, 5, 6},
	}, nil)
	require.NoError(t, err)

	assert.Len(t, result.TTests, 1)
	assert.Nil(t, result.ANOVA)
	assert.Nil(t, result.RMANOVA)
	require.Len(t, result.Skipped, 1)
	assert.Contains(t, result.Skipped[0], "anova")
}

func TestSweep_DegenerateColumnDoesNotAbortBattery(t *testing.T) {
	svc := newTestService(testkit.NewInMemoryRunLedger())

	// The two constant columns collapse their shared t-test standard error;
	// that pair is skipped while the rest of the battery still runs.
	names := []string{"const1", "const2", "a"}
	groups := stats.GroupedSample{
		{5, 5, 5},
		{5, 5, 5},
		{1, 2, 3},
	}

	result, err := svc.Sweep(context.Background(), "d", names, groups, nil)
	require.NoError(t, err)

	assert.Len(t, result.TTests, 2)
	require.Len(t, result.Skipped, 1)
	assert.Contains(t, result.Skipped[0], "const1 vs const2")
	assert.NotNil(t, result.ANOVA)
}

// cancelAfterPolls reports cancellation starting from its nth Done poll,
// pinning down exactly how far a sweep gets before its context dies.
type cancelAfterPolls struct {
	context.Context
	mu    sync.Mutex
	polls int
	limit int
	done  chan struct{}
}

func newCancelAfterPolls(limit int) *cancelAfterPolls {
	done := make(chan struct{})
	close(done)
	return &cancelAfterPolls{Context: context.Background(), limit: limit, done: done}
}

func (c *cancelAfterPolls) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polls++
	if c.polls > c.limit {
		return c.done
	}
	return nil
}

func (c *cancelAfterPolls) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.polls > c.limit {
		return context.Canceled
	}
	return nil
}

func TestSweep_CancellationWaitsForLaunchedWorkers(t *testing.T) {
	ledger := testkit.NewInMemoryRunLedger()
	svc := newTestService(ledger)

	names := []string{"steps", "calories", "distance"}
	groups := stats.GroupedSample{
		{100, 120, 90, 115},
		{80, 95, 70, 105},
		{60, 75, 85, 90},
	}

	// Cancellation surfaces on the second semaphore acquire: the first
	// pair's worker is already running when the loop stops.
	ctx := newCancelAfterPolls(1)
	result, err := svc.Sweep(ctx, "fitbit", names, groups, nil)
	require.NoError(t, err)

	// The launched worker must have finished before Sweep returned, so
	// reading the result here never races with it.
	assert.Len(t, result.TTests, 1)
	require.NotEmpty(t, result.Skipped)
	assert.Contains(t, result.Skipped[0], "canceled")
	assert.NotNil(t, result.ANOVA)
}

func TestSweep_NameGroupMismatch(t *testing.T) {
	svc := newTestService(testkit.NewInMemoryRunLedger())

	_, err := svc.Sweep(context.Background(), "d", []string{"a"}, stats.GroupedSample{{1}, {2}}, nil)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestRenderMarkdown(t *testing.T) {
	svc := newTestService(testkit.NewInMemoryRunLedger())

	result, err := svc.Sweep(context.Background(), core.DatasetKey("fitbit"), []string{"a", "b", "c"}, stats.GroupedSample{
		{1, 2, 3, 4},
		{2, 3, 4, 5},
		{3, 4, 5, 6},
	}, nil)
	require.NoError(t, err)

	md := RenderMarkdown(result)

	assert.True(t, strings.HasPrefix(md, "# Sweep report: fitbit"))
	assert.Contains(t, md, "## Column profiles")
	assert.Contains(t, md, "## Pairwise t-tests")
	assert.Contains(t, md, "## One-way ANOVA")
	assert.NotContains(t, md, "## Repeated-measures ANOVA")
}
