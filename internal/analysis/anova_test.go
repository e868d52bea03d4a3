package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"goinfer/domain/core"
	"goinfer/domain/stats"
)

func TestOneWayANOVA_KnownValue(t *testing.T) {
	groups := stats.GroupedSample{
		{1, 2, 3, 4},
		{2, 3, 4, 5},
		{3, 4, 5, 6},
	}

	got, err := OneWayANOVA(groups)
	require.NoError(t, err)

	// SS_between=8, SS_within=15, df=(2,9): F = 4 / (15/9) = 2.4
	assert.InDelta(t, 2.4, got.Statistic, 1e-10)

	dist := distuv.F{D1: 2, D2: 9}
	assert.InDelta(t, 1-dist.CDF(2.4), got.PValue, 1e-10)
}

func TestOneWayANOVA_IdenticalMeans(t *testing.T) {
	groups := stats.GroupedSample{
		{1, 2, 3},
		{1, 2, 3},
		{1, 2, 3},
	}

	got, err := OneWayANOVA(groups)
	require.NoError(t, err)

	assert.InDelta(t, 0, got.Statistic, 1e-12)
	assert.InDelta(t, 1, got.PValue, 1e-12)
}

func TestOneWayANOVA_TooFewGroups(t *testing.T) {
	groups := stats.GroupedSample{
		{1, 2, 3},
		{4, 5, 6},
	}

	_, err := OneWayANOVA(groups)
	assert.True(t, core.IsInsufficientGroups(err))
}

func TestOneWayANOVA_TooFewObservations(t *testing.T) {
	// Three singleton groups: df_within = N - m = 0.
	groups := stats.GroupedSample{{1}, {2}, {3}}

	_, err := OneWayANOVA(groups)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestOneWayANOVA_ConstantGroupsWithDifferentMeans(t *testing.T) {
	// Between-group effect present but zero within-group variance.
	groups := stats.GroupedSample{
		{1, 1},
		{2, 2},
		{3, 3},
	}

	_, err := OneWayANOVA(groups)
	assert.True(t, core.IsDegenerateResult(err))
}

func TestOneWayANOVA_UnequalGroupSizes(t *testing.T) {
	groups := stats.GroupedSample{
		{10, 12, 14},
		{11, 13},
		{9, 10, 11, 12},
	}

	got, err := OneWayANOVA(groups)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, got.Statistic, 0.0)
	assert.GreaterOrEqual(t, got.PValue, 0.0)
	assert.LessOrEqual(t, got.PValue, 1.0)
}
