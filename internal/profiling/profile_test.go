package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainstats "goinfer/domain/stats"
)

func TestProfile(t *testing.T) {
	got := Profile("calories", domainstats.Sample{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, "calories", got.Name)
	assert.Equal(t, 8, got.SampleSize)
	assert.InDelta(t, 5, got.ArithmeticMean, 1e-12)
	assert.InDelta(t, 2, got.StdDev, 1e-12)
	assert.InDelta(t, 2, got.Min, 1e-12)
	assert.InDelta(t, 9, got.Max, 1e-12)
	assert.InDelta(t, 4.5, got.Median, 1e-12)
	assert.Greater(t, got.HarmonicMean, 0.0)
	assert.Less(t, got.HarmonicMean, got.ArithmeticMean)
}

func TestProfile_Empty(t *testing.T) {
	got := Profile("empty", domainstats.Sample{})

	assert.Equal(t, 0, got.SampleSize)
	assert.Zero(t, got.ArithmeticMean)
	assert.Zero(t, got.StdDev)
	assert.Zero(t, got.Median)
}

func TestProfileGroups_PreservesOrder(t *testing.T) {
	groups := domainstats.GroupedSample{
		{1, 2, 3},
		{10, 20, 30},
	}

	profiles := ProfileGroups([]string{"a", "b"}, groups)

	assert.Len(t, profiles, 2)
	assert.Equal(t, "a", profiles[0].Name)
	assert.Equal(t, "b", profiles[1].Name)
	assert.InDelta(t, 2, profiles[0].ArithmeticMean, 1e-12)
	assert.InDelta(t, 20, profiles[1].ArithmeticMean, 1e-12)
}
