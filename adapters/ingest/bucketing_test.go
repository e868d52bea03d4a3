package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goinfer/domain/stats"
)

func TestParseTimestamps_DefaultLayout(t *testing.T) {
	times, err := ParseTimestamps([]string{
		"4/12/2016 7:21:00 AM",
		"4/13/2016 11:05:00 PM",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2016, 4, 12, 7, 21, 0, 0, time.UTC), times[0])
	assert.Equal(t, time.Date(2016, 4, 13, 23, 5, 0, 0, time.UTC), times[1])
}

func TestParseTimestamps_RFC3339Fallback(t *testing.T) {
	times, err := ParseTimestamps([]string{"2016-04-12T07:21:00Z"}, "")
	require.NoError(t, err)
	assert.Equal(t, 2016, times[0].Year())
}

func TestParseTimestamps_Unparseable(t *testing.T) {
	_, err := ParseTimestamps([]string{"yesterday"}, "")
	assert.Error(t, err)
}

func TestDailyTotals(t *testing.T) {
	times := []time.Time{
		time.Date(2016, 4, 13, 9, 0, 0, 0, time.UTC),
		time.Date(2016, 4, 12, 7, 0, 0, 0, time.UTC),
		time.Date(2016, 4, 12, 18, 30, 0, 0, time.UTC),
		time.Date(2016, 4, 13, 22, 0, 0, 0, time.UTC),
	}
	values := stats.Sample{300, 100, 50, 200}

	totals, err := DailyTotals(times, values)
	require.NoError(t, err)

	// Chronological order: 4/12 then 4/13.
	assert.Equal(t, []float64{150, 500}, []float64(totals))
}

func TestDailyTotals_LengthMismatch(t *testing.T) {
	_, err := DailyTotals([]time.Time{time.Now()}, stats.Sample{1, 2})
	assert.Error(t, err)
}

func TestGroupColumns(t *testing.T) {
	table := &TableData{
		Headers: []string{"a", "b"},
		Rows: [][]string{
			{"1", "10"},
			{"2", "x"},
			{"3", "30"},
		},
	}

	groups, err := GroupColumns(table, []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, stats.GroupedSample{{1, 2, 3}, {10, 30}}, groups)
}

func TestMatrixFromColumns_FillsMissingWithZero(t *testing.T) {
	table := &TableData{
		Headers: []string{"subject", "c1", "c2"},
		Rows: [][]string{
			{"s1", "1", "2"},
			{"s2", "", "4"},
			{"s3", "5"},
		},
	}

	matrix, err := MatrixFromColumns(table, []string{"c1", "c2"})
	require.NoError(t, err)

	assert.Equal(t, stats.SubjectConditionMatrix{
		{1, 2},
		{0, 4},
		{5, 0},
	}, matrix)
	assert.True(t, matrix.IsRectangular())
}

func TestMatrixFromColumns_UnknownColumn(t *testing.T) {
	table := &TableData{Headers: []string{"a"}, Rows: [][]string{{"1"}}}

	_, err := MatrixFromColumns(table, []string{"zzz"})
	assert.Error(t, err)
}
