package ingest

import (
	"fmt"
	"sort"
	"time"

	"goinfer/domain/core"
	"goinfer/domain/stats"
)

// DefaultTimestampLayout matches the activity exports this engine was built
// around, e.g. "4/12/2016 7:21:00 AM".
const DefaultTimestampLayout = "1/2/2006 3:04:05 PM"

// ParseTimestamps parses a column of timestamp cells with the given layout,
// falling back to RFC3339. An empty layout uses DefaultTimestampLayout.
func ParseTimestamps(values []string, layout string) ([]time.Time, error) {
	if layout == "" {
		layout = DefaultTimestampLayout
	}

	times := make([]time.Time, len(values))
	for i, v := range values {
		t, err := time.Parse(layout, v)
		if err != nil {
			t, err = time.Parse(time.RFC3339, v)
		}
		if err != nil {
			return nil, core.NewInvalidParameterError("timestamp", fmt.Sprintf("row %d: cannot parse %q", i+1, v))
		}
		times[i] = t
	}
	return times, nil
}

// DailyTotals buckets parallel (timestamp, value) observations by calendar
// date and sums each bucket, returning one total per day in chronological
// order. This collapses e.g. hourly step counts into daily step totals.
func DailyTotals(times []time.Time, values stats.Sample) (stats.Sample, error) {
	if len(times) != len(values) {
		return nil, core.NewInvalidParameterError("daily totals", "timestamp and value counts differ")
	}

	totals := make(map[string]float64, len(times))
	for i, t := range times {
		totals[t.Format("2006-01-02")] += values[i]
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make(stats.Sample, len(days))
	for i, day := range days {
		out[i] = totals[day]
	}
	return out, nil
}

// GroupColumns extracts the named columns as a GroupedSample, preserving the
// requested order. Each group keeps only its parseable numeric cells, so
// groups may differ in length.
func GroupColumns(table *TableData, names []string) (stats.GroupedSample, error) {
	groups := make(stats.GroupedSample, len(names))
	for i, name := range names {
		sample, err := table.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		groups[i] = sample
	}
	return groups, nil
}

// MatrixFromColumns builds a dense SubjectConditionMatrix from the named
// columns: table rows become subjects, the columns become conditions. Cells
// that do not parse are substituted with 0 so the matrix stays rectangular;
// the engine performs no imputation of its own.
func MatrixFromColumns(table *TableData, names []string) (stats.SubjectConditionMatrix, error) {
	indices := make([]int, len(names))
	for i, name := range names {
		idx, ok := table.ColumnIndex(name)
		if !ok {
			return nil, core.NewInvalidParameterError("column", fmt.Sprintf("%q not found", name))
		}
		indices[i] = idx
	}

	matrix := make(stats.SubjectConditionMatrix, len(table.Rows))
	for r, row := range table.Rows {
		cells := make(stats.Sample, len(indices))
		for c, idx := range indices {
			if idx < len(row) {
				if v, ok := parseNumber(row[idx]); ok {
					cells[c] = v
				}
			}
		}
		matrix[r] = cells
	}
	return matrix, nil
}
