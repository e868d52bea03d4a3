// Package profiling computes per-column descriptive profiles for ingested
// datasets. Order statistics come from montanaflynn/stats; the means and
// population standard deviation come from the analysis engine so a profile
// and a hypothesis test never disagree about the same column.
package profiling

import (
	"github.com/montanaflynn/stats"

	"goinfer/internal/analysis"

	domainstats "goinfer/domain/stats"
)

// ColumnProfile summarizes a single numeric column.
type ColumnProfile struct {
	Name           string  `json:"name"`
	SampleSize     int     `json:"sample_size"`
	ArithmeticMean float64 `json:"arithmetic_mean"`
	HarmonicMean   float64 `json:"harmonic_mean"`
	StdDev         float64 `json:"std_dev"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Median         float64 `json:"median"`
	Q25            float64 `json:"q25"`
	Q75            float64 `json:"q75"`
}

// Profile computes the descriptive profile of one column. Empty columns
// yield an all-zero profile, matching the engine's empty-sample policy.
func Profile(name string, sample domainstats.Sample) ColumnProfile {
	profile := ColumnProfile{
		Name:           name,
		SampleSize:     len(sample),
		ArithmeticMean: analysis.ArithmeticMean(sample),
		HarmonicMean:   analysis.HarmonicMean(sample),
		StdDev:         analysis.PopulationStdDev(sample),
	}
	if len(sample) == 0 {
		return profile
	}

	data := stats.Float64Data(sample)
	profile.Min, _ = stats.Min(data)
	profile.Max, _ = stats.Max(data)
	profile.Median, _ = stats.Median(data)
	profile.Q25, _ = stats.Percentile(data, 25)
	profile.Q75, _ = stats.Percentile(data, 75)
	return profile
}

// ProfileGroups profiles each named column, preserving input order.
func ProfileGroups(names []string, groups domainstats.GroupedSample) []ColumnProfile {
	profiles := make([]ColumnProfile, len(groups))
	for i, g := range groups {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		profiles[i] = Profile(name, g)
	}
	return profiles
}
