package analysis

import (
	"math"

	"goinfer/domain/core"
	"goinfer/domain/stats"
)

// ArithmeticMean returns sum(sample)/len(sample). An empty sample yields 0;
// degenerate inputs are recovered locally rather than raised as errors, in
// line with the rest of the descriptive layer.
func ArithmeticMean(sample stats.Sample) float64 {
	if len(sample) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range sample {
		sum += x
	}
	return sum / float64(len(sample))
}

// HarmonicMean returns n / sum(1/x). Zero-valued observations are excluded
// from the reciprocal sum but still counted in n, so a sample containing
// zeros is pulled toward zero without dividing by it. An all-zero or empty
// sample yields 0.
func HarmonicMean(sample stats.Sample) float64 {
	if len(sample) == 0 {
		return 0
	}
	recipSum := 0.0
	for _, x := range sample {
		if x != 0 {
			recipSum += 1 / x
		}
	}
	if recipSum == 0 {
		return 0
	}
	return float64(len(sample)) / recipSum
}

// GroupMeans returns the arithmetic mean of each group, preserving input order.
func GroupMeans(groups stats.GroupedSample) []float64 {
	means := make([]float64, len(groups))
	for i, g := range groups {
		means[i] = ArithmeticMean(g)
	}
	return means
}

// GroupHarmonicMeans returns the harmonic mean of each group, preserving
// input order.
func GroupHarmonicMeans(groups stats.GroupedSample) []float64 {
	means := make([]float64, len(groups))
	for i, g := range groups {
		means[i] = HarmonicMean(g)
	}
	return means
}

// PopulationStdDev returns sqrt(mean((x - mean)^2)), the population (not
// sample) standard deviation. An empty sample yields 0.
func PopulationStdDev(sample stats.Sample) float64 {
	n := len(sample)
	if n == 0 {
		return 0
	}
	mean := ArithmeticMean(sample)
	sqDiff := 0.0
	for _, x := range sample {
		d := x - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff / float64(n))
}

// PooledStdDev combines two or more (sigma, n) summaries into a single
// standard deviation, weighting each group's variance by its degrees of
// freedom (n-1). Fails with InsufficientGroups for fewer than two pairs.
// If every group has n <= 1 the pooled degrees of freedom are zero and the
// result is 0.
func PooledStdDev(pairs []stats.SigmaNPair) (float64, error) {
	if len(pairs) < 2 {
		return 0, core.NewInsufficientGroupsError("pooled standard deviation", len(pairs), 2)
	}

	numerator := 0.0
	denominator := 0.0
	for _, p := range pairs {
		dof := float64(p.N - 1)
		if dof <= 0 {
			continue
		}
		numerator += dof * p.Sigma * p.Sigma
		denominator += dof
	}
	if denominator == 0 {
		return 0, nil
	}
	return math.Sqrt(numerator / denominator), nil
}

// Summarize reduces a raw sample to its (mean, sigma, n) triple.
func Summarize(sample stats.Sample) stats.SummaryTriple {
	return stats.SummaryTriple{
		Mean:   ArithmeticMean(sample),
		StdDev: PopulationStdDev(sample),
		N:      len(sample),
	}
}
