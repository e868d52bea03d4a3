package analysis

import (
	"goinfer/domain/core"
	"goinfer/domain/stats"
)

// OneWayANOVA decomposes the total variability of three or more groups into
// between-group and within-group sums of squares and tests whether the group
// means differ.
//
// Fails with InsufficientGroups for fewer than three groups, with
// InvalidParameter when the within-group degrees of freedom N-m are not
// positive, and with DegenerateResult when the within-group mean square is
// zero (every group constant).
func OneWayANOVA(groups stats.GroupedSample) (stats.TestResult, error) {
	m := len(groups)
	if m < 3 {
		return stats.TestResult{}, core.NewInsufficientGroupsError("one-way ANOVA", m, 3)
	}

	var all stats.Sample
	for _, g := range groups {
		all = append(all, g...)
	}
	totalN := len(all)

	dfBetween := float64(m - 1)
	dfWithin := float64(totalN - m)
	if dfWithin <= 0 {
		return stats.TestResult{}, core.NewInvalidParameterError("within-group degrees of freedom", "must be > 0")
	}

	grandMean := ArithmeticMean(all)

	ssTotal := 0.0
	for _, x := range all {
		d := x - grandMean
		ssTotal += d * d
	}

	ssBetween := 0.0
	for _, g := range groups {
		d := ArithmeticMean(g) - grandMean
		ssBetween += float64(len(g)) * d * d
	}

	// Non-negative by construction; rounding can push the difference a hair
	// below zero.
	ssWithin := ssTotal - ssBetween
	if ssWithin < 0 {
		ssWithin = 0
	}

	// No between-group effect at all: F is 0 regardless of the denominator.
	if ssBetween == 0 {
		return stats.TestResult{Statistic: 0, PValue: 1}, nil
	}

	msWithin := ssWithin / dfWithin
	if msWithin == 0 {
		return stats.TestResult{}, core.NewDegenerateResultError("one-way ANOVA", "within-group mean square is zero")
	}

	f := (ssBetween / dfBetween) / msWithin
	cdf, err := FCDF(f, dfBetween, dfWithin)
	if err != nil {
		return stats.TestResult{}, err
	}

	return stats.TestResult{
		Statistic: f,
		PValue:    1 - cdf,
	}, nil
}
