package analysis

import (
	"math"

	"goinfer/domain/core"
	"goinfer/domain/stats"
)

// TwoSampleTTest performs an independent two-sample Student's t-test under
// the equal-variance assumption. Each side is either raw observations or a
// pre-aggregated SummaryTriple; raw sides are summarized first, so mixing a
// summary with the raw sample it was computed from reproduces the all-raw
// statistic exactly.
//
// Fails with InvalidParameter when either side has n < 1, and with
// DegenerateResult when the standard error collapses to zero or is
// non-finite. That covers identical constant samples and the two-singleton
// case, where nothing pools and the error surfaces before the zero combined
// degrees of freedom n1+n2-2 could.
func TwoSampleTTest(side1, side2 stats.TestSide) (stats.TestResult, error) {
	s1 := summarizeSide(side1)
	s2 := summarizeSide(side2)

	if s1.N < 1 || s2.N < 1 {
		return stats.TestResult{}, core.NewInvalidParameterError("sample size", "must be >= 1 on both sides")
	}

	pooled, err := PooledStdDev([]stats.SigmaNPair{
		{Sigma: s1.StdDev, N: s1.N},
		{Sigma: s2.StdDev, N: s2.N},
	})
	if err != nil {
		return stats.TestResult{}, err
	}

	standardError := pooled * math.Sqrt(1/float64(s1.N)+1/float64(s2.N))
	if standardError == 0 || math.IsNaN(standardError) || math.IsInf(standardError, 0) {
		return stats.TestResult{}, core.NewDegenerateResultError("t-test", "standard error is zero or non-finite")
	}

	t := (s1.Mean - s2.Mean) / standardError
	df := float64(s1.N + s2.N - 2)

	cdf, err := StudentTCDF(math.Abs(t), df)
	if err != nil {
		return stats.TestResult{}, err
	}

	return stats.TestResult{
		Statistic: t,
		PValue:    2 * (1 - cdf),
	}, nil
}

func summarizeSide(side stats.TestSide) stats.SummaryTriple {
	if side.IsRaw() {
		return Summarize(side.Raw())
	}
	return side.Summary()
}
