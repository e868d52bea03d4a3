package stats

// Sample is an ordered sequence of real observations. Order is irrelevant to
// every statistic in this package and duplicates are allowed. A Sample may be
// empty; every operation over samples documents its empty-input behavior.
//
// Observations are assumed finite. NaN and ±Inf values are not rejected
// anywhere in the engine: they propagate through the arithmetic and poison
// the result, exactly as they would in the underlying float64 operations.
type Sample []float64

// GroupedSample is an ordered sequence of samples, one entry per group. It is
// the input shape for one-way ANOVA and for per-group mean computation.
type GroupedSample []Sample

// SummaryTriple is a pre-aggregated sample: its mean, population standard
// deviation, and size. It substitutes for raw observations on one side of a
// two-sample t-test.
type SummaryTriple struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // population standard deviation, >= 0
	N      int     `json:"n"`       // sample size, >= 0
}

// SigmaNPair is the input unit to pooled standard deviation: one group's
// population standard deviation and size. Pairs with N == 1 contribute zero
// to both the numerator and denominator of the pooled variance.
type SigmaNPair struct {
	Sigma float64 `json:"sigma"` // population standard deviation, >= 0
	N     int     `json:"n"`     // group size, >= 0
}

// SubjectConditionMatrix is a dense rectangular matrix for repeated-measures
// ANOVA: rows are subjects, columns are conditions. Every row must have the
// same length; ragged input is invalid. Missing cells must be filled by the
// caller (e.g. with 0) before the matrix reaches the engine.
type SubjectConditionMatrix []Sample

// Rows returns the number of subjects.
func (m SubjectConditionMatrix) Rows() int {
	return len(m)
}

// Cols returns the number of conditions, 0 for an empty matrix.
func (m SubjectConditionMatrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// IsRectangular reports whether every row has the same length.
func (m SubjectConditionMatrix) IsRectangular() bool {
	if len(m) == 0 {
		return true
	}
	for _, row := range m[1:] {
		if len(row) != len(m[0]) {
			return false
		}
	}
	return true
}

// TestType identifies which hypothesis test produced a result.
type TestType string

const (
	TestTTest   TestType = "ttest"    // independent two-sample Student's t-test
	TestANOVA   TestType = "anova"    // one-way analysis of variance
	TestRMANOVA TestType = "rm_anova" // one-way repeated-measures ANOVA
)

// TestResult is the sole output shape of a hypothesis test: the test
// statistic (t or F) and its p-value in [0, 1].
type TestResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}
