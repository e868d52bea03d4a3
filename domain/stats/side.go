package stats

// TestSide is one side of a two-sample t-test: either raw observations or an
// already-aggregated SummaryTriple. The two shapes are distinguished at
// construction time rather than sniffed at runtime, so a misuse is a
// compile-time error instead of a silent misinterpretation.
type TestSide struct {
	raw     Sample
	summary SummaryTriple
	isRaw   bool
}

// RawSide builds a test side from raw observations.
func RawSide(s Sample) TestSide {
	return TestSide{raw: s, isRaw: true}
}

// SummarySide builds a test side from a pre-aggregated (mean, sigma, n) triple.
func SummarySide(t SummaryTriple) TestSide {
	return TestSide{summary: t}
}

// IsRaw reports whether the side carries raw observations.
func (s TestSide) IsRaw() bool {
	return s.isRaw
}

// Raw returns the raw observations. Only meaningful when IsRaw is true.
func (s TestSide) Raw() Sample {
	return s.raw
}

// Summary returns the pre-aggregated triple. Only meaningful when IsRaw is false.
func (s TestSide) Summary() SummaryTriple {
	return s.summary
}
