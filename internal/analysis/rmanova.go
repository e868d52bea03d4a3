package analysis

import (
	"goinfer/domain/core"
	"goinfer/domain/stats"
)

// RepeatedMeasuresANOVA tests whether condition means differ across a dense
// subjects-by-conditions matrix, partitioning total variability into subject,
// condition, and error sums of squares. The matrix must be rectangular with
// at least two subjects and two conditions; missing cells must already have
// been filled by the caller, no imputation happens here.
//
// Fails with InvalidParameter for too-small or ragged input and with
// DegenerateResult when the error mean square is zero.
func RepeatedMeasuresANOVA(matrix stats.SubjectConditionMatrix) (stats.TestResult, error) {
	rows := matrix.Rows()
	cols := matrix.Cols()
	if rows < 2 || cols < 2 {
		return stats.TestResult{}, core.NewInvalidParameterError("matrix", "requires at least 2 subjects and 2 conditions")
	}
	if !matrix.IsRectangular() {
		return stats.TestResult{}, core.NewInvalidParameterError("matrix", "must be rectangular")
	}

	var all stats.Sample
	for _, row := range matrix {
		all = append(all, row...)
	}
	grandMean := ArithmeticMean(all)

	ssSubjects := 0.0
	for _, row := range matrix {
		d := ArithmeticMean(row) - grandMean
		ssSubjects += float64(cols) * d * d
	}

	ssConditions := 0.0
	for c := 0; c < cols; c++ {
		column := make(stats.Sample, rows)
		for r := 0; r < rows; r++ {
			column[r] = matrix[r][c]
		}
		d := ArithmeticMean(column) - grandMean
		ssConditions += float64(rows) * d * d
	}

	ssTotal := 0.0
	for _, x := range all {
		d := x - grandMean
		ssTotal += d * d
	}

	// Non-negative by construction; clamp rounding residue.
	ssError := ssTotal - ssConditions - ssSubjects
	if ssError < 0 {
		ssError = 0
	}

	dfConditions := float64(cols - 1)
	dfError := float64((cols - 1) * (rows - 1))

	// No condition effect at all: F is 0 regardless of the denominator.
	if ssConditions == 0 {
		return stats.TestResult{Statistic: 0, PValue: 1}, nil
	}

	msError := ssError / dfError
	if msError == 0 {
		return stats.TestResult{}, core.NewDegenerateResultError("repeated-measures ANOVA", "error mean square is zero")
	}

	f := (ssConditions / dfConditions) / msError
	cdf, err := FCDF(f, dfConditions, dfError)
	if err != nil {
		return stats.TestResult{}, err
	}

	return stats.TestResult{
		Statistic: f,
		PValue:    1 - cdf,
	}, nil
}
