package app

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats a sweep result as a markdown report. The UI layer
// renders this to HTML; the CLI prints it as-is.
func RenderMarkdown(result *SweepResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sweep report: %s\n\n", result.DatasetKey)

	b.WriteString("## Column profiles\n\n")
	b.WriteString("| Column | N | Mean | Harmonic mean | Std dev | Min | Median | Max |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, p := range result.Profiles {
		fmt.Fprintf(&b, "| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			p.Name, p.SampleSize, p.ArithmeticMean, p.HarmonicMean, p.StdDev, p.Min, p.Median, p.Max)
	}
	b.WriteString("\n")

	if len(result.TTests) > 0 {
		b.WriteString("## Pairwise t-tests\n\n")
		b.WriteString("| X | Y | t | p |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, tt := range result.TTests {
			fmt.Fprintf(&b, "| %s | %s | %.4f | %.6f |\n", tt.ColumnX, tt.ColumnY, tt.Result.Statistic, tt.Result.PValue)
		}
		b.WriteString("\n")
	}

	if result.ANOVA != nil {
		b.WriteString("## One-way ANOVA\n\n")
		fmt.Fprintf(&b, "F = %.4f, p = %.6f\n\n", result.ANOVA.Statistic, result.ANOVA.PValue)
	}

	if result.RMANOVA != nil {
		b.WriteString("## Repeated-measures ANOVA\n\n")
		fmt.Fprintf(&b, "F = %.4f, p = %.6f\n\n", result.RMANOVA.Statistic, result.RMANOVA.PValue)
	}

	if len(result.Skipped) > 0 {
		b.WriteString("## Skipped\n\n")
		for _, reason := range result.Skipped {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
	}

	return b.String()
}
