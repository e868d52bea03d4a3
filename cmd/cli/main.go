package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goinfer/adapters/ingest"
	"goinfer/app"
	"goinfer/domain/core"
	"goinfer/domain/stats"
	"goinfer/internal"
	"goinfer/internal/analysis"
	"goinfer/internal/profiling"
	"goinfer/internal/testkit"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "goinfer",
		Short: "Inferential statistics over CSV and Excel tables",
	}

	rootCmd.AddCommand(
		newDescribeCmd(),
		newTTestCmd(),
		newANOVACmd(),
		newRMANOVACmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadColumns(file string, columns []string) ([]string, stats.GroupedSample, error) {
	table, err := ingest.NewDataReader(file).ReadData()
	if err != nil {
		return nil, nil, err
	}
	if len(columns) == 0 {
		columns = table.NumericColumnNames()
	}
	groups, err := ingest.GroupColumns(table, columns)
	if err != nil {
		return nil, nil, err
	}
	return columns, groups, nil
}

// loadDailyColumns buckets each column into daily totals when a timestamp
// column is given, mirroring how hourly activity exports are summarized.
func loadDailyColumns(file, tsColumn, tsLayout string, columns []string) ([]string, stats.GroupedSample, error) {
	columns, groups, err := loadColumns(file, columns)
	if err != nil {
		return nil, nil, err
	}
	if tsColumn == "" {
		return columns, groups, nil
	}

	table, err := ingest.NewDataReader(file).ReadData()
	if err != nil {
		return nil, nil, err
	}
	raw, err := table.StringColumn(tsColumn)
	if err != nil {
		return nil, nil, err
	}
	times, err := ingest.ParseTimestamps(raw, tsLayout)
	if err != nil {
		return nil, nil, err
	}

	for i, g := range groups {
		if len(g) != len(times) {
			return nil, nil, core.NewInvalidParameterError("column", fmt.Sprintf("%q has non-numeric rows, cannot align with timestamps", columns[i]))
		}
		daily, err := ingest.DailyTotals(times, g)
		if err != nil {
			return nil, nil, err
		}
		groups[i] = daily
	}
	return columns, groups, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newDescribeCmd() *cobra.Command {
	var tsColumn, tsLayout string

	cmd := &cobra.Command{
		Use:   "describe [file] [columns...]",
		Short: "Profile numeric columns of a CSV/XLSX table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, groups, err := loadDailyColumns(args[0], tsColumn, tsLayout, args[1:])
			if err != nil {
				return err
			}
			return printJSON(profiling.ProfileGroups(names, groups))
		},
	}

	cmd.Flags().StringVar(&tsColumn, "timestamp-column", "", "Bucket rows into daily totals by this timestamp column")
	cmd.Flags().StringVar(&tsLayout, "timestamp-layout", "", "Go time layout for the timestamp column")
	return cmd
}

func newTTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ttest [file] [column-x] [column-y]",
		Short: "Independent two-sample t-test between two columns",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, groups, err := loadColumns(args[0], args[1:])
			if err != nil {
				return err
			}
			result, err := analysis.TwoSampleTTest(stats.RawSide(groups[0]), stats.RawSide(groups[1]))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	return cmd
}

func newANOVACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anova [file] [columns...]",
		Short: "One-way ANOVA across three or more columns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, groups, err := loadColumns(args[0], args[1:])
			if err != nil {
				return err
			}
			result, err := analysis.OneWayANOVA(groups)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	return cmd
}

func newRMANOVACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rmanova [file] [condition-columns...]",
		Short: "Repeated-measures ANOVA: rows are subjects, columns conditions",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ingest.NewDataReader(args[0]).ReadData()
			if err != nil {
				return err
			}
			matrix, err := ingest.MatrixFromColumns(table, args[1:])
			if err != nil {
				return err
			}
			result, err := analysis.RepeatedMeasuresANOVA(matrix)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	return cmd
}

func newSweepCmd() *cobra.Command {
	var tsColumn, tsLayout string
	var maxConcurrent int64
	var markdownOut bool

	cmd := &cobra.Command{
		Use:   "sweep [file]",
		Short: "Profile every numeric column and run the full test battery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, groups, err := loadDailyColumns(args[0], tsColumn, tsLayout, nil)
			if err != nil {
				return err
			}

			table, err := ingest.NewDataReader(args[0]).ReadData()
			if err != nil {
				return err
			}
			matrix, err := ingest.MatrixFromColumns(table, names)
			if err != nil {
				return err
			}

			logger := internal.NewDefaultLogger()
			svc := app.NewSweepService(testkit.NewInMemoryRunLedger(), logger, maxConcurrent)
			result, err := svc.Sweep(context.Background(), core.DatasetKey(args[0]), names, groups, matrix)
			if err != nil {
				return err
			}

			if markdownOut {
				fmt.Println(app.RenderMarkdown(result))
				return nil
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&tsColumn, "timestamp-column", "", "Bucket rows into daily totals by this timestamp column")
	cmd.Flags().StringVar(&tsLayout, "timestamp-layout", "", "Go time layout for the timestamp column")
	cmd.Flags().Int64Var(&maxConcurrent, "max-concurrent", 4, "Maximum concurrent pairwise tests")
	cmd.Flags().BoolVar(&markdownOut, "markdown", false, "Print a markdown report instead of JSON")
	return cmd
}
