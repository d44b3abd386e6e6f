package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"deliverydash/internal/dataprocessing"
	"deliverydash/internal/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print delivery time statistics for the full dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataConfig()
		if err != nil {
			return err
		}

		ds, err := dataprocessing.LoadDataset(cmd.Context(), data, logger)
		if err != nil {
			return err
		}

		s := stats.Summarize(ds.Records)

		fmt.Printf("Source:      %s\n", ds.Provenance)
		fmt.Printf("Records:     %d\n", s.Count)
		fmt.Printf("Mean time:   %s min\n", formatStat(s.Mean))
		fmt.Printf("Median time: %s min\n", formatStat(s.Median))
		fmt.Printf("90th pct:    %s min\n", formatStat(s.P90))

		fmt.Println("\nCorrelation:")
		fmt.Printf("%-24s", "")
		for _, f := range stats.CorrelationFields {
			fmt.Printf("%24s", f)
		}
		fmt.Println()
		for i, f := range stats.CorrelationFields {
			fmt.Printf("%-24s", f)
			for j := range stats.CorrelationFields {
				fmt.Printf("%24s", formatStat(s.Correlation[i][j]))
			}
			fmt.Println()
		}
		return nil
	},
}

// formatStat renders a statistic, using n/a for undefined values.
func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
