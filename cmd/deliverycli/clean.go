package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"deliverydash/internal/dataprocessing"
	"deliverydash/internal/exporter"
)

var cleanOutput string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Repair the raw CSV and write the cleaned dataset file",
	Long: `clean reads the raw export, canonicalizes labels, drops records without
a delivery time, fills the remaining gaps with medians and modes, and
writes the result as the pre-cleaned file the dashboard prefers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataConfig()
		if err != nil {
			return err
		}

		table, err := dataprocessing.ReadTable(data.RawPath())
		if err != nil {
			return fmt.Errorf("read raw file: %w", err)
		}
		if err := dataprocessing.ValidateColumns(table.Headers); err != nil {
			return err
		}

		records := dataprocessing.Impute(dataprocessing.Normalize(dataprocessing.ParseRecords(table)))

		out := cleanOutput
		if out == "" {
			out = data.CleanPath()
		}
		if err := exporter.WriteCSVFile(out, records); err != nil {
			return fmt.Errorf("write cleaned file: %w", err)
		}

		logger.Info("cleaned dataset written",
			slog.String("source", data.RawPath()),
			slog.String("output", out),
			slog.Int("records", len(records)))
		fmt.Printf("Cleaned %d records from %s into %s\n", len(records), data.RawPath(), out)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output path (default is the configured clean file)")
	rootCmd.AddCommand(cleanCmd)
}
