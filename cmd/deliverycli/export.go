package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"deliverydash/internal/dataprocessing"
	"deliverydash/internal/exporter"
	"deliverydash/internal/query"
)

var (
	expOutput     string
	expFormat     string
	expWeather    []string
	expTraffic    []string
	expTimeOfDay  []string
	expVehicle    []string
	expDistance   []float64
	expExperience []float64
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a filtered view of the dataset as CSV or XLSX",
	Long: `export applies the same filter semantics as the dashboard: each
categorical flag keeps only the listed values, each range flag keeps
values inside the inclusive bounds, and unset flags keep everything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataConfig()
		if err != nil {
			return err
		}

		ds, err := dataprocessing.LoadDataset(cmd.Context(), data, logger)
		if err != nil {
			return err
		}

		spec := query.MatchAll(ds)
		if cmd.Flags().Changed("weather") {
			spec.Weather = expWeather
		}
		if cmd.Flags().Changed("traffic") {
			spec.Traffic = expTraffic
		}
		if cmd.Flags().Changed("time-of-day") {
			spec.TimeOfDay = expTimeOfDay
		}
		if cmd.Flags().Changed("vehicle") {
			spec.Vehicle = expVehicle
		}
		if cmd.Flags().Changed("distance") {
			r, err := parseRange(expDistance, "distance")
			if err != nil {
				return err
			}
			spec.Distance = r
		}
		if cmd.Flags().Changed("experience") {
			r, err := parseRange(expExperience, "experience")
			if err != nil {
				return err
			}
			spec.Experience = r
		}

		view := query.Filter(ds, spec)

		out := expOutput
		if out == "" {
			out = data.ExportPath("filtered_food_delivery_times." + expFormat)
		}

		switch strings.ToLower(expFormat) {
		case "csv":
			err = exporter.WriteCSVFile(out, view)
		case "xlsx":
			err = exporter.WriteXLSXFile(out, view)
		default:
			return fmt.Errorf("unsupported --format: %s (use csv|xlsx)", expFormat)
		}
		if err != nil {
			return fmt.Errorf("write export: %w", err)
		}

		logger.Info("export written",
			slog.String("output", out),
			slog.Int("records", len(view)))
		fmt.Printf("Exported %d of %d records to %s\n", len(view), ds.Len(), out)
		return nil
	},
}

func parseRange(bounds []float64, name string) (query.Range, error) {
	if len(bounds) != 2 {
		return query.Range{}, fmt.Errorf("--%s needs exactly two values: lo,hi", name)
	}
	if bounds[0] > bounds[1] {
		return query.Range{}, fmt.Errorf("--%s bounds out of order: %v > %v", name, bounds[0], bounds[1])
	}
	return query.Range{Lo: bounds[0], Hi: bounds[1]}, nil
}

func init() {
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path (default is under the configured export dir)")
	exportCmd.Flags().StringVarP(&expFormat, "format", "f", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringSliceVar(&expWeather, "weather", nil, "weather values to keep")
	exportCmd.Flags().StringSliceVar(&expTraffic, "traffic", nil, "traffic levels to keep")
	exportCmd.Flags().StringSliceVar(&expTimeOfDay, "time-of-day", nil, "times of day to keep")
	exportCmd.Flags().StringSliceVar(&expVehicle, "vehicle", nil, "vehicle types to keep")
	exportCmd.Flags().Float64SliceVar(&expDistance, "distance", nil, "inclusive distance range: lo,hi")
	exportCmd.Flags().Float64SliceVar(&expExperience, "experience", nil, "inclusive experience range: lo,hi")
	rootCmd.AddCommand(exportCmd)
}
