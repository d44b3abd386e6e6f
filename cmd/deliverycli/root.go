package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"deliverydash/internal/config"
)

var (
	flagDataDir   string
	flagCleanFile string
	flagRawFile   string
	flagVerbose   bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "deliverycli",
	Short: "Inspect and export the food delivery dataset from the command line",
	Long: `deliverycli works on the same dataset as the dashboard server: it can
repair a raw export into the cleaned file, print summary statistics, and
export filtered views without running the HTTP server.`,
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(initLogger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the dataset files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCleanFile, "clean-file", "", "pre-cleaned CSV filename (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagRawFile, "raw-file", "", "raw CSV filename (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func initLogger() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// dataConfig resolves the dataset location from config plus flag overrides.
func dataConfig() (config.DataConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.DataConfig{}, err
	}
	data := cfg.Data
	if flagDataDir != "" {
		data.Dir = flagDataDir
	}
	if flagCleanFile != "" {
		data.CleanFile = flagCleanFile
	}
	if flagRawFile != "" {
		data.RawFile = flagRawFile
	}
	return data, nil
}
