// Package cli provides the command-line interface for spatialvid.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/LyrineYang/dataset-download/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and logger, initialized before any subcommand runs
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "spatialvid",
	Short: "Curate and fetch balanced samples of the SpatialVID-HQ dataset",
	Long: `Spatialvid draws a balanced sample of video clips from the SpatialVID-HQ
metadata table and downloads the sampled clips from the Hugging Face hub.

The sampler favors under-represented camera-trajectory patterns and rare
semantic categories while penalizing low-quality signals; the fetcher pulls
only the group tarballs a sampled manifest needs and extracts just the
selected clips and annotation folders.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(fetchCmd)
}
