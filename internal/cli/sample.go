package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LyrineYang/dataset-download/internal/config"
	"github.com/LyrineYang/dataset-download/internal/metadata"
	"github.com/LyrineYang/dataset-download/internal/report"
	"github.com/LyrineYang/dataset-download/internal/sampler"
)

var (
	sampleMetadata string
	sampleOutput   string
	sampleNum      int
	sampleSeed     int64
	sampleQBright  float64
	sampleQDark    float64
	sampleProfile  string
	sampleDryRun   bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw a weighted, trajectory-balanced sample from a metadata table",
	Long: `Sample filters the metadata table (minimum duration, per-brightness-bucket
aesthetic quantiles), bins the camera-trajectory features, weights each clip
by rarity and quality, and draws a fixed-size weighted sample without
replacement. The selected rows plus their weights are written as a manifest
CSV for the fetch command.

Examples:
  spatialvid sample --metadata SpatialVID_HQ_metadata.csv --output sampled_manifest.csv
  spatialvid sample -n 5000 --seed 7
  spatialvid sample --weights profile.yaml --dry-run`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleMetadata, "metadata", "SpatialVID_HQ_metadata.csv", "metadata CSV path")
	sampleCmd.Flags().StringVar(&sampleOutput, "output", "sampled_manifest.csv", "output CSV (sampled rows with weights)")
	sampleCmd.Flags().IntVarP(&sampleNum, "num", "n", 1000, "number of samples to draw")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 42, "random seed")
	sampleCmd.Flags().Float64Var(&sampleQBright, "aesthetic-q-bright", 0.05, "bottom quantile to drop in the Bright bucket")
	sampleCmd.Flags().Float64Var(&sampleQDark, "aesthetic-q-dark", 0.02, "bottom quantile to drop in non-Bright buckets")
	sampleCmd.Flags().StringVar(&sampleProfile, "weights", "", "YAML weights profile overriding the default tuning")
	sampleCmd.Flags().BoolVar(&sampleDryRun, "dry-run", false, "only report stats, do not sample or write output")
}

func runSample(cmd *cobra.Command, args []string) error {
	weights := config.DefaultWeights()
	if sampleProfile != "" {
		var err error
		weights, err = config.LoadWeights(sampleProfile)
		if err != nil {
			return err
		}
	}

	table, err := metadata.Load(sampleMetadata)
	if err != nil {
		return err
	}
	logger.Info("metadata loaded", "path", sampleMetadata, "rows", len(table.Rows))

	res, err := sampler.Run(table, weights, sampler.Options{
		Num:     sampleNum,
		Seed:    sampleSeed,
		QBright: sampleQBright,
		QDark:   sampleQDark,
		DryRun:  sampleDryRun,
	}, logger)
	if err != nil {
		if errors.Is(err, sampler.ErrNoCandidates) {
			return fmt.Errorf("no rows left after filtering (metadata: %s)", sampleMetadata)
		}
		return fmt.Errorf("run sampling pipeline: %w", err)
	}

	report.RenderBins(os.Stdout, res.Candidates)
	report.RenderWeightSummary(os.Stdout, res.Candidates, sampleNum)

	if sampleDryRun {
		fmt.Println("Dry-run mode: no sampling performed.")
		return nil
	}

	if err := metadata.WriteManifest(sampleOutput, table.Columns, res.Selected); err != nil {
		return err
	}
	fmt.Printf("Saved sampled manifest to %s (rows: %d)\n", sampleOutput, len(res.Selected))
	return nil
}
