package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/LyrineYang/dataset-download/internal/hub"
)

var (
	fetchManifest   string
	fetchNum        int
	fetchShuffle    bool
	fetchSeed       int64
	fetchRepoID     string
	fetchLocalDir   string
	fetchNoProgress bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download sampled clips and annotations from the Hugging Face hub",
	Long: `Fetch reads a sampled manifest, resolves which group tarballs it needs,
downloads them from the dataset repo, and extracts only the selected clips
and annotation folders.

Examples:
  spatialvid fetch --manifest sampled_manifest.csv --local-dir ./spatialvid_data
  spatialvid fetch -n 500 --shuffle
  spatialvid fetch --repo-id SpatialVID/SpatialVID-HQ --no-progress`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchManifest, "manifest", "sampled_manifest.csv", "manifest CSV with 'video path' and 'annotation path' columns")
	fetchCmd.Flags().IntVarP(&fetchNum, "num", "n", 30000, "number of manifest rows to download (after optional shuffle)")
	fetchCmd.Flags().BoolVar(&fetchShuffle, "shuffle", false, "shuffle the manifest before taking the first N rows")
	fetchCmd.Flags().Int64Var(&fetchSeed, "seed", 42, "shuffle seed")
	fetchCmd.Flags().StringVar(&fetchRepoID, "repo-id", "SpatialVID/SpatialVID-HQ", "Hugging Face dataset repo id")
	fetchCmd.Flags().StringVar(&fetchLocalDir, "local-dir", "spatialvid_data", "local directory for downloads and extractions")
	fetchCmd.Flags().BoolVar(&fetchNoProgress, "no-progress", false, "disable the interactive progress display")
}

func runFetch(cmd *cobra.Command, args []string) error {
	groups, err := hub.LoadGroups(fetchManifest, hub.ManifestOptions{
		Num:     fetchNum,
		Shuffle: fetchShuffle,
		Seed:    fetchSeed,
	})
	if err != nil {
		return err
	}
	logger.Info("manifest resolved", "manifest", fetchManifest, "groups", len(groups))

	if err := os.MkdirAll(fetchLocalDir, 0755); err != nil {
		return fmt.Errorf("create local directory: %w", err)
	}

	client := hub.NewClient(cfg.HubEndpoint, cfg.HubToken)

	var stats hub.Stats
	if fetchNoProgress || !term.IsTerminal(int(os.Stdout.Fd())) {
		fetcher := hub.NewFetcher(client, fetchRepoID, fetchLocalDir, logger, nil)
		stats, err = fetcher.Run(cmd.Context(), groups)
	} else {
		stats, err = RunFetchProgress(cmd.Context(), client, fetchRepoID, fetchLocalDir, logger, groups)
	}
	if err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}

	fmt.Printf("Fetched %d tarballs (%d missing), extracted %d members into %s\n",
		stats.TarballsFetched, stats.TarballsMissing, stats.MembersExtracted, fetchLocalDir)
	return nil
}
