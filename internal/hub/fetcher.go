package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

// Progress is a snapshot of a running fetch, suitable for a progress UI.
type Progress struct {
	File       string
	Done       int64 // bytes of the current file
	Total      int64 // -1 when unknown
	FilesDone  int
	FilesTotal int
}

// Stats summarizes a completed fetch run.
type Stats struct {
	TarballsFetched  int
	TarballsMissing  int
	MembersExtracted int
}

// Fetcher downloads the group tarballs a manifest requires and extracts the
// selected members. Tarballs missing on the hub are logged and skipped;
// exact reproduction of the archive layout beyond path/prefix matching is
// not attempted.
type Fetcher struct {
	client     *Client
	repoID     string
	localDir   string
	logger     *slog.Logger
	onProgress func(Progress)
}

// NewFetcher creates a fetcher. onProgress may be nil, in which case only
// log lines report progress.
func NewFetcher(client *Client, repoID, localDir string, logger *slog.Logger, onProgress func(Progress)) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		client:     client,
		repoID:     repoID,
		localDir:   localDir,
		logger:     logger,
		onProgress: onProgress,
	}
}

// Run fetches and extracts every group sequentially. The context cancels the
// in-flight download; already-extracted groups stay on disk.
func (f *Fetcher) Run(ctx context.Context, groups []*Group) (Stats, error) {
	var stats Stats
	total := 2 * len(groups)
	done := 0

	for _, g := range groups {
		for _, kind := range []string{"videos", "annotations"} {
			remote := fmt.Sprintf("%s/%s.tar.gz", kind, g.ID)
			local := filepath.Join(f.localDir, kind, g.ID+".tar.gz")

			if err := f.fetchOne(ctx, remote, local, done, total); err != nil {
				if errors.Is(err, ErrNotFound) {
					f.logger.Warn("tarball not on hub, skipping", "path", remote)
					stats.TarballsMissing++
					done++
					continue
				}
				return stats, err
			}
			stats.TarballsFetched++

			n, err := ExtractSelected(local, g.Files, g.Prefixes, f.localDir)
			if err != nil {
				return stats, err
			}
			if n == 0 {
				f.logger.Warn("no matching members in tarball", "path", local)
			} else {
				f.logger.Info("extracted members", "tarball", remote, "members", n)
			}
			stats.MembersExtracted += n
			done++
		}
	}

	return stats, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, remote, local string, done, total int) error {
	f.logger.Info("fetching tarball", "path", remote)

	var progress func(int64, int64)
	if f.onProgress != nil {
		f.onProgress(Progress{File: remote, FilesDone: done, FilesTotal: total})
		progress = func(bytesDone, bytesTotal int64) {
			f.onProgress(Progress{
				File:       remote,
				Done:       bytesDone,
				Total:      bytesTotal,
				FilesDone:  done,
				FilesTotal: total,
			})
		}
	}

	return f.client.DownloadFile(ctx, f.repoID, remote, local, progress)
}
