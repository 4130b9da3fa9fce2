// Package hub downloads SpatialVID-HQ group tarballs from the Hugging Face
// hub and extracts only the clips and annotations a sampled manifest needs.
package hub

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
)

// ErrNoGroups indicates no group ids could be parsed from the manifest.
var ErrNoGroups = errors.New("no group ids parsed from manifest")

// Group collects what one group tarball pair must yield: exact video member
// names and annotation directory prefixes.
type Group struct {
	ID       string
	Files    map[string]struct{}
	Prefixes []string
}

// ManifestOptions controls how much of the manifest is fetched.
type ManifestOptions struct {
	// Num limits the manifest to its first Num rows, after the optional
	// shuffle. Zero or negative means all rows.
	Num     int
	Shuffle bool
	Seed    int64
}

// LoadGroups reads a sampled manifest CSV and builds the per-group download
// requirements. Rows whose video path does not contain a group_* segment are
// skipped. Groups come back sorted by id so a fetch run is deterministic.
func LoadGroups(path string, opts ManifestOptions) ([]*Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read manifest header: %w", err)
	}

	videoIdx, annIdx := -1, -1
	for i, col := range header {
		switch col {
		case "video path":
			videoIdx = i
		case "annotation path":
			annIdx = i
		}
	}
	if videoIdx < 0 || annIdx < 0 {
		return nil, fmt.Errorf("manifest %s: missing 'video path' or 'annotation path' column", path)
	}

	type pathPair struct{ video, ann string }
	var pairs []pathPair
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest row: %w", err)
		}
		if len(record) <= videoIdx || len(record) <= annIdx {
			continue
		}
		pairs = append(pairs, pathPair{
			video: strings.TrimSpace(record[videoIdx]),
			ann:   strings.TrimRight(strings.TrimSpace(record[annIdx]), "/"),
		})
	}

	if opts.Shuffle {
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	}
	if opts.Num > 0 && opts.Num < len(pairs) {
		pairs = pairs[:opts.Num]
	}

	byID := make(map[string]*Group)
	for _, p := range pairs {
		gid, ok := groupID(p.video)
		if !ok {
			continue
		}
		g := byID[gid]
		if g == nil {
			g = &Group{ID: gid, Files: make(map[string]struct{})}
			byID[gid] = g
		}
		if p.video != "" {
			g.Files[p.video] = struct{}{}
		}
		if p.ann != "" {
			g.Prefixes = append(g.Prefixes, p.ann+"/")
		}
	}

	if len(byID) == 0 {
		return nil, fmt.Errorf("%w: check paths in %s", ErrNoGroups, path)
	}

	groups := make([]*Group, 0, len(byID))
	for _, g := range byID {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].ID < groups[b].ID })
	return groups, nil
}

// groupID extracts the group_* segment from the second position of a video
// path like "videos/group_0012/clip.mp4".
func groupID(videoPath string) (string, bool) {
	parts := strings.Split(videoPath, "/")
	if len(parts) < 2 || !strings.HasPrefix(parts[1], "group_") {
		return "", false
	}
	return parts[1], true
}
