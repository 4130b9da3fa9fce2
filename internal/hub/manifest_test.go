package hub

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.csv")
	content := "id,video path,annotation path,weight\n"
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGroupsCollectsFilesAndPrefixes(t *testing.T) {
	path := writeManifest(t,
		"a,videos/group_0001/a.mp4,annotations/group_0001/a,1.0",
		"b,videos/group_0001/b.mp4,annotations/group_0001/b/,1.1",
		"c,videos/group_0002/c.mp4,annotations/group_0002/c,0.9",
	)

	groups, err := LoadGroups(path, ManifestOptions{})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Sorted by id.
	assert.Equal(t, "group_0001", groups[0].ID)
	assert.Equal(t, "group_0002", groups[1].ID)

	g1 := groups[0]
	assert.Contains(t, g1.Files, "videos/group_0001/a.mp4")
	assert.Contains(t, g1.Files, "videos/group_0001/b.mp4")
	assert.Contains(t, g1.Prefixes, "annotations/group_0001/a/")
	assert.Contains(t, g1.Prefixes, "annotations/group_0001/b/")
}

func TestLoadGroupsSkipsMalformedPaths(t *testing.T) {
	path := writeManifest(t,
		"a,videos/group_0001/a.mp4,annotations/group_0001/a,1.0",
		"b,not-grouped.mp4,annotations/x,1.0",
		"c,videos/other_0002/c.mp4,annotations/other_0002/c,1.0",
	)

	groups, err := LoadGroups(path, ManifestOptions{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "group_0001", groups[0].ID)
}

func TestLoadGroupsNoGroupsFails(t *testing.T) {
	path := writeManifest(t,
		"a,plain.mp4,annotations/a,1.0",
	)

	_, err := LoadGroups(path, ManifestOptions{})
	assert.True(t, errors.Is(err, ErrNoGroups))
}

func TestLoadGroupsMissingColumnsFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,weight\na,1.0\n"), 0644))

	_, err := LoadGroups(path, ManifestOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "video path")
}

func TestLoadGroupsHeadAppliesAfterShuffle(t *testing.T) {
	path := writeManifest(t,
		"a,videos/group_0001/a.mp4,annotations/group_0001/a,1.0",
		"b,videos/group_0002/b.mp4,annotations/group_0002/b,1.0",
		"c,videos/group_0003/c.mp4,annotations/group_0003/c,1.0",
		"d,videos/group_0004/d.mp4,annotations/group_0004/d,1.0",
	)

	groups, err := LoadGroups(path, ManifestOptions{Num: 2})
	require.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, "group_0001", groups[0].ID)
	assert.Equal(t, "group_0002", groups[1].ID)

	// Shuffle is deterministic for a fixed seed.
	s1, err := LoadGroups(path, ManifestOptions{Num: 2, Shuffle: true, Seed: 42})
	require.NoError(t, err)
	s2, err := LoadGroups(path, ManifestOptions{Num: 2, Shuffle: true, Seed: 42})
	require.NoError(t, err)
	require.Len(t, s2, len(s1))
	for i := range s1 {
		assert.Equal(t, s1[i].ID, s2[i].ID)
	}
}
