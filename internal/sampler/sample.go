package sampler

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/LyrineYang/dataset-download/internal/metadata"
)

// ErrNoCandidates indicates every row was filtered out before the draw.
var ErrNoCandidates = errors.New("no candidate rows left after filtering")

// Draw selects min(n, len(rows)) distinct rows without replacement, with
// selection probability proportional to each clip's weight. It uses
// exponential-key selection (Efraimidis-Spirakis): every row gets the key
// u^(1/w) for one uniform draw u, and the n largest keys win. This is a
// single joint draw, not sequential reweighting. Deterministic for a fixed
// seed.
func Draw(rows []*metadata.Clip, n int, seed int64) ([]*metadata.Clip, error) {
	if len(rows) == 0 {
		return nil, ErrNoCandidates
	}
	if n >= len(rows) {
		return append([]*metadata.Clip{}, rows...), nil
	}

	rng := rand.New(rand.NewSource(seed))

	type keyed struct {
		key  float64
		clip *metadata.Clip
	}
	keys := make([]keyed, len(rows))
	for i, c := range rows {
		// One rng draw per row in row order keeps the draw reproducible.
		u := rng.Float64()
		w := c.Weight
		if w <= 0 || math.IsNaN(w) {
			keys[i] = keyed{key: math.Inf(-1), clip: c}
			continue
		}
		keys[i] = keyed{key: math.Pow(u, 1.0/w), clip: c}
	}

	sort.SliceStable(keys, func(a, b int) bool { return keys[a].key > keys[b].key })

	selected := make([]*metadata.Clip, n)
	for i := range selected {
		selected[i] = keys[i].clip
	}
	return selected, nil
}
