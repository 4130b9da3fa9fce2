package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LyrineYang/dataset-download/internal/metadata"
)

func TestHardFilter(t *testing.T) {
	rows := []*metadata.Clip{
		{ID: "short", Duration: 2.9},
		{ID: "edge", Duration: 3.0},
		{ID: "long", Duration: 12.5},
	}

	kept := HardFilter(rows, 3.0)

	require.Len(t, kept, 2)
	assert.Equal(t, "edge", kept[0].ID)
	assert.Equal(t, "long", kept[1].ID)
}

func TestQuantileLinearInterpolation(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.InDelta(t, 1.45, Quantile(vals, 0.05), 1e-9)
	assert.InDelta(t, 5.5, Quantile(vals, 0.5), 1e-9)
	assert.InDelta(t, 1, Quantile(vals, 0), 1e-9)
	assert.InDelta(t, 10, Quantile(vals, 1), 1e-9)
}

func TestQuantileEmptyIsNegInf(t *testing.T) {
	assert.True(t, math.IsInf(Quantile(nil, 0.05), -1))
}

func TestQuantileIgnoresNaN(t *testing.T) {
	vals := []float64{math.NaN(), 1, 2, 3}
	assert.InDelta(t, 2, Quantile(vals, 0.5), 1e-9)
}

func TestQualityGateBucketsIndependently(t *testing.T) {
	// Bright scores 1..10, q=0.05 -> threshold 1.45 drops only the 1.0 row.
	// Dark scores are lower across the board but survive their own 0.02
	// quantile instead of being measured against the bright cutoff.
	var rows []*metadata.Clip
	for i := 1; i <= 10; i++ {
		rows = append(rows, &metadata.Clip{
			ID:             "bright",
			Brightness:     "Bright",
			AestheticScore: float64(i),
		})
	}
	darkScores := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	for _, s := range darkScores {
		rows = append(rows, &metadata.Clip{
			ID:             "dark",
			Brightness:     "Dark",
			AestheticScore: s,
		})
	}

	kept, threshBright, threshOther := QualityGate(rows, 0.05, 0.02)

	assert.InDelta(t, 1.45, threshBright, 1e-9)
	assert.InDelta(t, 0.108, threshOther, 1e-9)

	var bright, dark int
	for _, c := range kept {
		switch c.ID {
		case "bright":
			assert.GreaterOrEqual(t, c.AestheticScore, threshBright)
			bright++
		case "dark":
			assert.GreaterOrEqual(t, c.AestheticScore, threshOther)
			dark++
		}
	}
	assert.Equal(t, 9, bright, "only the bottom bright row drops")
	assert.Equal(t, 4, dark, "only the bottom dark row drops")
}

func TestQualityGateBrightMatchIsSubstring(t *testing.T) {
	rows := []*metadata.Clip{
		{Brightness: "very bright outdoor", AestheticScore: 5},
		{Brightness: "BRIGHT", AestheticScore: 5},
		{Brightness: "", AestheticScore: 5},
	}

	kept, _, _ := QualityGate(rows, 0.05, 0.02)
	assert.Len(t, kept, 3)
}

func TestQualityGateEmptyBucketRemovesNothing(t *testing.T) {
	rows := []*metadata.Clip{
		{Brightness: "Dim", AestheticScore: 0.5},
		{Brightness: "Dark", AestheticScore: 0.6},
	}

	kept, threshBright, _ := QualityGate(rows, 0.05, 0.0)
	assert.True(t, math.IsInf(threshBright, -1))
	assert.Len(t, kept, 2)
}

func TestQualityGateDropsNaNScores(t *testing.T) {
	rows := []*metadata.Clip{
		{Brightness: "Dark", AestheticScore: math.NaN()},
		{Brightness: "Dark", AestheticScore: 0.6},
		{Brightness: "Dark", AestheticScore: 0.7},
	}

	kept, _, _ := QualityGate(rows, 0.05, 0.02)
	for _, c := range kept {
		assert.False(t, math.IsNaN(c.AestheticScore))
	}
	assert.Len(t, kept, 2)
}
