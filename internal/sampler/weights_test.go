package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LyrineYang/dataset-download/internal/config"
	"github.com/LyrineYang/dataset-download/internal/metadata"
)

func TestInverseFreqWeightsRareBeatsCommon(t *testing.T) {
	// One singleton category in a sea of a 500-strong one: before clamping
	// the singleton weight must exceed the common one for the same alpha.
	values := make([]string, 0, 1001)
	for i := 0; i < 500; i++ {
		values = append(values, "common")
	}
	values = append(values, "rare")
	for i := 0; i < 500; i++ {
		values = append(values, "other")
	}

	// Wide clamp so the raw ordering is visible.
	p := config.FreqParams{Alpha: 0.7, ClampLo: 1e-6, ClampHi: 1e6}
	w := InverseFreqWeights(values, p)

	rare := w[500]
	common := w[0]
	assert.Greater(t, rare, common)
	assert.InDelta(t, 1.0, rare, 1e-9, "count 1 -> weight 1 for any alpha")
	assert.InDelta(t, 1.0/math.Pow(500, 0.7), common, 1e-12)
}

func TestInverseFreqWeightsMonotoneInCount(t *testing.T) {
	p := config.FreqParams{Alpha: 0.8, ClampLo: 1e-9, ClampHi: 1e9}

	prev := math.Inf(1)
	for _, count := range []int{1, 2, 10, 100, 1000} {
		values := make([]string, count)
		for i := range values {
			values[i] = "x"
		}
		w := InverseFreqWeights(values, p)[0]
		assert.Less(t, w, prev, "weight must decrease as count grows")
		prev = w
	}
}

func TestInverseFreqWeightsClamped(t *testing.T) {
	values := []string{"a", "b", "b", "b", "b", "b", "b", "b", "b", "b"}
	p := config.FreqParams{Alpha: 1.0, ClampLo: 0.5, ClampHi: 0.9}

	w := InverseFreqWeights(values, p)
	assert.Equal(t, 0.9, w[0], "singleton clamps to hi")
	assert.Equal(t, 0.5, w[1], "1/9 clamps to lo")
}

func TestMeanNormalize(t *testing.T) {
	w := MeanNormalize([]float64{1, 2, 3, 6})

	var sum float64
	for _, v := range w {
		sum += v
	}
	assert.InDelta(t, 1.0, sum/float64(len(w)), 1e-12)
	// Relative ordering preserved.
	assert.Less(t, w[0], w[1])
	assert.Less(t, w[2], w[3])
}

func TestMeanNormalizeNearZeroMeanUntouched(t *testing.T) {
	in := []float64{1e-12, 2e-12}
	out := MeanNormalize(in)
	assert.Equal(t, in, out)
}

func TestMotionScoreWeights(t *testing.T) {
	rows := []*metadata.Clip{
		{MotionScore: 1.0},
		{MotionScore: 8.8},
		{MotionScore: 8.81},
	}
	w := MotionScoreWeights(rows, config.DefaultWeights().Quality)
	assert.Equal(t, []float64{1.0, 1.0, 0.7}, w)
}

func TestDistLevelWeights(t *testing.T) {
	rows := []*metadata.Clip{
		{DistLevel: 0},
		{DistLevel: 1},
		{DistLevel: 4},
		{DistLevel: 7},  // unmapped
		{DistLevel: -1}, // unparseable source value
	}
	w := DistLevelWeights(rows, config.DefaultWeights().Quality)
	assert.Equal(t, []float64{0.8, 1.0, 1.0, 1.0, 1.0}, w)
}

func TestAestheticWeights(t *testing.T) {
	rows := []*metadata.Clip{
		{AestheticScore: 1},
		{AestheticScore: 2},
		{AestheticScore: 3},
		{AestheticScore: 4},
		{AestheticScore: 5},
	}
	w := AestheticWeights(rows, config.DefaultWeights().Quality)

	// mean 3, sample stdev sqrt(2.5); middle row sits at z=0.
	assert.InDelta(t, 1.0, w[2], 1e-12)
	// Higher scores weigh more, all within the clamp.
	for i := 1; i < len(w); i++ {
		assert.GreaterOrEqual(t, w[i], w[i-1])
	}
	for _, v := range w {
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 1.5)
	}
}

func TestAestheticWeightsDegenerateVariance(t *testing.T) {
	rows := []*metadata.Clip{
		{AestheticScore: 4.2},
		{AestheticScore: 4.2},
		{AestheticScore: 4.2},
	}
	w := AestheticWeights(rows, config.DefaultWeights().Quality)
	assert.Equal(t, []float64{1.0, 1.0, 1.0}, w)
}

func TestEngineComputeWeightsRangeAndGroups(t *testing.T) {
	rows := testClips()

	engine := NewEngine(config.DefaultWeights(), nil)
	engine.Annotate(rows)
	engine.ComputeWeights(rows)

	for _, c := range rows {
		assert.GreaterOrEqual(t, c.Weight, 0.05)
		assert.LessOrEqual(t, c.Weight, 20.0)
		assert.NotEmpty(t, c.MoveBin)
		assert.NotEmpty(t, c.RotBin)
		assert.NotEmpty(t, c.TurnBin)
	}
}

func TestEngineUniformRowsGetUniformWeights(t *testing.T) {
	var rows []*metadata.Clip
	for i := 0; i < 8; i++ {
		rows = append(rows, &metadata.Clip{
			Duration: 5, MoveDist: 1, RotAngle: 1, TrajTurns: 1,
			MotionScore: 2, DistLevel: 2, AestheticScore: 4.0,
			Brightness: "Bright", TimeOfDay: "Day", Weather: "Sunny",
			SceneType: "Urban", MotionTags: "pan",
		})
	}

	engine := NewEngine(config.DefaultWeights(), nil)
	engine.Annotate(rows)
	engine.ComputeWeights(rows)

	for _, c := range rows {
		assert.InDelta(t, 1.0, c.Weight, 1e-9)
	}
}

func TestEngineMissingCategoricalsUseUnknownBucket(t *testing.T) {
	// A row with empty categoricals must still get a positive weight; the
	// Unknown bucket is a category, not an error.
	rows := testClips()
	rows = append(rows, &metadata.Clip{
		Duration: 5, MoveDist: 0.7, RotAngle: 0.2, TrajTurns: 0,
		MotionScore: 3, DistLevel: 2, AestheticScore: 4,
	})

	engine := NewEngine(config.DefaultWeights(), nil)
	engine.Annotate(rows)
	engine.ComputeWeights(rows)

	last := rows[len(rows)-1]
	require.Greater(t, last.Weight, 0.0)
}

// testClips builds a small varied candidate set.
func testClips() []*metadata.Clip {
	return []*metadata.Clip{
		{Duration: 5, MoveDist: 0.2, RotAngle: 0.3, TrajTurns: 0, MotionScore: 2, DistLevel: 2, AestheticScore: 4.5, Brightness: "Bright", TimeOfDay: "Day", Weather: "Sunny", SceneType: "Urban", MotionTags: "pan"},
		{Duration: 6, MoveDist: 1.2, RotAngle: 0.8, TrajTurns: 1, MotionScore: 4, DistLevel: 1, AestheticScore: 4.8, Brightness: "Bright", TimeOfDay: "Day", Weather: "Cloudy", SceneType: "Urban", MotionTags: "dolly"},
		{Duration: 7, MoveDist: 4.5, RotAngle: 1.6, TrajTurns: 2, MotionScore: 9.5, DistLevel: 0, AestheticScore: 3.9, Brightness: "Dark", TimeOfDay: "Night", Weather: "Rain", SceneType: "Indoor", MotionTags: "orbit"},
		{Duration: 8, MoveDist: 9.0, RotAngle: 3.4, TrajTurns: 4, MotionScore: 5, DistLevel: 3, AestheticScore: 5.1, Brightness: "Dim", TimeOfDay: "Dusk", Weather: "Fog", SceneType: "Nature", MotionTags: "crane"},
		{Duration: 9, MoveDist: 2.0, RotAngle: 0.4, TrajTurns: 1, MotionScore: 3, DistLevel: 2, AestheticScore: 4.2, Brightness: "Bright", TimeOfDay: "Morning", Weather: "Sunny", SceneType: "Urban", MotionTags: "pan"},
	}
}
