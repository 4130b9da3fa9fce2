package sampler

import (
	"math"

	"github.com/LyrineYang/dataset-download/internal/config"
	"github.com/LyrineYang/dataset-download/internal/metadata"
)

// unknownCategory stands in for missing categorical values so they compete
// as a category of their own instead of being dropped.
const unknownCategory = "Unknown"

const (
	// Below this a group mean is considered degenerate and renormalization
	// is skipped.
	minGroupMean = 1e-9
	// Below this the aesthetic-score spread is considered degenerate and
	// every aesthetic weight is 1.0.
	minStdev = 1e-6
)

// InverseFreqWeights assigns each row 1/count^alpha for its category's
// occurrence count, clamped to the configured range. Rarer categories get
// larger weights; alpha < 1 softens the correction.
func InverseFreqWeights(values []string, p config.FreqParams) []float64 {
	counts := make(map[string]int, 16)
	for _, v := range values {
		counts[v]++
	}

	w := make([]float64, len(values))
	for i, v := range values {
		w[i] = clamp(1.0/math.Pow(float64(counts[v]), p.Alpha), p.ClampLo, p.ClampHi)
	}
	return w
}

// MotionScoreWeights penalizes jittery clips: weight 1.0 up to the cutoff,
// the configured penalty above it.
func MotionScoreWeights(rows []*metadata.Clip, q config.QualityParams) []float64 {
	w := make([]float64, len(rows))
	for i, c := range rows {
		if c.MotionScore > q.MotionScoreCutoff {
			w[i] = q.MotionScorePenalty
		} else {
			w[i] = 1.0
		}
	}
	return w
}

// DistLevelWeights maps the ordinal distortion level through the configured
// lookup table; unmapped levels weigh 1.0.
func DistLevelWeights(rows []*metadata.Clip, q config.QualityParams) []float64 {
	w := make([]float64, len(rows))
	for i, c := range rows {
		if lw, ok := q.DistLevelWeights[c.DistLevel]; ok {
			w[i] = lw
		} else {
			w[i] = 1.0
		}
	}
	return w
}

// AestheticWeights scores each clip by the z-score of its aesthetic score
// against the filtered population, transformed as 1 + slope*z and clamped.
// Degenerate variance collapses every weight to 1.0.
func AestheticWeights(rows []*metadata.Clip, q config.QualityParams) []float64 {
	w := make([]float64, len(rows))

	mu, sigma := meanStdev(rows)
	if sigma <= minStdev {
		for i := range w {
			w[i] = 1.0
		}
		return w
	}

	for i, c := range rows {
		z := (c.AestheticScore - mu) / sigma
		w[i] = clamp(1.0+q.AestheticSlope*z, q.AestheticClampLo, q.AestheticClampHi)
	}
	return w
}

// meanStdev computes mean and sample standard deviation of the aesthetic
// scores, ignoring NaNs.
func meanStdev(rows []*metadata.Clip) (float64, float64) {
	var sum float64
	var n int
	for _, c := range rows {
		if !math.IsNaN(c.AestheticScore) {
			sum += c.AestheticScore
			n++
		}
	}
	if n < 2 {
		return sum / math.Max(float64(n), 1), 0
	}
	mu := sum / float64(n)

	var ss float64
	for _, c := range rows {
		if !math.IsNaN(c.AestheticScore) {
			d := c.AestheticScore - mu
			ss += d * d
		}
	}
	return mu, math.Sqrt(ss / float64(n-1))
}

// MeanNormalize rescales weights so their mean is 1.0, keeping relative
// ordering while bounding compound growth when groups are multiplied
// together. Near-zero means are left untouched.
func MeanNormalize(w []float64) []float64 {
	if len(w) == 0 {
		return w
	}
	var sum float64
	for _, v := range w {
		sum += v
	}
	mean := sum / float64(len(w))
	if mean <= minGroupMean {
		return w
	}

	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = v / mean
	}
	return out
}

func mulElementwise(series ...[]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series[0]))
	for i := range out {
		out[i] = 1.0
	}
	for _, s := range series {
		for i, v := range s {
			out[i] *= v
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return unknownCategory
	}
	return s
}
