package sampler

import (
	"log/slog"
	"math"

	"github.com/LyrineYang/dataset-download/internal/config"
	"github.com/LyrineYang/dataset-download/internal/metadata"
)

// Engine computes per-clip sampling weights from a tuning profile.
type Engine struct {
	weights config.Weights
	logger  *slog.Logger
}

// NewEngine creates an engine. A nil logger discards log output.
func NewEngine(w config.Weights, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{weights: w, logger: logger}
}

// Annotate fills the trajectory bin labels on every clip. Missing motion
// features land in the lowest bin; one warning per feature reports how many
// rows that affected.
func (e *Engine) Annotate(rows []*metadata.Clip) {
	var nanMove, nanRot, nanTurn int
	for _, c := range rows {
		if math.IsNaN(c.MoveDist) {
			nanMove++
		}
		if math.IsNaN(c.RotAngle) {
			nanRot++
		}
		if math.IsNaN(c.TrajTurns) {
			nanTurn++
		}
		c.MoveBin = BinMoveDist(c.MoveDist)
		c.RotBin = BinRotAngle(c.RotAngle)
		c.TurnBin = BinTrajTurns(c.TrajTurns)
	}

	if nanMove > 0 {
		e.logger.Warn("moveDist missing, binned as lowest", "rows", nanMove)
	}
	if nanRot > 0 {
		e.logger.Warn("rotAngle missing, binned as lowest", "rows", nanRot)
	}
	if nanTurn > 0 {
		e.logger.Warn("trajTurns missing, binned as lowest", "rows", nanTurn)
	}
}

// ComputeWeights sets the final sampling weight on every clip. Three weight
// families are computed independently, each as the elementwise product of
// its members, then mean-renormalized so a family with many terms cannot
// dominate the ones with few:
//
//   - dynamics: inverse-frequency weights of the three trajectory bins
//   - semantic: inverse-frequency weights of the five categorical columns
//   - quality: motion-score, distLevel and aesthetic weights
//
// The product of the three renormalized families, clamped to the final
// range, becomes the clip weight. Annotate must have run first.
func (e *Engine) ComputeWeights(rows []*metadata.Clip) {
	w := e.weights

	category := func(get func(*metadata.Clip) string) []string {
		vals := make([]string, len(rows))
		for i, c := range rows {
			vals[i] = get(c)
		}
		return vals
	}

	// Bins are always present after Annotate; the semantic columns may be
	// missing and fall back to the Unknown category.
	dynamics := MeanNormalize(mulElementwise(
		InverseFreqWeights(category(func(c *metadata.Clip) string { return c.MoveBin }), w.MoveBin),
		InverseFreqWeights(category(func(c *metadata.Clip) string { return c.RotBin }), w.RotBin),
		InverseFreqWeights(category(func(c *metadata.Clip) string { return c.TurnBin }), w.TurnBin),
	))

	semantic := MeanNormalize(mulElementwise(
		InverseFreqWeights(category(func(c *metadata.Clip) string { return orUnknown(c.Brightness) }), w.Brightness),
		InverseFreqWeights(category(func(c *metadata.Clip) string { return orUnknown(c.TimeOfDay) }), w.TimeOfDay),
		InverseFreqWeights(category(func(c *metadata.Clip) string { return orUnknown(c.Weather) }), w.Weather),
		InverseFreqWeights(category(func(c *metadata.Clip) string { return orUnknown(c.SceneType) }), w.SceneType),
		InverseFreqWeights(category(func(c *metadata.Clip) string { return orUnknown(c.MotionTags) }), w.MotionTags),
	))

	quality := MeanNormalize(mulElementwise(
		MotionScoreWeights(rows, w.Quality),
		DistLevelWeights(rows, w.Quality),
		AestheticWeights(rows, w.Quality),
	))

	for i, c := range rows {
		c.Weight = clamp(dynamics[i]*semantic[i]*quality[i], w.FinalClampLo, w.FinalClampHi)
	}
}
