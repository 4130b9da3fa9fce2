package sampler

import (
	"log/slog"

	"github.com/LyrineYang/dataset-download/internal/config"
	"github.com/LyrineYang/dataset-download/internal/metadata"
)

// Options controls one sampling run.
type Options struct {
	Num     int
	Seed    int64
	QBright float64
	QDark   float64
	DryRun  bool
}

// Result carries everything a caller needs to report on and persist a run.
type Result struct {
	// Candidates are the rows that survived filtering, annotated with bins
	// and final weights.
	Candidates []*metadata.Clip
	// Selected is nil in dry-run mode.
	Selected []*metadata.Clip

	ThreshBright float64
	ThreshOther  float64
}

// Run executes the full pipeline over an in-memory table: hard filter,
// per-bucket quality gate, binning, weighting, and (unless dry-run) the
// seeded weighted draw. The table flows strictly forward; rows are never
// re-added once filtered.
func Run(t *metadata.Table, w config.Weights, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rows := HardFilter(t.Rows, w.MinDuration)
	logger.Debug("hard filter applied", "minDuration", w.MinDuration, "kept", len(rows), "of", len(t.Rows))

	rows, threshBright, threshOther := QualityGate(rows, opts.QBright, opts.QDark)
	logger.Debug("quality gate applied",
		"threshBright", threshBright, "threshOther", threshOther, "kept", len(rows))

	if len(rows) == 0 {
		return nil, ErrNoCandidates
	}

	engine := NewEngine(w, logger)
	engine.Annotate(rows)
	engine.ComputeWeights(rows)

	res := &Result{
		Candidates:   rows,
		ThreshBright: threshBright,
		ThreshOther:  threshOther,
	}

	if opts.DryRun {
		return res, nil
	}

	selected, err := Draw(rows, opts.Num, opts.Seed)
	if err != nil {
		return nil, err
	}
	res.Selected = selected
	return res, nil
}
