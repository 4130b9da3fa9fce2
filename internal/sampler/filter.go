package sampler

import (
	"math"
	"sort"
	"strings"

	"github.com/LyrineYang/dataset-download/internal/metadata"
)

// HardFilter drops every clip shorter than minDuration seconds.
func HardFilter(rows []*metadata.Clip, minDuration float64) []*metadata.Clip {
	kept := rows[:0:0]
	for _, c := range rows {
		if c.Duration >= minDuration {
			kept = append(kept, c)
		}
	}
	return kept
}

// QualityGate removes the bottom aesthetic-score tail separately inside the
// Bright and non-Bright brightness buckets. A global cutoff would strip dark
// clips disproportionately, since their aesthetic scores run systematically
// lower; per-bucket quantiles keep diversity in dim scenes. Returns the
// surviving rows plus the two thresholds for diagnostics. An empty bucket
// gets a -Inf threshold and loses nothing.
func QualityGate(rows []*metadata.Clip, qBright, qDark float64) ([]*metadata.Clip, float64, float64) {
	var brightScores, otherScores []float64
	for _, c := range rows {
		if isBright(c.Brightness) {
			brightScores = append(brightScores, c.AestheticScore)
		} else {
			otherScores = append(otherScores, c.AestheticScore)
		}
	}

	threshBright := Quantile(brightScores, qBright)
	threshOther := Quantile(otherScores, qDark)

	kept := rows[:0:0]
	for _, c := range rows {
		thresh := threshOther
		if isBright(c.Brightness) {
			thresh = threshBright
		}
		// NaN scores never satisfy >= and are dropped with the tail.
		if c.AestheticScore >= thresh {
			kept = append(kept, c)
		}
	}
	return kept, threshBright, threshOther
}

func isBright(brightness string) bool {
	return strings.Contains(strings.ToLower(brightness), "bright")
}

// Quantile returns the q-th quantile of vals with linear interpolation
// between order statistics, so Quantile([1..10], 0.05) = 1.45. NaNs are
// ignored; an empty input yields -Inf.
func Quantile(vals []float64, q float64) float64 {
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.Inf(-1)
	}

	sort.Float64s(finite)
	if q <= 0 {
		return finite[0]
	}
	if q >= 1 {
		return finite[len(finite)-1]
	}

	pos := float64(len(finite)-1) * q
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= len(finite) {
		return finite[lo]
	}
	return finite[lo] + frac*(finite[lo+1]-finite[lo])
}
