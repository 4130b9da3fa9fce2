// Package sampler implements the weighting-and-sampling core: hard and
// quality filters, trajectory binning, the three weight families, and the
// final seeded weighted draw.
package sampler

import "math"

// Trajectory bins are ordinal labels over fixed thresholds. Boundaries are
// left-closed/right-open for moveDist and rotAngle (an edge value lands in
// the upper bin) and inclusive for trajTurns (an edge value lands in the
// lower bin). NaN maps to the lowest bin; the engine logs how often that
// happened.

// BinMoveDist buckets camera translation magnitude.
func BinMoveDist(x float64) string {
	switch {
	case math.IsNaN(x) || x < 0.5:
		return "S"
	case x < 3:
		return "M"
	case x < 8:
		return "L"
	default:
		return "XL"
	}
}

// BinRotAngle buckets camera rotation magnitude.
func BinRotAngle(x float64) string {
	switch {
	case math.IsNaN(x) || x < 0.5:
		return "S"
	case x < 1.5:
		return "M"
	case x < 3:
		return "L"
	default:
		return "XL"
	}
}

// BinTrajTurns buckets the number of trajectory direction changes.
func BinTrajTurns(x float64) string {
	switch {
	case math.IsNaN(x) || x <= 0:
		return "0"
	case x <= 1:
		return "1"
	case x <= 2:
		return "2"
	default:
		return "3+"
	}
}
