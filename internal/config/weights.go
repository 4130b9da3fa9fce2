package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FreqParams tunes one inverse-frequency weight: alpha controls flattening
// strength (1.0 = pure inverse frequency, lower = gentler), the clamp bounds
// the per-row weight before grouping.
type FreqParams struct {
	Alpha   float64 `yaml:"alpha"`
	ClampLo float64 `yaml:"clampLo"`
	ClampHi float64 `yaml:"clampHi"`
}

// QualityParams tunes the non-frequency quality weights.
type QualityParams struct {
	// Rows with motion score above the cutoff get the penalty weight,
	// everything else 1.0.
	MotionScoreCutoff  float64 `yaml:"motionScoreCutoff"`
	MotionScorePenalty float64 `yaml:"motionScorePenalty"`

	// Per-distLevel weight; unmapped levels default to 1.0.
	DistLevelWeights map[int]float64 `yaml:"distLevelWeights"`

	// Aesthetic z-score transform: 1 + slope*z, clamped.
	AestheticSlope   float64 `yaml:"aestheticSlope"`
	AestheticClampLo float64 `yaml:"aestheticClampLo"`
	AestheticClampHi float64 `yaml:"aestheticClampHi"`
}

// Weights is the full tuning profile for the sampling pipeline.
type Weights struct {
	MinDuration float64 `yaml:"minDuration"`

	MoveBin FreqParams `yaml:"moveBin"`
	RotBin  FreqParams `yaml:"rotBin"`
	TurnBin FreqParams `yaml:"turnBin"`

	Brightness FreqParams `yaml:"brightness"`
	TimeOfDay  FreqParams `yaml:"timeOfDay"`
	Weather    FreqParams `yaml:"weather"`
	SceneType  FreqParams `yaml:"sceneType"`
	MotionTags FreqParams `yaml:"motionTags"`

	Quality QualityParams `yaml:"quality"`

	FinalClampLo float64 `yaml:"finalClampLo"`
	FinalClampHi float64 `yaml:"finalClampHi"`
}

// DefaultWeights returns the tuning profile used for SpatialVID-HQ. Alphas
// below 1 keep some of the raw distribution instead of flattening it
// completely.
func DefaultWeights() Weights {
	return Weights{
		MinDuration: 3.0,

		MoveBin: FreqParams{Alpha: 0.8, ClampLo: 0.5, ClampHi: 3.0},
		RotBin:  FreqParams{Alpha: 0.8, ClampLo: 0.5, ClampHi: 3.0},
		TurnBin: FreqParams{Alpha: 0.8, ClampLo: 0.5, ClampHi: 3.0},

		Brightness: FreqParams{Alpha: 0.6, ClampLo: 0.5, ClampHi: 2.5},
		TimeOfDay:  FreqParams{Alpha: 0.6, ClampLo: 0.5, ClampHi: 2.5},
		Weather:    FreqParams{Alpha: 0.6, ClampLo: 0.5, ClampHi: 3.0},
		SceneType:  FreqParams{Alpha: 0.7, ClampLo: 0.3, ClampHi: 3.5},
		MotionTags: FreqParams{Alpha: 0.5, ClampLo: 0.5, ClampHi: 3.0},

		Quality: QualityParams{
			MotionScoreCutoff:  8.8,
			MotionScorePenalty: 0.7,
			DistLevelWeights:   map[int]float64{0: 0.8, 1: 1.0, 2: 1.0, 3: 1.0, 4: 1.0},
			AestheticSlope:     0.5,
			AestheticClampLo:   0.5,
			AestheticClampHi:   1.5,
		},

		FinalClampLo: 0.05,
		FinalClampHi: 20.0,
	}
}

// LoadWeights reads a YAML tuning profile layered over the defaults, so a
// profile only needs to name the values it changes.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse weights profile: %w", err)
	}
	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("validate weights profile: %w", err)
	}
	return w, nil
}

// Validate checks the profile for values the pipeline cannot work with.
func (w Weights) Validate() error {
	freq := map[string]FreqParams{
		"moveBin":    w.MoveBin,
		"rotBin":     w.RotBin,
		"turnBin":    w.TurnBin,
		"brightness": w.Brightness,
		"timeOfDay":  w.TimeOfDay,
		"weather":    w.Weather,
		"sceneType":  w.SceneType,
		"motionTags": w.MotionTags,
	}
	for name, p := range freq {
		if p.Alpha <= 0 {
			return fmt.Errorf("%s: alpha must be positive, got %v", name, p.Alpha)
		}
		if p.ClampLo <= 0 || p.ClampHi < p.ClampLo {
			return fmt.Errorf("%s: invalid clamp [%v, %v]", name, p.ClampLo, p.ClampHi)
		}
	}

	if w.MinDuration < 0 {
		return fmt.Errorf("minDuration must be non-negative, got %v", w.MinDuration)
	}
	if w.Quality.MotionScorePenalty <= 0 {
		return fmt.Errorf("quality: motionScorePenalty must be positive, got %v", w.Quality.MotionScorePenalty)
	}
	if w.Quality.AestheticClampLo <= 0 || w.Quality.AestheticClampHi < w.Quality.AestheticClampLo {
		return fmt.Errorf("quality: invalid aesthetic clamp [%v, %v]", w.Quality.AestheticClampLo, w.Quality.AestheticClampHi)
	}
	if w.FinalClampLo <= 0 || w.FinalClampHi < w.FinalClampLo {
		return fmt.Errorf("invalid final clamp [%v, %v]", w.FinalClampLo, w.FinalClampHi)
	}
	return nil
}
