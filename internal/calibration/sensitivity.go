// Package calibration derives the per-component coefficients the scoring
// model needs: the sensitivity parameter (how fast vulnerability falls as
// funding rises) and the normalized importance weight.
//
// Both derivations start from category lookup tables
// (config.CalibrationTables). The tables are heuristic calibration, not a
// fitted statistical model; treat the constants as configuration.
package calibration

import (
	"math"

	"github.com/foodsystems-lab/vulnerability-optimizer/internal/config"
	"github.com/foodsystems-lab/vulnerability-optimizer/pkg/core"
)

// Sensitivity bounds and adjustment constants.
const (
	MinSensitivity = 0.1
	MaxSensitivity = 0.8

	// complexityThreshold is the indicator count above which the complexity
	// penalty applies.
	complexityThreshold = 10
	complexityPenalty   = 0.15
	complexityScale     = 20.0

	// scaleBonus rewards components with substantial funding, which tend to
	// have delivery capacity already in place.
	scaleTrigger = 0.5
	scaleBonus   = 0.10
	scaleDivisor = 100.0

	// lagPenalty dampens responsiveness for components with large standing
	// gaps, where additional funding takes longer to show results.
	lagTrigger = 1.0
	lagPenalty = 0.20
	lagScale   = 3.0
)

// EstimateSensitivity returns a copy of the dataset with every component's
// Sensitivity populated. The input dataset is never mutated.
//
// Each component starts from its category baseline and receives three
// adjustments in order: a complexity penalty for indicator-heavy components,
// a scale bonus for well-funded ones, and a lag penalty for components with
// a large average gap. The result is clamped to [0.1, 0.8].
func EstimateSensitivity(ds *core.Dataset, tables config.CalibrationTables) *core.Dataset {
	out := ds.Clone()
	for _, comp := range out.Components {
		comp.Sensitivity = estimateOne(comp, tables)
	}
	return out
}

func estimateOne(comp *core.Component, tables config.CalibrationTables) float64 {
	s := tables.SensitivityBaseline(comp.ID)

	if n := len(comp.Indicators); n > complexityThreshold {
		s -= complexityPenalty * (float64(n) / complexityScale)
	}

	if scaled := comp.Allocation / scaleDivisor; scaled > scaleTrigger {
		s += scaleBonus * math.Min(scaled, 1.0)
	}

	if comp.AverageGap > lagTrigger {
		s -= lagPenalty * math.Min(comp.AverageGap/lagScale, 1.0)
	}

	return math.Min(MaxSensitivity, math.Max(MinSensitivity, s))
}
