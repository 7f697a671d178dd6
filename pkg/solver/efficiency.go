package solver

import "math"

// Efficiency compares the system index before and after optimization.
//
// GapRatio and EfficiencyIndex are genuinely undefined when the optimized
// index is zero; they are returned as Inf/NaN rather than coerced to a
// number. Callers must check IsDefined before presenting them.
type Efficiency struct {
	// AbsoluteGap is the index reduction achieved: original - optimized.
	AbsoluteGap float64 `json:"absoluteGap"`

	// GapRatio is the reduction relative to the optimized index.
	GapRatio float64 `json:"gapRatio"`

	// EfficiencyIndex is optimized/original: 1 means no improvement, lower
	// is better.
	EfficiencyIndex float64 `json:"efficiencyIndex"`
}

// ComputeEfficiency derives comparison metrics between two index values.
func ComputeEfficiency(originalIndex, optimizedIndex float64) Efficiency {
	gap := originalIndex - optimizedIndex
	return Efficiency{
		AbsoluteGap:     gap,
		GapRatio:        gap / optimizedIndex,
		EfficiencyIndex: optimizedIndex / originalIndex,
	}
}

// IsDefined reports whether the ratio metrics are usable numbers.
func (e Efficiency) IsDefined() bool {
	return !math.IsNaN(e.GapRatio) && !math.IsInf(e.GapRatio, 0) &&
		!math.IsNaN(e.EfficiencyIndex) && !math.IsInf(e.EfficiencyIndex, 0)
}
