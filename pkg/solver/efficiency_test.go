package solver

import (
	"math"
	"testing"
)

func TestComputeEfficiency(t *testing.T) {
	e := ComputeEfficiency(0.10, 0.08)

	if math.Abs(e.AbsoluteGap-0.02) > 1e-12 {
		t.Errorf("AbsoluteGap = %v, want 0.02", e.AbsoluteGap)
	}
	if math.Abs(e.GapRatio-0.25) > 1e-12 {
		t.Errorf("GapRatio = %v, want 0.25", e.GapRatio)
	}
	if math.Abs(e.EfficiencyIndex-0.8) > 1e-12 {
		t.Errorf("EfficiencyIndex = %v, want 0.8", e.EfficiencyIndex)
	}
	if !e.IsDefined() {
		t.Error("IsDefined() = false for nonzero indices")
	}
}

func TestComputeEfficiencyNoImprovement(t *testing.T) {
	e := ComputeEfficiency(0.10, 0.10)
	if e.AbsoluteGap != 0 || e.GapRatio != 0 {
		t.Errorf("expected zero gap metrics, got %+v", e)
	}
	if e.EfficiencyIndex != 1 {
		t.Errorf("EfficiencyIndex = %v, want 1", e.EfficiencyIndex)
	}
}

func TestComputeEfficiencyZeroOptimizedIndex(t *testing.T) {
	e := ComputeEfficiency(0.10, 0)

	// The ratios are genuinely undefined here and must be surfaced as such,
	// not coerced.
	if !math.IsInf(e.GapRatio, 1) {
		t.Errorf("GapRatio = %v, want +Inf", e.GapRatio)
	}
	if e.EfficiencyIndex != 0 {
		t.Errorf("EfficiencyIndex = %v, want 0", e.EfficiencyIndex)
	}
	if e.IsDefined() {
		t.Error("IsDefined() = true for zero optimized index")
	}
}

func TestComputeEfficiencyBothZero(t *testing.T) {
	e := ComputeEfficiency(0, 0)
	if !math.IsNaN(e.GapRatio) || !math.IsNaN(e.EfficiencyIndex) {
		t.Errorf("expected NaN ratios, got %+v", e)
	}
	if e.IsDefined() {
		t.Error("IsDefined() = true for zero indices")
	}
}
