package gap

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/foodsystems-lab/vulnerability-optimizer/internal/config"
	"github.com/foodsystems-lab/vulnerability-optimizer/pkg/core"
)

// minIndicatorsForPercentile is the smallest sample for which an empirical
// percentile cap is meaningful.
const minIndicatorsForPercentile = 3

// trimFraction is the share of capped gaps dropped from each end when
// outlier trimming is enabled.
const trimFraction = 0.1

// minIndicatorsForTrim is the smallest sample that outlier trimming applies to.
const minIndicatorsForTrim = 6

// AggregateComponent reduces a component's indicator gaps to a single value.
//
// The order of operations is load-bearing: the cap is resolved first
// (per-component override, then an empirical percentile of the component's
// own gaps when enabled), every gap is clamped to it, and only then are
// outliers trimmed, so trimming is evaluated on bounded values. The final
// reduction is a weight-hint weighted mean or a simple mean.
func AggregateComponent(indicators []core.Indicator, opts config.GapCalculation, componentID string) float64 {
	cap := opts.EffectiveCap(componentID)

	gaps := make([]float64, 0, len(indicators))
	hints := make([]float64, 0, len(indicators))
	for _, ind := range indicators {
		if ind.Gap < 0 {
			continue
		}
		gaps = append(gaps, ind.Gap)
		hints = append(hints, ind.EffectiveWeightHint())
	}
	if len(gaps) == 0 {
		return 0
	}

	if opts.UsePercentileCapping && len(gaps) >= minIndicatorsForPercentile {
		cap = percentileCap(gaps, opts.EffectivePercentile())
	}

	for i := range gaps {
		gaps[i] = math.Min(gaps[i], cap)
	}

	if opts.TrimOutliers && len(gaps) >= minIndicatorsForTrim {
		gaps, hints = trimEnds(gaps, hints)
	}

	if opts.UseWeightedAverage {
		return stat.Mean(gaps, hints)
	}
	return stat.Mean(gaps, nil)
}

// percentileCap returns the gap value at the requested percentile of the
// sample, by rank on the ascending-sorted gaps.
func percentileCap(gaps []float64, percentile float64) float64 {
	sorted := make([]float64, len(gaps))
	copy(sorted, gaps)
	sort.Float64s(sorted)

	idx := int(math.Floor(float64(len(sorted)) * percentile / 100))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// trimEnds sorts the gaps ascending (keeping weight hints paired) and drops
// the lowest and highest trimFraction from each end. If trimming would
// remove everything, the untrimmed set is returned unchanged.
func trimEnds(gaps, hints []float64) ([]float64, []float64) {
	n := len(gaps)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return gaps[order[a]] < gaps[order[b]] })

	k := int(math.Floor(float64(n) * trimFraction))
	if n-2*k <= 0 {
		return gaps, hints
	}

	trimmedGaps := make([]float64, 0, n-2*k)
	trimmedHints := make([]float64, 0, n-2*k)
	for _, idx := range order[k : n-k] {
		trimmedGaps = append(trimmedGaps, gaps[idx])
		trimmedHints = append(trimmedHints, hints[idx])
	}
	return trimmedGaps, trimmedHints
}
