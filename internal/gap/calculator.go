// Package gap computes normalized performance gaps for indicators and
// aggregates them into a single gap per component.
//
// A gap measures how far an observed value falls short of (or exceeds, for
// lower-is-better metrics) its benchmark, normalized by the magnitude of the
// observation. Gaps are always >= 0; capping and outlier trimming happen at
// aggregation, never in the per-indicator calculation.
package gap

import "math"

// ZeroValueGap is the sentinel gap for an observed value of exactly zero
// against a nonzero benchmark on a higher-is-better metric. The relative gap
// is undefined there (division by zero); the sentinel marks a severe
// shortfall without blowing up the aggregate.
const ZeroValueGap = 5.0

// Calculate returns the normalized performance gap of an observed value
// against its benchmark. preferHigher states whether larger observed values
// are better for this metric.
//
// A nil value or benchmark means the gap cannot be computed and yields 0.
// The result is always >= 0; no upper bound is applied here.
func Calculate(value, benchmark *float64, preferHigher bool) float64 {
	if value == nil || benchmark == nil {
		return 0
	}
	v, b := *value, *benchmark

	if v == 0 {
		if b == 0 {
			return 0
		}
		if preferHigher {
			return ZeroValueGap
		}
		return 0
	}

	// Both negative: compare magnitudes. On a higher-is-better metric a more
	// negative value is the worse one, so the shortfall is measured on
	// magnitudes rather than on signed values.
	if v < 0 && b < 0 {
		av, ab := -v, -b
		if preferHigher {
			return math.Max(0, (av-ab)/av)
		}
		return math.Max(0, (ab-av)/av)
	}

	if preferHigher {
		return math.Max(0, (b-v)/math.Abs(v))
	}
	return math.Max(0, (v-b)/math.Abs(v))
}
