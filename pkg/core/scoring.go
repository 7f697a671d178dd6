package core

import "math"

// Vulnerability combines a component's performance gap, funding allocation
// and sensitivity into a single score:
//
//	vulnerability = gap / (1 + sensitivity * max(0, allocation))
//
// It is a pure, total function, monotonically non-increasing in allocation
// for fixed gap and sensitivity. A negative allocation is a data error, not a
// valid economic state; it is clamped to zero here. Callers that want the
// clamp surfaced as a data-quality signal should check the allocation before
// calling (see analyzer.scoreComponents).
func Vulnerability(gap, allocation, sensitivity float64) float64 {
	if allocation < 0 {
		allocation = 0
	}
	return gap / (1 + sensitivity*allocation)
}

// SystemIndex reduces a scored dataset to the single system-level
// vulnerability index: the weighted sum of component vulnerabilities.
// Components whose weight or vulnerability is not a finite number are
// skipped and contribute zero; a partially scored dataset never causes a
// fatal error.
//
// Summation runs in sorted component order so identical datasets always
// produce bit-identical indices.
func SystemIndex(d *Dataset) float64 {
	var index float64
	for _, id := range d.ComponentIDs() {
		comp := d.Components[id]
		if math.IsNaN(comp.Weight) || math.IsNaN(comp.Vulnerability) {
			continue
		}
		index += comp.Weight * comp.Vulnerability
	}
	return index
}
