package core

import "sort"

// Indicator is a single observed metric for a component. Value and Benchmark
// are pointers because source data routinely omits one or both; a missing
// side means the gap cannot be computed and defaults to zero.
//
// An Indicator is treated as immutable once its Gap has been derived.
type Indicator struct {
	// Value is the observed value, nil when the source had no data.
	Value *float64 `json:"value"`

	// Benchmark is the reference value the observation is compared against.
	Benchmark *float64 `json:"benchmark"`

	// WeightHint is the match confidence used by weighted aggregation.
	// Zero is treated as the default of 1.
	WeightHint float64 `json:"weightHint,omitempty"`

	// Expenditure is the spending recorded against this indicator.
	Expenditure float64 `json:"expenditure,omitempty"`

	// Gap is the derived, normalized performance gap, always >= 0.
	Gap float64 `json:"gap,omitempty"`
}

// EffectiveWeightHint returns the indicator's aggregation weight, defaulting
// to 1 when unset.
func (i Indicator) EffectiveWeightHint() float64 {
	if i.WeightHint <= 0 {
		return 1
	}
	return i.WeightHint
}

// Component is a weighted, fundable subsector of the analyzed system.
// AverageGap, Sensitivity, Weight and Vulnerability are derived by the
// pipeline stages; they are zero until the corresponding stage has run.
type Component struct {
	// ID is the unique key of the component (e.g. "nutrition").
	ID string `json:"id"`

	// Name is the human-readable component name.
	Name string `json:"name"`

	// Indicators are the observed metrics owned by this component.
	Indicators []Indicator `json:"indicators"`

	// Allocation is the funding assigned to the component, in currency units.
	Allocation float64 `json:"allocation"`

	// AverageGap is the aggregated performance gap across indicators.
	AverageGap float64 `json:"averageGap,omitempty"`

	// Sensitivity describes how fast vulnerability falls as funding
	// increases. Always within [0.1, 0.8] after estimation.
	Sensitivity float64 `json:"sensitivity,omitempty"`

	// Weight is the normalized importance weight. Weights sum to 1 across
	// all components of a dataset after assignment.
	Weight float64 `json:"weight,omitempty"`

	// Vulnerability is the component's gap discounted by funding.
	Vulnerability float64 `json:"vulnerability,omitempty"`
}

// Clone returns a deep copy of the component. The indicator slice is copied,
// never aliased.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := *c
	out.Indicators = make([]Indicator, len(c.Indicators))
	copy(out.Indicators, c.Indicators)
	return &out
}

// Dataset is a snapshot of the system under analysis: all components plus the
// total budget to distribute among them. TotalBudget need not equal the sum
// of allocations at load time; the solver restores that invariant.
type Dataset struct {
	Components  map[string]*Component `json:"components"`
	TotalBudget float64               `json:"totalBudget"`
}

// Clone returns a deep copy of the dataset. Pipeline stages clone their input
// before deriving anything, so no component record is ever shared across
// stage boundaries.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		Components:  make(map[string]*Component, len(d.Components)),
		TotalBudget: d.TotalBudget,
	}
	for id, comp := range d.Components {
		out.Components[id] = comp.Clone()
	}
	return out
}

// ComponentIDs returns the dataset's component IDs in sorted order.
// Map iteration order is not deterministic; every computation that walks
// components uses this so results are reproducible.
func (d *Dataset) ComponentIDs() []string {
	ids := make([]string, 0, len(d.Components))
	for id := range d.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Allocations returns a copy of the current component allocations keyed by ID.
func (d *Dataset) Allocations() map[string]float64 {
	out := make(map[string]float64, len(d.Components))
	for id, comp := range d.Components {
		out[id] = comp.Allocation
	}
	return out
}

// Ptr returns a pointer to v. Convenience for building indicator literals.
func Ptr(v float64) *float64 { return &v }
