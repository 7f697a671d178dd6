package calibration

import (
	"github.com/foodsystems-lab/vulnerability-optimizer/internal/config"
	"github.com/foodsystems-lab/vulnerability-optimizer/pkg/core"
)

// AssignWeights returns a copy of the dataset with every component's Weight
// populated and normalized so that weights sum to exactly 1. The input
// dataset is never mutated.
//
// Each component starts from its category base weight, is multiplied by its
// policy priority, and then by the multiplier of every active contextual
// boost whose component set it belongs to. Boosts compose multiplicatively
// when a component matches more than one active factor.
func AssignWeights(ds *core.Dataset, cfg *config.Config, tables config.CalibrationTables) *core.Dataset {
	out := ds.Clone()

	var total float64
	for _, id := range out.ComponentIDs() {
		comp := out.Components[id]
		w := tables.BaseWeight(id)
		w *= cfg.Priority(id)
		for _, boost := range tables.Boosts {
			if boost.Active(cfg.ContextualFactors) && boost.Matches(id) {
				w *= boost.Multiplier
			}
		}
		comp.Weight = w
		total += w
	}

	if total <= 0 {
		return out
	}
	for _, comp := range out.Components {
		comp.Weight /= total
	}
	return out
}
