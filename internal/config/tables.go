package config

import (
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"
)

const (
	// GlobalDefaultsKey is the entry name carrying global calibration
	// defaults in an override document.
	GlobalDefaultsKey = "default"

	// DefaultSensitivityBaseline is the responsiveness baseline for
	// categories absent from the sensitivity table.
	DefaultSensitivityBaseline = 0.40

	// DefaultBaseWeight is the importance weight for categories absent from
	// the base-weight table.
	DefaultBaseWeight = 0.025
)

// Contextual factor names, used to bind weight boosts to ContextualFactors.
const (
	FactorClimateEmergency  = "climate_emergency"
	FactorFoodCrisis        = "food_crisis"
	FactorNutritionCrisis   = "nutrition_crisis"
	FactorMarketDevelopment = "market_development"
)

// CalibrationEntry is one category's calibration values in an override
// document. A zero field inherits the table default.
type CalibrationEntry struct {
	// Category is the component category this entry overrides (only used in
	// override entries, not in the global defaults entry).
	Category string `yaml:"category,omitempty"`

	// Sensitivity is the baseline responsiveness for the category (0-1).
	Sensitivity float64 `yaml:"sensitivity,omitempty"`

	// BaseWeight is the unnormalized importance weight for the category.
	BaseWeight float64 `yaml:"baseWeight,omitempty"`
}

// Validate checks for invalid calibration values.
func (e *CalibrationEntry) Validate() error {
	if e.Sensitivity < 0 || e.Sensitivity > 1 {
		return fmt.Errorf("sensitivity must be between 0 and 1, got %.2f", e.Sensitivity)
	}
	if e.BaseWeight < 0 {
		return fmt.Errorf("baseWeight must be >= 0, got %.3f", e.BaseWeight)
	}
	return nil
}

// ContextualBoost multiplies the weights of a set of components when its
// factor is active. Multiple boosts compose multiplicatively when a
// component belongs to more than one matched set.
type ContextualBoost struct {
	Factor     string   `yaml:"factor"`
	Multiplier float64  `yaml:"multiplier"`
	Components []string `yaml:"components"`
}

// Active reports whether this boost's factor is switched on.
func (b ContextualBoost) Active(f ContextualFactors) bool {
	switch b.Factor {
	case FactorClimateEmergency:
		return f.ClimateEmergency
	case FactorFoodCrisis:
		return f.FoodCrisis
	case FactorNutritionCrisis:
		return f.NutritionCrisis
	case FactorMarketDevelopment:
		return f.MarketDevelopment
	default:
		return false
	}
}

// Matches reports whether the boost applies to the given component.
func (b ContextualBoost) Matches(componentID string) bool {
	for _, id := range b.Components {
		if id == componentID {
			return true
		}
	}
	return false
}

// CalibrationTables holds the category lookup tables driving sensitivity
// estimation and weight assignment. The tables are configuration data, not
// code: tests and deployments substitute their own.
type CalibrationTables struct {
	// Sensitivity maps category to baseline responsiveness.
	Sensitivity map[string]float64

	// BaseWeights maps category to unnormalized importance weight.
	BaseWeights map[string]float64

	// DefaultSensitivity is used for categories absent from Sensitivity.
	DefaultSensitivity float64

	// DefaultWeight is used for categories absent from BaseWeights.
	DefaultWeight float64

	// Boosts are the contextual weight boosts.
	Boosts []ContextualBoost
}

// DefaultCalibrationTables returns the built-in calibration. Fast-responding
// categories (direct service delivery) sit near 0.70; slow structural ones
// (environment, infrastructure) near 0.20.
func DefaultCalibrationTables() CalibrationTables {
	return CalibrationTables{
		Sensitivity: map[string]float64{
			"nutrition":          0.70,
			"food_assistance":    0.70,
			"market_development": 0.60,
			"processing":         0.60,
			"food_availability":  0.55,
			"storage":            0.50,
			"distribution":       0.50,
			"food_security":      0.45,
			"education":          0.35,
			"infrastructure":     0.25,
			"environment":        0.20,
			"resilience":         0.20,
		},
		BaseWeights: map[string]float64{
			"food_availability":  0.15,
			"food_security":      0.12,
			"nutrition":          0.12,
			"food_assistance":    0.08,
			"market_development": 0.08,
			"environment":        0.07,
			"resilience":         0.07,
			"storage":            0.06,
			"processing":         0.06,
			"distribution":       0.05,
			"infrastructure":     0.05,
			"education":          0.04,
		},
		DefaultSensitivity: DefaultSensitivityBaseline,
		DefaultWeight:      DefaultBaseWeight,
		Boosts: []ContextualBoost{
			{Factor: FactorClimateEmergency, Multiplier: 1.5, Components: []string{"environment", "resilience"}},
			{Factor: FactorFoodCrisis, Multiplier: 1.8, Components: []string{"food_availability", "food_security", "storage"}},
			{Factor: FactorNutritionCrisis, Multiplier: 1.7, Components: []string{"nutrition", "food_security"}},
			{Factor: FactorMarketDevelopment, Multiplier: 1.4, Components: []string{"market_development", "processing", "storage"}},
		},
	}
}

// SensitivityBaseline returns the baseline responsiveness for a category.
func (t CalibrationTables) SensitivityBaseline(category string) float64 {
	if s, ok := t.Sensitivity[category]; ok {
		return s
	}
	if t.DefaultSensitivity > 0 {
		return t.DefaultSensitivity
	}
	return DefaultSensitivityBaseline
}

// BaseWeight returns the unnormalized importance weight for a category.
func (t CalibrationTables) BaseWeight(category string) float64 {
	if w, ok := t.BaseWeights[category]; ok {
		return w
	}
	if t.DefaultWeight > 0 {
		return t.DefaultWeight
	}
	return DefaultBaseWeight
}

// ParseCalibrationOverrides parses calibration overrides from a keyed set of
// yaml documents and applies them on top of the built-in tables. The format:
//   - "default": global defaults (sensitivity/baseWeight fallbacks)
//   - "<override-name>": per-category entry with a category field
//
// Invalid entries are skipped and logged, never fatal. Duplicate categories
// resolve first-key-wins in sorted key order.
func ParseCalibrationOverrides(data map[string]string, log logr.Logger) CalibrationTables {
	tables := DefaultCalibrationTables()
	if data == nil {
		return tables
	}

	seen := make(map[string]string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var entry CalibrationEntry
		if err := yaml.Unmarshal([]byte(data[key]), &entry); err != nil {
			log.Info("Failed to parse calibration entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if err := entry.Validate(); err != nil {
			log.Info("Invalid calibration entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if key == GlobalDefaultsKey {
			if entry.Sensitivity > 0 {
				tables.DefaultSensitivity = entry.Sensitivity
			}
			if entry.BaseWeight > 0 {
				tables.DefaultWeight = entry.BaseWeight
			}
			continue
		}

		if entry.Category == "" {
			log.Info("Skipping calibration entry without category field",
				"key", key)
			continue
		}

		if winner, dup := seen[entry.Category]; dup {
			log.Info("Duplicate category in calibration overrides - first key wins",
				"category", entry.Category,
				"winningKey", winner,
				"duplicateKey", key)
			continue
		}
		seen[entry.Category] = key

		if entry.Sensitivity > 0 {
			tables.Sensitivity[entry.Category] = entry.Sensitivity
		}
		if entry.BaseWeight > 0 {
			tables.BaseWeights[entry.Category] = entry.BaseWeight
		}
	}

	return tables
}
