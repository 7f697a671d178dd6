package config

import "fmt"

// Default option values. Any omitted configuration field resolves to one of
// these; an incomplete config is never a fatal error.
const (
	// DefaultCapMaxGap bounds indicator gaps during aggregation.
	DefaultCapMaxGap = 8.0

	// DefaultPercentileThreshold is the percentile used when percentile
	// capping is enabled.
	DefaultPercentileThreshold = 95.0

	// DefaultPolicyPriority is the multiplier applied to components with no
	// explicit policy priority.
	DefaultPolicyPriority = 1.0
)

// GapCalculation holds the options that control indicator gap aggregation.
type GapCalculation struct {
	// UseWeightedAverage selects a weight-hint weighted mean over a simple
	// arithmetic mean for the final reduction.
	UseWeightedAverage bool `yaml:"use_weighted_average" mapstructure:"use_weighted_average"`

	// TrimOutliers drops the lowest and highest 10% of capped gaps before
	// averaging, when enough indicators are present.
	TrimOutliers bool `yaml:"trim_outliers" mapstructure:"trim_outliers"`

	// CapMaxGap is the global upper bound applied to every indicator gap.
	CapMaxGap float64 `yaml:"cap_max_gap" mapstructure:"cap_max_gap"`

	// UsePercentileCapping replaces the global cap with an empirical
	// percentile of the component's own gaps when at least 3 are present.
	UsePercentileCapping bool `yaml:"use_percentile_capping" mapstructure:"use_percentile_capping"`

	// PercentileThreshold is the percentile (0-100] used for percentile
	// capping.
	PercentileThreshold float64 `yaml:"percentile_threshold" mapstructure:"percentile_threshold"`

	// PerComponentCaps overrides the global cap for specific components.
	PerComponentCaps map[string]float64 `yaml:"per_component_caps" mapstructure:"per_component_caps"`
}

// EffectiveCap returns the gap cap for a component: the per-component
// override when present, otherwise the global cap.
func (g GapCalculation) EffectiveCap(componentID string) float64 {
	if cap, ok := g.PerComponentCaps[componentID]; ok && cap > 0 {
		return cap
	}
	if g.CapMaxGap > 0 {
		return g.CapMaxGap
	}
	return DefaultCapMaxGap
}

// EffectivePercentile returns the percentile threshold, defaulted when unset.
func (g GapCalculation) EffectivePercentile() float64 {
	if g.PercentileThreshold > 0 {
		return g.PercentileThreshold
	}
	return DefaultPercentileThreshold
}

// ContextualFactors flags crisis and development contexts that boost the
// weights of matching component sets.
type ContextualFactors struct {
	ClimateEmergency  bool `yaml:"climate_emergency" mapstructure:"climate_emergency"`
	FoodCrisis        bool `yaml:"food_crisis" mapstructure:"food_crisis"`
	NutritionCrisis   bool `yaml:"nutrition_crisis" mapstructure:"nutrition_crisis"`
	MarketDevelopment bool `yaml:"market_development" mapstructure:"market_development"`
}

// Config is the immutable set of recognized analysis options. Unrecognized
// keys in the source document are ignored, never rejected.
type Config struct {
	// PolicyPriorities multiplies the base weight of specific components.
	PolicyPriorities map[string]float64 `yaml:"policy_priorities" mapstructure:"policy_priorities"`

	// ContextualFactors activate weight boosts for matching components.
	ContextualFactors ContextualFactors `yaml:"contextual_factors" mapstructure:"contextual_factors"`

	// GapCalculation controls indicator gap aggregation.
	GapCalculation GapCalculation `yaml:"gap_calculation" mapstructure:"gap_calculation"`

	// MetricPreference records, per component, whether higher observed
	// values are better. Missing entries default to true.
	MetricPreference map[string]bool `yaml:"metric_preference" mapstructure:"metric_preference"`
}

// Default returns a Config with every field at its documented default.
func Default() *Config {
	return &Config{
		PolicyPriorities: map[string]float64{},
		GapCalculation: GapCalculation{
			CapMaxGap:           DefaultCapMaxGap,
			PercentileThreshold: DefaultPercentileThreshold,
			PerComponentCaps:    map[string]float64{},
		},
		MetricPreference: map[string]bool{},
	}
}

// PreferHigher reports whether higher observed values are better for the
// given component. Components without an explicit preference default to true.
func (c *Config) PreferHigher(componentID string) bool {
	if pref, ok := c.MetricPreference[componentID]; ok {
		return pref
	}
	return true
}

// Priority returns the policy priority multiplier for a component,
// defaulting to 1.
func (c *Config) Priority(componentID string) float64 {
	if p, ok := c.PolicyPriorities[componentID]; ok && p > 0 {
		return p
	}
	return DefaultPolicyPriority
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	if c.GapCalculation.CapMaxGap < 0 {
		return fmt.Errorf("cap_max_gap must be >= 0, got %.2f", c.GapCalculation.CapMaxGap)
	}
	if p := c.GapCalculation.PercentileThreshold; p < 0 || p > 100 {
		return fmt.Errorf("percentile_threshold must be between 0 and 100, got %.1f", p)
	}
	for id, cap := range c.GapCalculation.PerComponentCaps {
		if cap <= 0 {
			return fmt.Errorf("per_component_caps[%s] must be > 0, got %.2f", id, cap)
		}
	}
	for id, p := range c.PolicyPriorities {
		if p <= 0 {
			return fmt.Errorf("policy_priorities[%s] must be > 0, got %.2f", id, p)
		}
	}
	return nil
}
