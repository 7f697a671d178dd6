package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// FSVA_GAP_CALCULATION_CAP_MAX_GAP=6.0.
const EnvPrefix = "FSVA"

// Load reads analysis options from a yaml file, applying environment
// overrides and documented defaults for every omitted field. Unrecognized
// keys in the file are ignored. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("gap_calculation.cap_max_gap", DefaultCapMaxGap)
	v.SetDefault("gap_calculation.percentile_threshold", DefaultPercentileThreshold)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.PolicyPriorities == nil {
		cfg.PolicyPriorities = map[string]float64{}
	}
	if cfg.MetricPreference == nil {
		cfg.MetricPreference = map[string]bool{}
	}
	if cfg.GapCalculation.PerComponentCaps == nil {
		cfg.GapCalculation.PerComponentCaps = map[string]float64{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
