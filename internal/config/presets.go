package config

import (
	"sort"

	"github.com/san-kum/growthlab/internal/growth"
)

var Presets = map[string]*Config{
	"baseline": {
		Params:     growth.ParameterSet{"n": 0.01, "s": 0.2, "d": 0.04, "alpha": 1.0 / 3, "g": 0.02},
		Simulation: SimulationConfig{InitialCapital: 6, Steps: 50},
	},
	"convergence": {
		Params:     growth.ParameterSet{"n": 0.01, "s": 0.24, "d": 0.04, "alpha": 1.0 / 3, "g": 0.01},
		Simulation: SimulationConfig{InitialCapital: 4, Steps: 10},
	},
	"high-savings": {
		Params:     growth.ParameterSet{"n": 0.01, "s": 0.24, "d": 0.04, "alpha": 1.0 / 3, "g": 0.01},
		Compare:    growth.ParameterSet{"n": 0.01, "s": 0.33, "d": 0.04, "alpha": 1.0 / 3, "g": 0.01},
		Simulation: SimulationConfig{InitialCapital: 4, Steps: 100},
	},
	"no-growth": {
		Params:     growth.ParameterSet{"n": 0.0, "s": 0.2, "d": 0.0, "alpha": 0.5, "g": 0.0},
		Simulation: SimulationConfig{InitialCapital: 1, Steps: 20},
	},
	"ak": {
		Params:     growth.ParameterSet{"n": 0.01, "s": 0.2, "delta": 0.04, "alpha": 1.0, "g": 0.02},
		Simulation: SimulationConfig{InitialCapital: 1, Steps: 50},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or nil.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = make(growth.ParameterSet, len(preset.Params))
	for k, v := range preset.Params {
		cfg.Params[k] = v
	}
	if len(preset.Compare) > 0 {
		cfg.Compare = make(growth.ParameterSet, len(preset.Compare))
		for k, v := range preset.Compare {
			cfg.Compare[k] = v
		}
	}
	cfg.Simulation = preset.Simulation
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
