package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/growthlab/internal/growth"
)

const (
	DefaultInitialCapital = 4.0
	DefaultSteps          = 50
	DefaultSweepSteps     = 9
	DefaultAddr           = ":8080"
)

type Config struct {
	Params     growth.ParameterSet `yaml:"params"`
	Compare    growth.ParameterSet `yaml:"compare,omitempty"`
	Simulation SimulationConfig    `yaml:"simulation"`
	Sweep      SweepConfig         `yaml:"sweep"`
	Server     ServerConfig        `yaml:"server"`
}

type SimulationConfig struct {
	InitialCapital float64 `yaml:"initial_capital"`
	Steps          int     `yaml:"steps"`
}

type SweepConfig struct {
	Param string  `yaml:"param"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: growth.ParameterSet{
			growth.KeyN:     0.01,
			growth.KeyS:     0.2,
			growth.KeyD:     0.04,
			growth.KeyAlpha: 1.0 / 3,
			growth.KeyG:     0.02,
		},
		Simulation: SimulationConfig{
			InitialCapital: DefaultInitialCapital,
			Steps:          DefaultSteps,
		},
		Sweep: SweepConfig{
			Param: growth.KeyS,
			Min:   0.1,
			Max:   0.5,
			Steps: DefaultSweepSteps,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads path on top of base. Sections absent from the file keep
// base's values. A params or compare block replaces base's block wholesale;
// merging would mix "d" from one source with "delta" from another.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	params, compare := cfg.Params, cfg.Compare
	cfg.Params, cfg.Compare = nil, nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Params == nil {
		cfg.Params = params
	}
	if cfg.Compare == nil {
		cfg.Compare = compare
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ModelParams resolves the params block.
func (c *Config) ModelParams() (growth.Params, error) {
	p, err := growth.Decode(c.Params)
	if err != nil {
		return growth.Params{}, fmt.Errorf("params: %w", err)
	}
	return p, nil
}

// CompareParams resolves the compare block. ok is false when the block is absent.
func (c *Config) CompareParams() (p growth.Params, ok bool, err error) {
	if len(c.Compare) == 0 {
		return growth.Params{}, false, nil
	}
	p, err = growth.Decode(c.Compare)
	if err != nil {
		return growth.Params{}, false, fmt.Errorf("compare: %w", err)
	}
	return p, true, nil
}

// Override sets one parameter in the params block, replacing any alias of it.
func (c *Config) Override(key string, value float64) {
	if c.Params == nil {
		c.Params = growth.ParameterSet{}
	}
	if key == growth.KeyD || key == growth.KeyDelta {
		delete(c.Params, growth.KeyD)
		delete(c.Params, growth.KeyDelta)
	}
	c.Params[key] = value
}
