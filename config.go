package talon

import (
	"fmt"
	"os"

	"github.com/akmonengine/talon/epa"
	"github.com/akmonengine/talon/gjk"
	"gopkg.in/yaml.v3"
)

// Config carries the narrow-phase tunables. The zero value of any field
// falls back to the shipped default.
type Config struct {
	// Margin is the contact skin: pair separations below it report a
	// shallow contact instead of a miss
	Margin float64 `yaml:"margin"`
	// MaxIterations bounds both the GJK descent and the EPA expansion
	MaxIterations int `yaml:"max_iterations"`
	// EPACondition is the squared support-gap below which EPA has converged
	EPACondition float64 `yaml:"epa_condition"`
}

// DefaultConfig returns the tuning the detector ships with
func DefaultConfig() Config {
	return Config{
		Margin:        gjk.Margin,
		MaxIterations: gjk.MaxIterations,
		EPACondition:  epa.Condition,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Margin <= 0 {
		c.Margin = defaults.Margin
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = defaults.MaxIterations
	}
	if c.EPACondition <= 0 {
		c.EPACondition = defaults.EPACondition
	}

	return c
}

// LoadConfig reads a YAML tunables file; missing fields keep their defaults
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	return cfg.withDefaults(), nil
}
