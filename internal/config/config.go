// Package config loads plan settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlanConfig holds the inputs that can also be passed as flags. Zero-value
// fields are treated as unset by the caller.
type PlanConfig struct {
	Companies []int `yaml:"companies"`
	Days      int   `yaml:"days"`
	Groups    int   `yaml:"groups"`
	Seed      int64 `yaml:"seed"`
	Trials    int   `yaml:"trials"`
}

// Load reads a PlanConfig from the YAML file at path.
func Load(path string) (*PlanConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg PlanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}
