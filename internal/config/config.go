package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/StrataDB/internal/errors"
)

// Config represents the complete StrataDB configuration.
type Config struct {
	LogLevel string `json:"log_level"`

	// Planner configuration
	Planner PlannerConfig `json:"planner"`
}

// PlannerConfig represents query planner configuration.
type PlannerConfig struct {
	// Join strategy switches. At least one must be enabled.
	EnableNestedLoopJoin bool `json:"enable_nestedloop_join"`
	EnableSortMergeJoin  bool `json:"enable_sortmerge_join"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Planner: PlannerConfig{
			EnableNestedLoopJoin: true,
			EnableSortMergeJoin:  true,
		},
	}
}

// LoadFromFile loads configuration from a JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	return c.Planner.Validate()
}

// Validate checks the planner configuration. Disabling every join strategy
// leaves multi-table queries unplannable, so it is rejected here as well as
// at join-build time.
func (c *PlannerConfig) Validate() error {
	if !c.EnableNestedLoopJoin && !c.EnableSortMergeJoin {
		return errors.ConfigErrorf("no join strategy enabled").
			WithHint("Enable nested-loop or sort-merge joins in the planner configuration.")
	}
	return nil
}
