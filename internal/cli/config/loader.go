package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/formulate/pkg/optimize"
)

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// findConfigFile finds the config file to use.
// Priority: explicit path > formulate.yaml > formulate.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"formulate.yaml", "formulate.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// GetConfigFileUsed returns the path of the loaded config file, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// Load loads configuration from defaults, file, environment variables, and
// command-line flags, in that order of increasing priority.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"from": DefaultFrom,
		"to":   DefaultTo,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional)
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		configFileUsed = path
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	// 3. Environment variables: FORMULATE_OPTIMIZER_THRESHOLD etc.
	if err := k.Load(env.Provider("FORMULATE_", ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, "FORMULATE_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// 4. Command-line flags
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// CostModel builds the optimizer cost model from the configuration,
// starting from the built-in defaults.
func (c *Config) CostModel() *optimize.CostModel {
	m := optimize.DefaultCostModel()
	if c.Optimizer.Threshold != nil {
		m.Threshold = *c.Optimizer.Threshold
	}
	if c.Optimizer.TempFormat != "" {
		m.TempFormat = c.Optimizer.TempFormat
	}
	if c.Optimizer.Default != nil {
		m.Default = *c.Optimizer.Default
	}
	for op, cost := range c.Optimizer.Costs {
		m.Costs[op] = cost
	}
	return m
}
