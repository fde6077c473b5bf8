// Package config provides configuration management for the Formulate CLI.
//
// Configuration is layered: built-in defaults, then an optional
// formulate.yaml, then FORMULATE_* environment variables, then command-line
// flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	From       string             `koanf:"from"`
	To         string             `koanf:"to"`
	Int2Float  bool               `koanf:"int2float"`
	Verbose    bool               `koanf:"verbose"`
	Optimizer  OptimizerConfig    `koanf:"optimizer"`
}

// OptimizerConfig overrides the common-subexpression elimination pass.
type OptimizerConfig struct {
	Threshold  *float64           `koanf:"threshold"`
	TempFormat string             `koanf:"temp_format"`
	Costs      map[string]float64 `koanf:"costs"`
	Default    *float64           `koanf:"default_cost"`
}

// Default configuration values.
const (
	DefaultFrom = "mathematica"
	DefaultTo   = "python"
)
