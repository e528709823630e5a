// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"tollsweep/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Simulation contains simulator invocation settings
	Simulation SimulationConfig `json:"simulation"`

	// Economics contains cost accounting settings
	Economics EconomicsConfig `json:"economics"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// SimulationConfig contains simulator-related settings
type SimulationConfig struct {
	// Binary is the path to the external simulator executable
	Binary string `json:"binary"`

	// ScenariosDir is where scenario artifacts and outputs live
	ScenariosDir string `json:"scenarios_dir"`

	// NetworkFile is the road-network description consumed read-only
	NetworkFile string `json:"network_file"`

	// Workers is the number of concurrent scenario pipelines (0 = sequential)
	Workers int `json:"workers"`
}

// EconomicsConfig contains cost accounting settings
type EconomicsConfig struct {
	// GridCostPerKWh is the electricity price in EUR per kWh
	GridCostPerKWh float64 `json:"grid_cost_per_kwh"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, csv, markdown, json)
	DefaultFormat string `json:"default_format"`

	// ReportFile is the human-readable report destination
	ReportFile string `json:"report_file"`

	// TableFile is the machine-readable table destination
	TableFile string `json:"table_file"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Simulation: SimulationConfig{
			Binary:       "sumo",
			ScenariosDir: "scenarios",
			NetworkFile:  "vci.net.xml",
			Workers:      0,
		},
		Economics: EconomicsConfig{
			GridCostPerKWh: 0.20,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ReportFile:    "simulation_report.md",
			TableFile:     "simulation_results.csv",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
