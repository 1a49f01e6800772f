// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"programme-cost/core/types"
	"programme-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Database contains reference-database settings
	Database DatabaseConfig `json:"database"`

	// Defaults contains programme configuration defaults
	Defaults DefaultsConfig `json:"defaults"`

	// Server contains API server settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DatabaseConfig contains reference-database settings
type DatabaseConfig struct {
	// Path is the path to the SQLite reference snapshot
	Path string `json:"path"`
}

// DefaultsConfig holds the programme defaults merged under every
// request; the options endpoint exposes them to the presentation layer.
type DefaultsConfig struct {
	// Country is the default programme country
	Country string `json:"country"`

	// StartYear is the default first programme year
	StartYear int `json:"start_year"`

	// EndYear is the default last programme year
	EndYear int `json:"end_year"`

	// DiscountRate is the default discount factor/rate
	DiscountRate float64 `json:"discount_rate"`

	// DesiredCurrency is the default output currency
	DesiredCurrency string `json:"desired_currency"`

	// DesiredYear is the default output price year
	DesiredYear int `json:"desired_year"`
}

// ServerConfig contains API server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".programme-cost", "reference.db")

	return &Config{
		Version: "1.0",
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Defaults: DefaultsConfig{
			Country:         "UGA",
			StartYear:       2020,
			EndYear:         2020,
			DiscountRate:    1.03,
			DesiredCurrency: "USD",
			DesiredYear:     2018,
		},
		Server: ServerConfig{
			Addr: ":8080",
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

// ApplyDefaults fills unset programme fields from the configured
// defaults, mirroring the original service's merge-over-defaults
// behaviour. A zero discount rate counts as unset; pass a factor of 1
// to disable discounting explicitly.
func (c *Config) ApplyDefaults(p *types.ProgrammeConfig) {
	d := c.Defaults
	if p.Country == "" {
		p.Country = d.Country
	}
	if p.StartYear == 0 {
		p.StartYear = d.StartYear
	}
	if p.EndYear == 0 {
		p.EndYear = d.EndYear
	}
	if p.DiscountRate == 0 {
		p.DiscountRate = d.DiscountRate
	}
	if p.DesiredCurrency == "" {
		p.DesiredCurrency = d.DesiredCurrency
	}
	if p.DesiredYear == 0 {
		p.DesiredYear = d.DesiredYear
	}
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
