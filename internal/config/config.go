// Package config loads the lycmetrics settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration.
type Config struct {
	// Upstream export source
	Upstream UpstreamConfig `toml:"upstream"`

	// Camp classification settings
	Camps CampsConfig `toml:"camps"`

	// Map settings
	Maps MapsConfig `toml:"maps"`
}

// UpstreamConfig points at the hosted game-log export.
type UpstreamConfig struct {
	ExportURL string `toml:"export_url"` // URL of the JSON export
	Timeout   string `toml:"timeout"`    // HTTP timeout (e.g. "30s")
}

// CampsConfig controls role→camp regrouping and the "Autres" bucket.
type CampsConfig struct {
	RegroupLovers       bool     `toml:"regroup_lovers"`
	RegroupVillagers    bool     `toml:"regroup_villagers"`
	RegroupWolfSubRoles bool     `toml:"regroup_wolf_subroles"`
	SmallCamps          []string `toml:"small_camps"` // camps pooled as "Autres"
}

// MapsConfig names the primary maps; anything else falls in the "Autres"
// map bucket.
type MapsConfig struct {
	Primary []string `toml:"primary"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			Timeout: "30s",
		},
		Camps: CampsConfig{
			RegroupLovers:       true,
			RegroupVillagers:    true,
			RegroupWolfSubRoles: true,
			SmallCamps: []string{
				"Agent", "Espion", "Scientifique", "La Bête",
				"Chasseur de primes", "Vaudou", "Zombie", "Amoureux",
			},
		},
		Maps: MapsConfig{
			Primary: []string{"Village", "Manoir"},
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".lycmetrics", "config.toml")
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
