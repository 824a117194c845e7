// Package config provides configuration management for the inventory store.
//
// Config file locations (priority order):
//  1. $INVENTORY_CONFIG
//  2. ./inventory.yaml
//  3. $XDG_CONFIG_HOME/inventory/config.yaml
//  4. ~/.config/inventory/config.yaml
//  5. /etc/inventory/config.yaml
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultDatabaseName = "item_database"
	defaultLogLevel     = "warn"
	defaultLogFormat    = "text"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, errors.Wrap(err, "parse config")
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Dir:  DefaultDataDir(),
			Name: defaultDatabaseName,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Dir == "" {
		c.Database.Dir = DefaultDataDir()
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDatabaseName
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Database: %s/%s\n", c.Database.Dir, c.Database.Name)
	summary += fmt.Sprintf("Log: level=%s format=%s", c.Log.Level, c.Log.Format)
	if c.Metrics.Addr != "" {
		summary += fmt.Sprintf("\nMetrics: %s", c.Metrics.Addr)
	}
	return summary
}
