package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "INVENTORY_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory
	ConfigFileName = "inventory.yaml"
	// AppDirName is the directory name used under XDG config and data homes
	AppDirName = "inventory"
)

// candidatePaths lists config locations in priority order
func candidatePaths() []string {
	var paths []string

	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}
	paths = append(paths, ConfigFileName)

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, AppDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", AppDirName, "config.yaml"))
	}

	return append(paths, filepath.Join("/etc", AppDirName, "config.yaml"))
}

// FindConfigPath returns the first existing config file, or empty string.
// A missing $INVENTORY_CONFIG target falls through to the next location.
func FindConfigPath() string {
	for _, path := range candidatePaths() {
		if !fileExists(path) {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// DefaultConfigPath returns the preferred location for a new config file
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, AppDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", AppDirName, "config.yaml")
	}
	return ConfigFileName
}

// DefaultDataDir returns where the item database lives when not configured:
// $XDG_DATA_HOME/inventory, ~/.local/share/inventory, or ./data
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppDirName)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "share", AppDirName)
	}
	return "./data"
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
