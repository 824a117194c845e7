package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Database.Dir != filepath.Join("/tmp/xdg-data", AppDirName) {
		t.Errorf("Database.Dir = %s, want XDG data dir", cfg.Database.Dir)
	}
	if cfg.Database.Name != "item_database" {
		t.Errorf("Database.Name = %s, want item_database", cfg.Database.Name)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want warn/text", cfg.Log)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("Metrics.Addr = %s, want disabled", cfg.Metrics.Addr)
	}
}

func TestDefaultDataDir(t *testing.T) {
	tests := []struct {
		name    string
		xdgData string
		home    string
		want    string
	}{
		{"xdg data home", "/xdg", "/home/u", "/xdg/inventory"},
		{"home fallback", "", "/home/u", "/home/u/.local/share/inventory"},
		{"working directory", "", "", "./data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_DATA_HOME", tt.xdgData)
			t.Setenv("HOME", tt.home)
			if got := DefaultDataDir(); got != tt.want {
				t.Errorf("DefaultDataDir() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Dir = "/var/lib/inventory"
	cfg.Log.Level = "debug"
	cfg.Metrics.Addr = ":9090"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Database.Dir != "/var/lib/inventory" {
		t.Errorf("Database.Dir = %s, want /var/lib/inventory", loaded.Database.Dir)
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", loaded.Log.Level)
	}
	if loaded.Metrics.Addr != ":9090" {
		t.Errorf("Metrics.Addr = %s, want :9090", loaded.Metrics.Addr)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("database:\n  dir: /srv/items\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Database.Dir != "/srv/items" {
		t.Errorf("Database.Dir = %s, want /srv/items", cfg.Database.Dir)
	}
	if cfg.Database.Name != "item_database" {
		t.Errorf("Database.Name = %s, want default", cfg.Database.Name)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %s, want default", cfg.Log.Format)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.HasPrefix(err.Error(), "read config: ") {
		t.Errorf("expected read error, got %v", err)
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("errors.Cause(%v) is not a not-exist error", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("database: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadFromPath(bad); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	cfg := DefaultConfig()
	if err := cfg.Save(filepath.Join(tmpDir, ConfigFileName)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)

	// Explicit path doesn't exist, should fall back to working directory
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(); filepath.Base(found) != ConfigFileName {
		t.Errorf("FindConfigPath() = %q, want working directory config", found)
	}

	// Explicit path that exists wins
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %q, want %q", found, explicit)
	}
}

func TestLoadWithoutConfigReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	if fileExists(filepath.Join("/etc", AppDirName, "config.yaml")) {
		t.Skip("system config present")
	}

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Database.Name != "item_database" {
		t.Errorf("Database.Name = %s, want default", cfg.Database.Name)
	}
}

func TestInitLog(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	if err := InitLog(LogConfig{Level: "debug", Format: "json"}); err != nil {
		t.Fatalf("InitLog() error: %v", err)
	}
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level = %s, want debug", log.GetLevel())
	}
	if _, ok := log.StandardLogger().Formatter.(*log.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSONFormatter", log.StandardLogger().Formatter)
	}

	if err := InitLog(LogConfig{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := InitLog(LogConfig{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Dir = "/data"
	cfg.Metrics.Addr = ":9090"

	summary := cfg.Summary()
	for _, want := range []string{"/data/item_database", "level=warn", "Metrics: :9090"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() missing %q:\n%s", want, summary)
		}
	}
}
