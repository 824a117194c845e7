package config

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// DatabaseConfig locates the item database file
type DatabaseConfig struct {
	Dir  string `yaml:"dir"`  // data directory, created on first use
	Name string `yaml:"name"` // file name inside Dir
}

// LogConfig configures handling of application log events
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error, fatal
	Format string `yaml:"format"` // text, json, color
}

// MetricsConfig configures the optional prometheus endpoint
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"` // empty disables the endpoint
}
