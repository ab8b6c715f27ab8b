// Package config defines umpire configuration and its loading.
//
// Conventions:
// - New() returns defaults; Load layers a YAML file and env vars on top.
// - Errors are wrapped with this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Input is the score event source, a file path or "-" for stdin.
	Input string `koanf:"input"`

	// MetricsAddr, when set, serves /metrics on this address, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// StdinInput selects standard input as the event source.
const StdinInput = "-"

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Input:            StdinInput,
		MetricsNamespace: "tennis",
	}
}
