package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultInput          = "data/products.csv"
	DefaultOutput         = "data/transformed_products.csv"
	DefaultLogLevel       = "info"
	DefaultFormat         = "text"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvConfigFile = "PRODUCTETL_CONFIG"
	EnvInput      = "PRODUCTETL_INPUT"
	EnvOutput     = "PRODUCTETL_OUTPUT"
	EnvLogLevel   = "PRODUCTETL_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultFormat,
		},
		Report: ReportConfig{
			Format: DefaultFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// WithPaths returns a copy of c with non-empty positional paths applied.
func (c *Config) WithPaths(input, output string) *Config {
	out := *c
	if input != "" {
		out.Input = input
	}
	if output != "" {
		out.Output = output
	}
	return &out
}
