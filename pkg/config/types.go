// Package config provides configuration loading and validation for productetl.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Input is the catalog CSV to read.
	Input string `yaml:"input"`

	// Output is the CSV file to write.
	Output string `yaml:"output"`

	Log      LogConfig       `yaml:"log"`
	Report   ReportConfig    `yaml:"report"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// ReportConfig controls how the run summary is printed.
type ReportConfig struct {
	// Format is text or json.
	Format string `yaml:"format"`

	// Verbose adds duration and per-reason skip counts.
	Verbose bool `yaml:"verbose,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnIssues fires only when rows were skipped or the run reported an error (default).
	WebhookTriggerOnIssues WebhookTrigger = "on_issues"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending run reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_issues" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
