// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Registry RegistryConfig
	Ingest   IngestConfig
	Logging  LoggingConfig
}

// RegistryConfig holds InterLex registry client settings.
type RegistryConfig struct {
	// BaseURL overrides the registry endpoint. When empty the endpoint is
	// chosen by the --production flag (test3.scicrunch.org by default).
	BaseURL string `env:"INTERLEX_BASE_URL"`

	// APIKey authenticates every registry call (required)
	// Supports both INTERLEX_API_KEY and SCICRUNCH_API_KEY for compatibility
	APIKey string `env:"INTERLEX_API_KEY" envAlt:"SCICRUNCH_API_KEY" required:"true"`

	// UserID scopes duplicate-label queries. When empty it is resolved
	// from the registry's user endpoint at startup.
	UserID string `env:"INTERLEX_USER_ID"`

	// Timeout is the per-request timeout for registry calls (default: 30s)
	Timeout time.Duration `env:"INTERLEX_TIMEOUT" default:"30s"`
}

// IngestConfig holds batch processing settings.
type IngestConfig struct {
	// Timeout is the maximum duration for a whole batch run (default: 30m)
	Timeout time.Duration `env:"INGEST_TIMEOUT" default:"30m"`

	// SheetName is the worksheet read in spreadsheet mode when no
	// --sheet flag is given (default: Sheet1)
	SheetName string `env:"INGEST_SHEET_NAME" default:"Sheet1"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Registry.APIKey == "" {
		errs = append(errs, "INTERLEX_API_KEY is required")
	}
	if c.Registry.Timeout <= 0 {
		errs = append(errs, "INTERLEX_TIMEOUT must be positive")
	}
	if c.Registry.BaseURL != "" && !strings.Contains(c.Registry.BaseURL, "://") {
		errs = append(errs, fmt.Sprintf("INTERLEX_BASE_URL (%q) must be an absolute URL", c.Registry.BaseURL))
	}

	if c.Ingest.Timeout <= 0 {
		errs = append(errs, "INGEST_TIMEOUT must be positive")
	}
	if c.Ingest.SheetName == "" {
		errs = append(errs, "INGEST_SHEET_NAME must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The API key is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Registry: {BaseURL: %q, APIKey: [MASKED], UserID: %q, Timeout: %s}, ",
		c.Registry.BaseURL, c.Registry.UserID, c.Registry.Timeout))
	b.WriteString(fmt.Sprintf("Ingest: {Timeout: %s, SheetName: %q}, ",
		c.Ingest.Timeout, c.Ingest.SheetName))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
