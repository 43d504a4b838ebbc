package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Set only required env var
	os.Setenv("INTERLEX_API_KEY", "test-key")
	defer os.Unsetenv("INTERLEX_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Registry.Timeout != 30*time.Second {
		t.Errorf("Registry.Timeout = %s, want %s", cfg.Registry.Timeout, 30*time.Second)
	}
	if cfg.Registry.BaseURL != "" {
		t.Errorf("Registry.BaseURL = %q, want empty", cfg.Registry.BaseURL)
	}
	if cfg.Ingest.Timeout != 30*time.Minute {
		t.Errorf("Ingest.Timeout = %s, want %s", cfg.Ingest.Timeout, 30*time.Minute)
	}
	if cfg.Ingest.SheetName != "Sheet1" {
		t.Errorf("Ingest.SheetName = %q, want %q", cfg.Ingest.SheetName, "Sheet1")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("INTERLEX_API_KEY", "test-key")
	os.Setenv("INTERLEX_TIMEOUT", "5s")
	os.Setenv("INTERLEX_USER_ID", "32290")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("INTERLEX_API_KEY")
		os.Unsetenv("INTERLEX_TIMEOUT")
		os.Unsetenv("INTERLEX_USER_ID")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Registry.Timeout != 5*time.Second {
		t.Errorf("Registry.Timeout = %s, want %s", cfg.Registry.Timeout, 5*time.Second)
	}
	if cfg.Registry.UserID != "32290" {
		t.Errorf("Registry.UserID = %q, want %q", cfg.Registry.UserID, "32290")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	// Test that SCICRUNCH_API_KEY works as fallback
	os.Unsetenv("INTERLEX_API_KEY")
	os.Setenv("SCICRUNCH_API_KEY", "alt-key")
	defer os.Unsetenv("SCICRUNCH_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Registry.APIKey != "alt-key" {
		t.Errorf("Registry.APIKey = %q, want %q", cfg.Registry.APIKey, "alt-key")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("INTERLEX_API_KEY")
	os.Unsetenv("SCICRUNCH_API_KEY")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing INTERLEX_API_KEY")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	os.Setenv("INTERLEX_API_KEY", "test-key")
	os.Setenv("INTERLEX_TIMEOUT", "not-a-duration")
	defer func() {
		os.Unsetenv("INTERLEX_API_KEY")
		os.Unsetenv("INTERLEX_TIMEOUT")
	}()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
}

func TestValidate_BadBaseURL(t *testing.T) {
	os.Setenv("INTERLEX_API_KEY", "test-key")
	os.Setenv("INTERLEX_BASE_URL", "not-a-url")
	defer func() {
		os.Unsetenv("INTERLEX_API_KEY")
		os.Unsetenv("INTERLEX_BASE_URL")
	}()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for relative base URL")
	}
}

func TestString_MasksAPIKey(t *testing.T) {
	cfg := &Config{}
	cfg.Registry.APIKey = "super-secret"

	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Errorf("String() leaked API key: %s", s)
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Errorf("String() missing mask marker: %s", s)
	}
}
