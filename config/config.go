// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DashboardConfig configures the platform API client.
// The API key and organization ID come from the environment only and
// are never read from the config file.
type DashboardConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"-"`
	OrgID      string        `yaml:"-"`
	Timeout    time.Duration `yaml:"timeout"`
	PerPage    int           `yaml:"per_page"`
	MaxRetries int           `yaml:"max_retries"`
}

// ReportConfig configures report output and the query window bounds.
type ReportConfig struct {
	OutputDir   string `yaml:"output_dir"`
	FilePrefix  string `yaml:"file_prefix"`
	DefaultDays int    `yaml:"default_days"`
	MaxDays     int    `yaml:"max_days"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// ValidationError reports a missing or out-of-range configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load builds the configuration for one run. The config file is
// optional: with path == "" only defaults and the environment apply.
// A .env file in the working directory seeds the environment first
// (existing variables win). Environment variables always override
// file values.
//
// Environment variables:
//
//	APIREPORT_API_KEY     - Dashboard API key (required)
//	APIREPORT_ORG_ID      - Organization ID (required)
//	APIREPORT_BASE_URL    - Dashboard API base URL
//	APIREPORT_TIMEOUT     - Per-request timeout (default: 30s)
//	APIREPORT_PER_PAGE    - Page size, 1-1000 (default: 1000)
//	APIREPORT_MAX_RETRIES - Retries for transient failures (default: 5)
//	APIREPORT_OUTPUT_DIR  - Directory for CSV exports (default: .)
//	APIREPORT_LOG_LEVEL   - debug, info, warn, error (default: info)
//	APIREPORT_LOG_FORMAT  - json or console (default: console)
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		data = []byte(os.ExpandEnv(string(data)))

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies APIREPORT_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Dashboard configuration
	if v := os.Getenv("APIREPORT_API_KEY"); v != "" {
		cfg.Dashboard.APIKey = v
	}
	if v := os.Getenv("APIREPORT_ORG_ID"); v != "" {
		cfg.Dashboard.OrgID = v
	}
	if v := os.Getenv("APIREPORT_BASE_URL"); v != "" {
		cfg.Dashboard.BaseURL = v
	}
	if v := os.Getenv("APIREPORT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Dashboard.Timeout = d
		}
	}
	if v := os.Getenv("APIREPORT_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.PerPage = n
		}
	}
	if v := os.Getenv("APIREPORT_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.MaxRetries = n
		}
	}

	// Report configuration
	if v := os.Getenv("APIREPORT_OUTPUT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}

	// Logging configuration
	if v := os.Getenv("APIREPORT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("APIREPORT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Dashboard.BaseURL == "" {
		cfg.Dashboard.BaseURL = "https://api.dashboard.example.com/v1"
	}
	if cfg.Dashboard.Timeout == 0 {
		cfg.Dashboard.Timeout = 30 * time.Second
	}
	if cfg.Dashboard.PerPage == 0 {
		cfg.Dashboard.PerPage = 1000
	}
	if cfg.Dashboard.MaxRetries == 0 {
		cfg.Dashboard.MaxRetries = 5
	}

	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "."
	}
	if cfg.Report.FilePrefix == "" {
		cfg.Report.FilePrefix = "api_usage"
	}
	if cfg.Report.DefaultDays == 0 {
		cfg.Report.DefaultDays = 1
	}
	if cfg.Report.MaxDays == 0 {
		cfg.Report.MaxDays = 31 // platform log retention
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	if cfg.Dashboard.APIKey == "" {
		return &ValidationError{Field: "dashboard.api_key", Reason: "APIREPORT_API_KEY is required"}
	}
	if cfg.Dashboard.OrgID == "" {
		return &ValidationError{Field: "dashboard.org_id", Reason: "APIREPORT_ORG_ID is required"}
	}
	if cfg.Dashboard.Timeout < 0 {
		return &ValidationError{Field: "dashboard.timeout", Reason: "must not be negative"}
	}
	if cfg.Dashboard.PerPage < 1 || cfg.Dashboard.PerPage > 1000 {
		return &ValidationError{Field: "dashboard.per_page", Reason: fmt.Sprintf("must be between 1 and 1000, got %d", cfg.Dashboard.PerPage)}
	}
	if cfg.Dashboard.MaxRetries < 0 {
		return &ValidationError{Field: "dashboard.max_retries", Reason: "must not be negative"}
	}
	if cfg.Report.DefaultDays < 1 {
		return &ValidationError{Field: "report.default_days", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.Report.DefaultDays)}
	}
	if cfg.Report.MaxDays < cfg.Report.DefaultDays {
		return &ValidationError{Field: "report.max_days", Reason: fmt.Sprintf("must be at least default_days (%d), got %d", cfg.Report.DefaultDays, cfg.Report.MaxDays)}
	}

	return nil
}
