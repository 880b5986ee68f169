// Package config provides configuration management for the report generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"wureport/pkg/utils"
)

// Configuration validation errors.
var (
	ErrNoSources                = errors.New("at least one source is required")
	ErrSourceMissingFamily      = errors.New("family is required")
	ErrSourceMissingURLOrFile   = errors.New("either URL or file path is required")
	ErrSourceInvalidURL         = errors.New("source URL must be an absolute http(s) URL")
	ErrNoEnabledSources         = errors.New("at least one source must be enabled")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingOutputPath        = errors.New("output.path is required")
	ErrInvalidWindowDays        = errors.New("window.days must be at least 1")
	ErrInvalidMaxEntries        = errors.New("limits.max_entries_per_family must be at least 1")
	ErrInvalidBufferSize        = errors.New("limits.buffer_size_kb must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete report generator configuration.
type Config struct {
	Report ReportConfig `yaml:"report"`
}

// ReportConfig contains the pipeline settings.
type ReportConfig struct {
	Output  OutputConfig   `yaml:"output"`
	Sources []SourceConfig `yaml:"sources"`
	Window  WindowConfig   `yaml:"window"`
	Retry   RetryPolicy    `yaml:"retry"`
	Limits  LimitsConfig   `yaml:"limits"`
	Logging LoggingConfig  `yaml:"logging"`
}

// SourceConfig represents one OS family and its update-history page.
type SourceConfig struct {
	Family     string   `yaml:"family"`
	URL        string   `yaml:"url"`
	File       string   `yaml:"file"`
	Strategy   string   `yaml:"strategy"`
	BackupURLs []string `yaml:"backup_urls"`
	Enabled    bool     `yaml:"enabled"`
}

// IsLocalFile returns true if this source reads a saved page from disk.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// GetSource returns the file path if local, or URL if remote.
func (s *SourceConfig) GetSource() string {
	if s.IsLocalFile() {
		return s.File
	}

	return s.URL
}

// GetAllURLs returns all URLs (primary + backups) for a source.
func (s *SourceConfig) GetAllURLs() []string {
	urls := []string{s.URL}
	urls = append(urls, s.BackupURLs...)

	return urls
}

// RetryPolicy defines fetch retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines where and how the report is written.
type OutputConfig struct {
	Path         string `yaml:"path"`
	Title        string `yaml:"title"`
	CreateBackup bool   `yaml:"create_backup"`
}

// WindowConfig defines the date filter window.
type WindowConfig struct {
	Days int `yaml:"days"`
}

// Duration returns the window as a time.Duration.
func (w *WindowConfig) Duration() time.Duration {
	return time.Duration(w.Days) * 24 * time.Hour
}

// LimitsConfig bounds the best-effort extraction.
type LimitsConfig struct {
	MaxEntriesPerFamily int `yaml:"max_entries_per_family"`
	BufferSizeKb        int `yaml:"buffer_size_kb"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a configuration with sane defaults and no sources.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Output: OutputConfig{
				Path:  "index.html",
				Title: "Windows Updates",
			},
			Window: WindowConfig{Days: 30},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Limits: LimitsConfig{
				MaxEntriesPerFamily: 200,
				BufferSizeKb:        2048,
			},
			Logging: LoggingConfig{Level: "info"},
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Report.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0
	httpHelper := utils.NewHTTPHelper()

	for i, src := range c.Report.Sources {
		if src.Family == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingFamily, i)
		}

		if src.URL == "" && src.File == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingURLOrFile, i)
		}

		if src.URL != "" && !httpHelper.IsValidURL(src.URL) {
			return fmt.Errorf("%w: source[%d]: %q", ErrSourceInvalidURL, i, src.URL)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if c.Report.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Report.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Report.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Report.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Report.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if c.Report.Window.Days < 1 {
		return ErrInvalidWindowDays
	}

	if c.Report.Limits.MaxEntriesPerFamily < 1 {
		return ErrInvalidMaxEntries
	}

	if c.Report.Limits.BufferSizeKb < 1 {
		return ErrInvalidBufferSize
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Report.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources, in configuration order.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Report.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, WindowDays: %d, Output: %s}",
		len(c.Report.Sources),
		c.Report.Window.Days,
		c.Report.Output.Path,
	)
}
