// Package config provides configuration loading for band plan extraction.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete extraction configuration
type Config struct {
	// Source is the document to read (fixture, HTML export or page images)
	Source string `yaml:"source"`
	// Database is the SQLite file records are written to
	Database string `yaml:"database"`
	// Append keeps existing rows instead of recreating the schema
	Append bool `yaml:"append"`
	// Pages locates the table and the two glossaries
	Pages PagesConfig `yaml:"pages"`
	// HeaderRows is the number of column header rows skipped per table
	HeaderRows int `yaml:"header_rows"`
	// MetricsFile receives Prometheus counters after a run (empty = none)
	MetricsFile string `yaml:"metrics_file"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// PagesConfig holds the physical page ranges of each document section
type PagesConfig struct {
	Allocations   PageRange `yaml:"allocations"`
	Domestic      PageRange `yaml:"domestic_footnotes"`
	International PageRange `yaml:"international_footnotes"`
}

// PageRange is an inclusive, 1-indexed span of physical pages
type PageRange struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// IsZero reports whether the range is unset
func (r PageRange) IsZero() bool { return r.First == 0 && r.Last == 0 }

// String formats the range as first-last
func (r PageRange) String() string { return fmt.Sprintf("%d-%d", r.First, r.Last) }

// Validate checks the range is non-empty and in order
func (r PageRange) Validate() error {
	if r.First < 1 {
		return fmt.Errorf("first page must be at least 1, got %d", r.First)
	}
	if r.Last < r.First {
		return fmt.Errorf("last page %d is before first page %d", r.Last, r.First)
	}
	return nil
}

// ParsePageRange parses "first-last" or a single page number
func ParsePageRange(s string) (PageRange, error) {
	var r PageRange
	s = strings.TrimSpace(s)
	first, last, ok := strings.Cut(s, "-")
	if !ok {
		last = first
	}
	var err error
	if r.First, err = strconv.Atoi(strings.TrimSpace(first)); err != nil {
		return PageRange{}, fmt.Errorf("invalid page range %q", s)
	}
	if r.Last, err = strconv.Atoi(strings.TrimSpace(last)); err != nil {
		return PageRange{}, fmt.Errorf("invalid page range %q", s)
	}
	if err := r.Validate(); err != nil {
		return PageRange{}, fmt.Errorf("invalid page range %q: %w", s, err)
	}
	return r, nil
}

// DefaultConfig returns the layout of the published allocation table
func DefaultConfig() *Config {
	return &Config{
		Database: "acma_bandplan.db",
		Pages: PagesConfig{
			Allocations:   PageRange{First: 31, Last: 112},
			Domestic:      PageRange{First: 112, Last: 119},
			International: PageRange{First: 120, Last: 214},
		},
		HeaderRows: 2,
		LogLevel:   "info",
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if err := c.Pages.Allocations.Validate(); err != nil {
		return fmt.Errorf("pages.allocations: %w", err)
	}
	if err := c.Pages.Domestic.Validate(); err != nil {
		return fmt.Errorf("pages.domestic_footnotes: %w", err)
	}
	if err := c.Pages.International.Validate(); err != nil {
		return fmt.Errorf("pages.international_footnotes: %w", err)
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Source != "" {
		c.Source = other.Source
	}
	if other.Database != "" {
		c.Database = other.Database
	}
	if other.Append {
		c.Append = true
	}

	if !other.Pages.Allocations.IsZero() {
		c.Pages.Allocations = other.Pages.Allocations
	}
	if !other.Pages.Domestic.IsZero() {
		c.Pages.Domestic = other.Pages.Domestic
	}
	if !other.Pages.International.IsZero() {
		c.Pages.International = other.Pages.International
	}

	if other.HeaderRows != 0 {
		c.HeaderRows = other.HeaderRows
	}
	if other.MetricsFile != "" {
		c.MetricsFile = other.MetricsFile
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
