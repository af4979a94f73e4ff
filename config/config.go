// Package config provides configuration loading for the zqxgen command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/zqx/format"
)

// Config is the complete zqxgen configuration.
type Config struct {
	Lexicon LexiconConfig `yaml:"lexicon"`
	Output  OutputConfig  `yaml:"output"`
	Table   TableConfig   `yaml:"table"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

// LexiconConfig selects the vocabulary.
type LexiconConfig struct {
	// Path is a lexicon YAML file (empty = embedded default lexicon)
	Path string `yaml:"path"`
	// Exclusions replaces the default tier-2 exclusion set when non-empty
	Exclusions []string `yaml:"exclusions"`
}

// OutputConfig names the files a generation writes. Empty paths are skipped.
type OutputConfig struct {
	Markdown string `yaml:"markdown"`
	Table    string `yaml:"table"`
	SQLite   string `yaml:"sqlite"`
	Metrics  string `yaml:"metrics"`
}

// TableConfig configures the binary table file.
type TableConfig struct {
	// Compression is one of none, zstd, s2, lz4, xz
	Compression string `yaml:"compression"`
	// ByteOrder is little or big
	ByteOrder string `yaml:"byte_order"`
}

// RenderConfig configures the markdown document.
type RenderConfig struct {
	Title          string   `yaml:"title"`
	QuickReference []string `yaml:"quick_reference"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Markdown: "zqx.md",
		},
		Table: TableConfig{
			Compression: "zstd",
			ByteOrder:   "little",
		},
		Render: RenderConfig{
			Title: "ZQX Code Table",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.CompressionType(); err != nil {
		return fmt.Errorf("table.compression: %w", err)
	}
	if _, err := c.ByteOrder(); err != nil {
		return fmt.Errorf("table.byte_order: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// CompressionType parses Table.Compression.
func (c *Config) CompressionType() (format.CompressionType, error) {
	return format.ParseCompression(c.Table.Compression)
}

// ByteOrder parses Table.ByteOrder.
func (c *Config) ByteOrder() (format.ByteOrder, error) {
	return format.ParseByteOrder(c.Table.ByteOrder)
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	return readFile(path, DefaultConfig())
}

// readFile decodes path into config. Keys absent from the file keep
// whatever config already holds.
func readFile(path string, config *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Lexicon
	if other.Lexicon.Path != "" {
		c.Lexicon.Path = other.Lexicon.Path
	}
	if len(other.Lexicon.Exclusions) > 0 {
		c.Lexicon.Exclusions = other.Lexicon.Exclusions
	}

	// Output
	if other.Output.Markdown != "" {
		c.Output.Markdown = other.Output.Markdown
	}
	if other.Output.Table != "" {
		c.Output.Table = other.Output.Table
	}
	if other.Output.SQLite != "" {
		c.Output.SQLite = other.Output.SQLite
	}
	if other.Output.Metrics != "" {
		c.Output.Metrics = other.Output.Metrics
	}

	// Table
	if other.Table.Compression != "" {
		c.Table.Compression = other.Table.Compression
	}
	if other.Table.ByteOrder != "" {
		c.Table.ByteOrder = other.Table.ByteOrder
	}

	// Render
	if other.Render.Title != "" {
		c.Render.Title = other.Render.Title
	}
	if len(other.Render.QuickReference) > 0 {
		c.Render.QuickReference = other.Render.QuickReference
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
