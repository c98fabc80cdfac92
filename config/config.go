// Package config provides configuration loading and management for oboowl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete oboowl configuration
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Output     OutputConfig     `yaml:"output"`
	Storage    StorageConfig    `yaml:"storage"`
	NATS       NATSConfig       `yaml:"nats"`
	Watch      WatchConfig      `yaml:"watch"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Log        LogConfig        `yaml:"log"`
}

// ConversionConfig configures identifier resolution
type ConversionConfig struct {
	// DefaultOntology names documents that have no ontology header tag
	DefaultOntology string `yaml:"default_ontology"`
	// IDSpaces maps id space prefixes to IRI prefixes (overrides idspace headers)
	IDSpaces map[string]string `yaml:"idspaces"`
	// EquivalentXrefPrefixes lists xref namespaces treated as equivalent relations
	EquivalentXrefPrefixes []string `yaml:"equivalent_xref_prefixes"`
}

// OutputConfig configures serialization
type OutputConfig struct {
	// Format is the export format (ofn or json)
	Format string `yaml:"format"`
	// Directory receives converted files (empty = next to the input)
	Directory string `yaml:"directory"`
}

// StorageConfig configures the SQLite store
type StorageConfig struct {
	// SQLitePath is the database file (empty = no persistence)
	SQLitePath string `yaml:"sqlite_path"`
}

// NATSConfig configures the conversion service
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Subject receives conversion requests
	Subject string `yaml:"subject"`
	// QueueGroup load-balances requests across workers
	QueueGroup string `yaml:"queue_group"`
	// Timeout bounds a single conversion
	Timeout time.Duration `yaml:"timeout"`
}

// WatchConfig configures the file watcher
type WatchConfig struct {
	// Debounce delays re-conversion after the last change
	Debounce time.Duration `yaml:"debounce"`
	// Extensions are the file extensions that trigger conversion
	Extensions []string `yaml:"extensions"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address (empty = disabled)
	Addr string `yaml:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Conversion: ConversionConfig{
			IDSpaces: map[string]string{},
		},
		Output: OutputConfig{
			Format:    "ofn",
			Directory: "",
		},
		NATS: NATSConfig{
			URL:        "nats://localhost:4222",
			Subject:    "oboowl.convert",
			QueueGroup: "oboowl-converters",
			Timeout:    2 * time.Minute,
		},
		Watch: WatchConfig{
			Debounce:   500 * time.Millisecond,
			Extensions: []string{".obo"},
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

var validFormats = map[string]bool{"ofn": true, "json": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output.format must be ofn or json, got %q", c.Output.Format)
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.NATS.Subject == "" {
		return fmt.Errorf("nats.subject is required")
	}
	if c.NATS.Timeout < 0 {
		return fmt.Errorf("nats.timeout must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	for ns, prefix := range c.Conversion.IDSpaces {
		if ns == "" || prefix == "" {
			return fmt.Errorf("conversion.idspaces entries need a prefix and an IRI")
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
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

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Conversion
	if other.Conversion.DefaultOntology != "" {
		c.Conversion.DefaultOntology = other.Conversion.DefaultOntology
	}
	if len(other.Conversion.IDSpaces) > 0 {
		if c.Conversion.IDSpaces == nil {
			c.Conversion.IDSpaces = make(map[string]string, len(other.Conversion.IDSpaces))
		}
		for ns, prefix := range other.Conversion.IDSpaces {
			c.Conversion.IDSpaces[ns] = prefix
		}
	}
	if len(other.Conversion.EquivalentXrefPrefixes) > 0 {
		c.Conversion.EquivalentXrefPrefixes = other.Conversion.EquivalentXrefPrefixes
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Directory != "" {
		c.Output.Directory = other.Output.Directory
	}

	// Storage
	if other.Storage.SQLitePath != "" {
		c.Storage.SQLitePath = other.Storage.SQLitePath
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
	if other.NATS.QueueGroup != "" {
		c.NATS.QueueGroup = other.NATS.QueueGroup
	}
	if other.NATS.Timeout != 0 {
		c.NATS.Timeout = other.NATS.Timeout
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if len(other.Watch.Extensions) > 0 {
		c.Watch.Extensions = other.Watch.Extensions
	}

	// Metrics and logging
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
