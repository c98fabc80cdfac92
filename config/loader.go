package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "oboowl.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/oboowl"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"

	// EnvConfigPath names a config file when no --config flag is given
	EnvConfigPath = "OBOOWL_CONFIG"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "OBOOWL_"
)

// envOverrides maps OBOOWL_* variables onto config fields. They apply
// after every file layer.
var envOverrides = map[string]func(c *Config, v string) error{
	"NATS_URL":         func(c *Config, v string) error { c.NATS.URL = v; return nil },
	"NATS_SUBJECT":     func(c *Config, v string) error { c.NATS.Subject = v; return nil },
	"NATS_QUEUE_GROUP": func(c *Config, v string) error { c.NATS.QueueGroup = v; return nil },
	"NATS_TIMEOUT":     durationOverride(func(c *Config) *time.Duration { return &c.NATS.Timeout }),
	"FORMAT":           func(c *Config, v string) error { c.Output.Format = strings.ToLower(v); return nil },
	"OUTPUT_DIR":       func(c *Config, v string) error { c.Output.Directory = v; return nil },
	"SQLITE_PATH":      func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	"DEFAULT_ONTOLOGY": func(c *Config, v string) error { c.Conversion.DefaultOntology = v; return nil },
	"WATCH_DEBOUNCE":   durationOverride(func(c *Config) *time.Duration { return &c.Watch.Debounce }),
	"METRICS_ADDR":     func(c *Config, v string) error { c.Metrics.Addr = v; return nil },
	"LOG_LEVEL":        func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil },
}

func durationOverride(field func(*Config) *time.Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = d
		return nil
	}
}

// layer is one config file in precedence order.
type layer struct {
	name     string
	path     string
	required bool
}

// Loader resolves configuration from files and the environment.
type Loader struct {
	logger *slog.Logger
	getenv func(string) string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, getenv: os.Getenv}
}

// Load builds the configuration. Later sources win:
//
//	defaults
//	~/.config/oboowl/config.yaml
//	the nearest oboowl.yaml at or above the working directory
//	explicit, or $OBOOWL_CONFIG when explicit is empty
//	OBOOWL_* environment variables
//
// The user and project files are optional. A named file must exist.
func (l *Loader) Load(explicit string) (*Config, error) {
	cfg := DefaultConfig()

	for _, ly := range l.layers(explicit) {
		loaded, err := LoadFromFile(ly.path)
		switch {
		case err == nil:
			l.logger.Debug("Loaded config", slog.String("layer", ly.name), slog.String("path", ly.path))
			cfg.Merge(loaded)
		case ly.required:
			return nil, fmt.Errorf("%s config: %w", ly.name, err)
		case !errors.Is(err, fs.ErrNotExist):
			l.logger.Warn("Skipping unreadable config",
				slog.String("layer", ly.name),
				slog.String("path", ly.path),
				slog.String("error", err.Error()))
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) layers(explicit string) []layer {
	var out []layer
	if p := l.userConfigPath(); p != "" {
		out = append(out, layer{name: "user", path: p})
	}
	if p := l.findProjectConfig(); p != "" {
		out = append(out, layer{name: "project", path: p})
	}
	if explicit == "" {
		explicit = l.getenv(EnvConfigPath)
	}
	if explicit != "" {
		out = append(out, layer{name: "explicit", path: explicit, required: true})
	}
	return out
}

func (l *Loader) applyEnv(cfg *Config) error {
	for key, set := range envOverrides {
		v := strings.TrimSpace(l.getenv(EnvPrefix + key))
		if v == "" {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		l.logger.Debug("Applied environment override", slog.String("var", EnvPrefix+key))
	}
	return nil
}

// EnsureUserConfig writes the default config to the user config path
// unless a file is already there.
func (l *Loader) EnsureUserConfig() error {
	path := l.userConfigPath()
	if path == "" {
		return errors.New("cannot resolve home directory")
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := DefaultConfig().SaveToFile(path); err != nil {
		return err
	}
	l.logger.Info("Created default user config", slog.String("path", path))
	return nil
}

func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks up from the working directory to the first
// oboowl.yaml.
func (l *Loader) findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
