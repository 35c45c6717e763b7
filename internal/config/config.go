package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jward/shapes"
)

// Config holds all shapes CLI configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Scripts  ScriptsConfig  `yaml:"scripts"`
	Logging  LoggingConfig  `yaml:"logging"`
	Output   OutputConfig   `yaml:"output"`

	// Report lists the shapes printed by "shapes report" when no stored
	// shapes are requested. Empty means the built-in circle/rectangle pair.
	Report []shapes.Spec `yaml:"report,omitempty"`
}

// DatabaseConfig locates the SQLite catalog.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ScriptsConfig selects where catalog scripts are loaded from.
type ScriptsConfig struct {
	Dir string `yaml:"dir"` // empty means the embedded scripts
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json or console
}

// OutputConfig configures command output.
type OutputConfig struct {
	Format string `yaml:"format"` // json or text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(".shapes", "catalog.db")},
		Logging:  LoggingConfig{Level: "warn", Encoding: "console"},
		Output:   OutputConfig{Format: "text"},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SHAPES_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SHAPES_SCRIPTS_DIR"); v != "" {
		c.Scripts.Dir = v
	}
	if v := os.Getenv("SHAPES_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SHAPES_FORMAT"); v != "" {
		c.Output.Format = v
	}
}

// Validate checks enumerated settings and the report shapes.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid output format %q: must be json or text", c.Output.Format)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding %q: must be json or console", c.Logging.Encoding)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if _, err := c.ReportShapes(); err != nil {
		return err
	}
	return nil
}

// ReportShapes builds the configured report set, falling back to
// shapes.DefaultShapes.
func (c *Config) ReportShapes() ([]shapes.Shape, error) {
	if len(c.Report) == 0 {
		return shapes.DefaultShapes(), nil
	}
	out := make([]shapes.Shape, 0, len(c.Report))
	for i, sp := range c.Report {
		s, err := sp.Build()
		if err != nil {
			return nil, fmt.Errorf("report shape %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}
