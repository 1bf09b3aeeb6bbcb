package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when neither a flag nor SPEND_CONFIG
// names one.
const DefaultPath = "spend.yaml"

// Environment variables read by LoadEnv and ApplyEnv.
const (
	EnvConfigPath = "SPEND_CONFIG"
	EnvLogLevel   = "SPEND_LOG_LEVEL"
)

// Config represents the top-level spend.yaml configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
	Session SessionConfig `yaml:"session"`
}

// DisplayConfig controls how amounts and dates are rendered.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	DateFormat     string `yaml:"date_format"` // Go time layout
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// SessionConfig controls the interactive session.
type SessionConfig struct {
	Prompt string `yaml:"prompt"`
}

// Load reads a spend.yaml file from disk. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			CurrencySymbol: "$",
			DateFormat:     "Jan 02, 2006",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Session: SessionConfig{
			Prompt: "spend> ",
		},
	}
}

var validLevels = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q: want text or json", c.Logging.Format)
	}
	level := strings.ToLower(c.Logging.Level)
	for _, l := range validLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("logging.level %q: want one of %s", c.Logging.Level, strings.Join(validLevels, ", "))
}

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// PathFromEnv returns SPEND_CONFIG if set, otherwise fallback.
func PathFromEnv(fallback string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return fallback
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() error {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Logging.Level = lvl
	}
	return c.Validate()
}
