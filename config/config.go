package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvStoreType = "TRADEJOURNAL_STORE"
	EnvStorePath = "TRADEJOURNAL_PATH"
	EnvLogLevel  = "LOG_LEVEL"
)

// Config is the complete tradejournal configuration.
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// JournalConfig holds defaults applied to a fresh journal.
type JournalConfig struct {
	DefaultBaseline float64 `json:"default_baseline" yaml:"default_baseline"`
	Currency        string  `json:"currency" yaml:"currency"`
}

// StoreConfig selects where journal state lives.
type StoreConfig struct {
	Type string `json:"type" yaml:"type"` // "memory", "file" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads envFile when it exists and overrides store and log settings
// from the environment. An empty envFile skips the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	if v := os.Getenv(EnvStoreType); v != "" {
		c.Store.Type = v
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return c.Validate()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.DefaultBaseline <= 0 {
		return fmt.Errorf("journal.default_baseline must be positive")
	}
	if c.Journal.Currency == "" {
		return fmt.Errorf("journal.currency is required")
	}
	switch c.Store.Type {
	case journal.StoreMemory:
	case journal.StoreFile, journal.StoreSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path required for %s store", c.Store.Type)
		}
	default:
		return fmt.Errorf("store.type must be 'memory', 'file' or 'sqlite'")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Logger builds a logrus logger from the log settings.
func (c *Config) Logger() *logrus.Logger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DefaultBaseline: journal.DefaultBaseline,
			Currency:        "USD",
		},
		Store: StoreConfig{
			Type: journal.StoreSQLite,
			Path: "./tradejournal.sqlite",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
