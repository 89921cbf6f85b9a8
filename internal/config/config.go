package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Alan-Collins/SpellTower-solver/internal/model"
)

// EnvPrefix is prepended to every environment override,
// e.g. SPELLTOWER_SEARCH_WORKERS
const EnvPrefix = "SPELLTOWER"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the full application configuration
type Config struct {
	Dictionary string        `mapstructure:"dictionary"` // Word list path
	Scoring    string        `mapstructure:"scoring"`    // Scoring table path; empty uses defaults
	Search     SearchConfig  `mapstructure:"search"`
	Server     ServerConfig  `mapstructure:"server"`
	Storage    StorageConfig `mapstructure:"storage"`
	Log        LogConfig     `mapstructure:"log"`
}

// SearchConfig bounds the word search
type SearchConfig struct {
	Workers   int `mapstructure:"workers"`
	MaxPath   int `mapstructure:"max_path"`
	MinLength int `mapstructure:"min_length"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SolveTimeout    time.Duration `mapstructure:"solve_timeout"` // Per-request search budget; 0 disables
}

// StorageConfig selects and configures the puzzle store
type StorageConfig struct {
	Type      string        `mapstructure:"type"`
	RedisURL  string        `mapstructure:"redis_url"`
	PuzzleTTL time.Duration `mapstructure:"puzzle_ttl"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

var defaults = map[string]any{
	"dictionary":              "data/words.txt",
	"scoring":                 "",
	"search.workers":          1,
	"search.max_path":         0,
	"search.min_length":       2,
	"server.host":             "",
	"server.port":             8080,
	"server.read_timeout":     15 * time.Second,
	"server.write_timeout":    60 * time.Second,
	"server.shutdown_timeout": 30 * time.Second,
	"server.solve_timeout":    20 * time.Second,
	"storage.type":            StorageMemory,
	"storage.redis_url":       "redis://localhost:6379",
	"storage.puzzle_ttl":      7 * 24 * time.Hour,
	"log.level":               "info",
	"log.format":              "text",
}

// Load builds the configuration from, in increasing priority: defaults, the
// YAML file at path (optional), SPELLTOWER_* environment variables and any
// flags in bindings that were set on the command line. Binding keys are
// config keys such as "search.workers".
func Load(path string, bindings map[string]*pflag.Flag) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", model.ErrInvalidConfig, path, err)
		}
	}

	for key, flag := range bindings {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file, env or flags applied
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks value ranges and enum settings
func (c *Config) Validate() error {
	var errs []error
	if c.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("search.workers must not be negative, got %d", c.Search.Workers))
	}
	if c.Search.MaxPath < 0 {
		errs = append(errs, fmt.Errorf("search.max_path must not be negative, got %d", c.Search.MaxPath))
	}
	if c.Search.MinLength < 2 {
		errs = append(errs, fmt.Errorf("search.min_length must be at least 2, got %d", c.Search.MinLength))
	}
	if c.Server.SolveTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.solve_timeout must not be negative, got %s", c.Server.SolveTimeout))
	}
	switch c.Storage.Type {
	case StorageMemory, StorageRedis:
	default:
		errs = append(errs, fmt.Errorf("storage.type must be %q or %q, got %q", StorageMemory, StorageRedis, c.Storage.Type))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", model.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// SlogLevel parses Log.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
