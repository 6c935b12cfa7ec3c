// Package config loads CLI settings from built-in defaults overlaid with
// CODEGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix is stripped from environment variable names; the rest is
// lowercased and "_" becomes the key delimiter (CODEGEN_LOG_LEVEL -> log.level).
const EnvPrefix = "CODEGEN_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type LogFormat string

const (
	LogTextFormat LogFormat = "text"
	LogJSONFormat LogFormat = "json"
)

type Config struct {
	Log         LoggingConfig `koanf:"log"`
	Concurrency int           `koanf:"concurrency"`
	Cache       CacheConfig   `koanf:"cache"`
}

type LoggingConfig struct {
	Level  string    `koanf:"level"`
	Format LogFormat `koanf:"format"`
}

type CacheConfig struct {
	TTL      time.Duration `koanf:"ttl"`
	Capacity uint64        `koanf:"capacity"`
}

func defaults() map[string]any {
	return map[string]any{
		"log.level":      zerolog.InfoLevel.String(),
		"log.format":     string(LogTextFormat),
		"concurrency":    0,
		"cache.ttl":      5 * time.Minute,
		"cache.capacity": 1024,
	}
}

// Load returns the defaults merged with the process environment.
func Load() (*Config, error) {
	parser := koanf.New(".")

	if err := parser.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	provider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, val string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

			return strings.ReplaceAll(key, "_", "."), val
		},
	})
	if err := parser.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var cfg Config
	if err := parser.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	if _, err := c.Log.ParsedLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case LogTextFormat, LogJSONFormat:
	default:
		return fmt.Errorf("%w: log format %q (expected text or json)", ErrInvalidConfig, c.Log.Format)
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency %d is negative", ErrInvalidConfig, c.Concurrency)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache ttl %s is negative", ErrInvalidConfig, c.Cache.TTL)
	}

	return nil
}

// ParsedLevel converts Level to a zerolog level. An empty level means info.
func (l LoggingConfig) ParsedLevel() (zerolog.Level, error) {
	if l.Level == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: log level %q", ErrInvalidConfig, l.Level)
	}

	return level, nil
}
