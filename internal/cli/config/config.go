// Package config loads rowcap configuration from defaults, an optional
// YAML file, environment variables, and CLI flags, in that order of
// increasing precedence.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
	"github.com/spf13/pflag"
)

// Config file names probed in the working directory.
const (
	ConfigFileName    = "rowcap.yaml"
	ConfigFileNameAlt = "rowcap.yml"
)

// envPrefix is the prefix for environment variable overrides
// (ROWCAP_MAX_ROWS becomes max-rows).
const envPrefix = "ROWCAP_"

// Config holds the resolved rowcap configuration.
type Config struct {
	MaxRows  int    `koanf:"max-rows"` // row cap applied to queries
	NoLimit  bool   `koanf:"no-limit"` // disable limit enforcement
	Format   string `koanf:"format"`   // output format: table, json, csv, md
	Database string `koanf:"database"` // sqlite database path for the run command
	Listen   string `koanf:"listen"`   // listen address for the serve command
	Verbose  bool   `koanf:"verbose"`
}

// Policy returns the limit-enforcement policy described by the config.
func (c *Config) Policy() rowlimit.Policy {
	return rowlimit.Policy{MaxRows: c.MaxRows, Disabled: c.NoLimit}
}

// Load resolves the configuration. An explicit file path is required to
// exist; otherwise rowcap.yaml / rowcap.yml are probed and silently skipped
// when absent. flags may be nil.
func Load(explicitPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"max-rows": rowlimit.DefaultMaxRows,
		"format":   "table",
		"listen":   "localhost:8080",
	}, "."), nil); err != nil {
		return nil, err
	}

	// Config file
	if path := findConfigFile(explicitPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if explicitPath != "" {
		return nil, fmt.Errorf("config file not found: %s", explicitPath)
	}

	// Environment variables
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
	}), nil); err != nil {
		return nil, err
	}

	// CLI flags win
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the core treats as preconditions.
func (c *Config) validate() error {
	if c.MaxRows <= 0 {
		return fmt.Errorf("max-rows must be a positive integer, got %d", c.MaxRows)
	}
	switch c.Format {
	case "table", "json", "csv", "md", "markdown":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}

// findConfigFile finds the config file to use.
// Priority: explicit path > rowcap.yaml > rowcap.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// ctxKey is used to store the config in a command context.
type ctxKey struct{}

// NewContext returns a context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, or a default config when
// none was stored (help and completion paths).
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return &Config{MaxRows: rowlimit.DefaultMaxRows, Format: "table", Listen: "localhost:8080"}
}
