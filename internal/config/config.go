// Package config loads and validates the settings a bptree server needs
// to construct a tree and its observability stack.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything needed to stand up a bptree server instance.
type Config struct {
	Degree    int    // minimum branching factor passed to btree.New
	Addr      string // observability HTTP listen address
	LogLevel  string // debug, info, warn, error
	LogPretty bool   // console-format logs instead of JSON
}

// Default returns the configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		Degree:    32,
		Addr:      ":9090",
		LogLevel:  "info",
		LogPretty: true,
	}
}

// Validate checks that the configuration can be used to build a tree and
// a server; degree < 2 is the one invariant the btree package itself
// also enforces, checked early here so the CLI can fail fast.
func (c Config) Validate() error {
	if c.Degree < 2 {
		return fmt.Errorf("config: degree must be >= 2, got %d", c.Degree)
	}
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}

// FromEnv overlays BPTREE_DEGREE, BPTREE_ADDR, BPTREE_LOG_LEVEL and
// BPTREE_LOG_PRETTY onto the defaults.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("BPTREE_DEGREE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid BPTREE_DEGREE %q: %w", v, err)
		}
		cfg.Degree = n
	}
	if v := os.Getenv("BPTREE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("BPTREE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BPTREE_LOG_PRETTY"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid BPTREE_LOG_PRETTY %q: %w", v, err)
		}
		cfg.LogPretty = pretty
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
