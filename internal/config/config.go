// Package config loads kvcache CLI settings from the environment.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Backends the CLI can open. Session-scoped stores (memory, bigcache,
// ristretto) do not outlive a single invocation, so only durable ones are listed.
var (
	Backends = []string{"file", "sqlite", "redis"}
	Codecs   = []string{"json", "msgpack", "cbor", "protobuf"}
)

// Config holds CLI settings. Flags override values parsed from env.
type Config struct {
	Backend   string `env:"KVCACHE_BACKEND" envDefault:"file"`
	DSN       string `env:"KVCACHE_DSN"` // dir (file), db path (sqlite) or redis:// URL
	Namespace string `env:"KVCACHE_NAMESPACE" envDefault:"cacheJs"`
	Size      int    `env:"KVCACHE_SIZE" envDefault:"30"`
	Codec     string `env:"KVCACHE_CODEC" envDefault:"json"`
	LogLevel  string `env:"KVCACHE_LOG_LEVEL" envDefault:"warn"`
}

// FromEnv parses the environment without validating, so callers can apply
// overrides first.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}


// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("backend %q: must be one of %s", c.Backend, strings.Join(Backends, ", "))
	}
	if !slices.Contains(Codecs, c.Codec) {
		return fmt.Errorf("codec %q: must be one of %s", c.Codec, strings.Join(Codecs, ", "))
	}
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.Backend == "sqlite" && c.DSN == "" {
		return fmt.Errorf("backend sqlite requires a database path (KVCACHE_DSN)")
	}
	if c.Backend == "redis" && c.DSN == "" {
		return fmt.Errorf("backend redis requires a redis:// URL (KVCACHE_DSN)")
	}
	return nil
}
