// Package config reads command line defaults from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven defaults. Command line flags override
// every value.
type Config struct {
	SettleDelay time.Duration `env:"SETTLE_DELAY" envDefault:"500ms"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"text"`
	Output      string        `env:"OUTPUT" envDefault:"json"`
}

// Prefix is prepended to every variable name.
const Prefix = "FORMSTATE_"

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom parses the provided variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.SettleDelay < 0 {
		return Config{}, fmt.Errorf("config: %sSETTLE_DELAY must not be negative, got %s", Prefix, cfg.SettleDelay)
	}
	return cfg, nil
}
