// Package config holds the application-level settings read from the
// environment. Provider-specific LLM settings live in the llm package;
// this covers everything else the CLI needs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the application configuration.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"ROUNDTUTOR_DB"`

	// NoCompanion disables the AI companion even when a provider is
	// configured.
	NoCompanion bool `env:"ROUNDTUTOR_NO_COMPANION"`

	// Seed fixes the question-shuffling seed. Zero means seed from the
	// clock; useful for reproducing a session.
	Seed uint64 `env:"ROUNDTUTOR_SEED"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
