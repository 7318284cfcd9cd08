package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds runtime options that can be supplied through the environment.
// Command-line flags take precedence over these values.
type Env struct {
	DBPath     string `env:"FLIPMATCH_DB" envDefault:"~/.flipmatch/flipmatch.db"`
	ConfigPath string `env:"FLIPMATCH_CONFIG"`
	Difficulty string `env:"FLIPMATCH_DIFFICULTY"`
	Theme      string `env:"FLIPMATCH_THEME" envDefault:"emojis"`
	LogLevel   string `env:"FLIPMATCH_LOG_LEVEL" envDefault:"warn"`
	Seed       int64  `env:"FLIPMATCH_SEED"`
}

// ParseEnv loads runtime options from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
