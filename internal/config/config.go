// Package config loads application configuration from the environment.
package config

import "github.com/caarlos0/env/v11"

// Config holds everything the game reads from the environment. The Gemini
// key is optional; without it narration comes from the built-in templates.
type Config struct {
	SaveDir      string `env:"STORYLOOP_SAVE_DIR" envDefault:".saves"`
	LogFile      string `env:"STORYLOOP_LOG_FILE"`
	Seed         int64  `env:"STORYLOOP_SEED"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"STORYLOOP_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// Load parses the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
