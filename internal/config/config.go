// Package config provides environment-driven configuration for the service
// and CLI. Values come from the process environment; a .env file, when
// present, is loaded by the entrypoint before this package reads anything.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment names the deployment mode. It controls log formatting only.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the service needs to start. GeminiAPIKey and
// DatabaseURL are required for generation; the rest have defaults.
type Config struct {
	GeminiAPIKey string
	DatabaseURL  string
	Port         int
	Environment  string

	// RoadmapModel overrides the model used for roadmap generation.
	// Empty means the built-in default.
	RoadmapModel string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         8080,
		Environment:  EnvDevelopment,
		RoadmapModel: os.Getenv("ROADMAP_MODEL"),
	}

	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}
	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("config error: PORT must be a number, got %q", port)
		}
		cfg.Port = n
	}

	return cfg, nil
}

// Validate checks the values needed to run the generation pipeline. The
// check-url subcommand works without any of them, so callers decide when
// to enforce.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is not set")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("config error: ENVIRONMENT must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}
