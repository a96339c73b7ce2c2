package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all environment-driven settings.
type Config struct {
	// HTTP server
	Port           string
	AllowedOrigins string // comma-separated; empty disables CORS

	// Database
	DatabaseURL string

	// Auth
	JWTSecret string

	// AI suggestion service
	OpenAIAPIKey string

	// Client deletion policy: "archive" (default) or "cascade".
	ClientDeleteMode string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:             getEnv("SERVER_PORT", "8080"),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", ""),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		ClientDeleteMode: getEnv("CLIENT_DELETE_MODE", "archive"),
	}
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}

	if c.ClientDeleteMode != "archive" && c.ClientDeleteMode != "cascade" {
		problems = append(problems, fmt.Sprintf("invalid CLIENT_DELETE_MODE %q: must be archive or cascade", c.ClientDeleteMode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
