package config_test

import (
	"strings"
	"testing"

	"billfold/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Port:             "8080",
		DatabaseURL:      "postgres://localhost:5432/billfold",
		JWTSecret:        "secret",
		ClientDeleteMode: "archive",
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cascade := validConfig()
	cascade.ClientDeleteMode = "cascade"
	if err := cascade.Validate(); err != nil {
		t.Errorf("cascade mode rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		mention string
	}{
		{"missing database url", func(c *config.Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"missing jwt secret", func(c *config.Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"non-numeric port", func(c *config.Config) { c.Port = "eighty" }, "port"},
		{"port out of range", func(c *config.Config) { c.Port = "70000" }, "port"},
		{"bad delete mode", func(c *config.Config) { c.ClientDeleteMode = "purge" }, "CLIENT_DELETE_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error %q should mention %q", err, tt.mention)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := &config.Config{Port: "0", ClientDeleteMode: "archive"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"port", "DATABASE_URL", "JWT_SECRET"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestConfig_LoadDefaults(t *testing.T) {
	// Relies on the test environment not setting these.
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CLIENT_DELETE_MODE", "")

	cfg := config.Load()
	if cfg.Port != "8080" {
		t.Errorf("default port = %s, want 8080", cfg.Port)
	}
	if cfg.ClientDeleteMode != "archive" {
		t.Errorf("default delete mode = %s, want archive", cfg.ClientDeleteMode)
	}
}
