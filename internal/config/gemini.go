package config

import (
	"fmt"
	"os"
)

// Environment variable names for generation backend configuration.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGeminiModel  = "GEMINI_MODEL"
)

// GeminiConfig contains generation backend configuration.
type GeminiConfig struct {
	// APIKey is environment-only in production; the TOML field exists for
	// local development.
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *GeminiConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *GeminiConfig) Merge(overlay *GeminiConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
}

func (c *GeminiConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-1.5-pro"
	}
}

func (c *GeminiConfig) loadEnv() {
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvGeminiModel); v != "" {
		c.Model = v
	}
}

func (c *GeminiConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	return nil
}
