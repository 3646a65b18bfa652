package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	// EnvAssistAPIKey provides the completion endpoint API key.
	// The key is never read from the TOML file.
	EnvAssistAPIKey = "ASSIST_API_KEY"

	// EnvAssistBaseURL overrides the completion endpoint base URL.
	EnvAssistBaseURL = "ASSIST_BASE_URL"

	// EnvAssistModel overrides the completion model.
	EnvAssistModel = "ASSIST_MODEL"
)

// AssistConfig contains configuration for the hosted completion endpoint
// used by the AI-facing collaborators.
type AssistConfig struct {
	// BaseURL is the root of an OpenAI-compatible API.
	// Default: "https://api.groq.com/openai/v1"
	BaseURL string `toml:"base_url"`

	// Model is the completion model identifier.
	// Default: "llama-3.3-70b-versatile"
	Model string `toml:"model"`

	// Temperature is the sampling temperature for all completions.
	Temperature float64 `toml:"temperature"`

	// Timeout bounds a single completion request.
	Timeout string `toml:"timeout"`

	apiKey string
}

// APIKey returns the completion endpoint API key loaded from the environment.
func (c *AssistConfig) APIKey() string {
	return c.apiKey
}

// Enabled reports whether an API key is configured. Without a key the
// assist subsystem runs disabled and every call fails explicitly.
func (c *AssistConfig) Enabled() bool {
	return c.apiKey != ""
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *AssistConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the assist configuration.
func (c *AssistConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AssistConfig) Merge(overlay *AssistConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *AssistConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Model == "" {
		c.Model = "llama-3.3-70b-versatile"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *AssistConfig) loadEnv() {
	if v := os.Getenv(EnvAssistAPIKey); v != "" {
		c.apiKey = v
	}
	if v := os.Getenv(EnvAssistBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvAssistModel); v != "" {
		c.Model = v
	}
}

func (c *AssistConfig) validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
