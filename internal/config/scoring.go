package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvScoringAPIKey       = "SCREENER_SCORING_API_KEY"
	EnvScoringAPIKeyFile   = "SCREENER_SCORING_API_KEY_FILE"
	EnvGeminiAPIKey        = "GEMINI_API_KEY"
	EnvScoringModel        = "SCREENER_SCORING_MODEL"
	EnvScoringTimeout      = "SCREENER_SCORING_TIMEOUT"
	EnvScoringTemperature  = "SCREENER_SCORING_TEMPERATURE"
	EnvScoringMaxLogLength = "SCREENER_SCORING_MAX_LOG_LENGTH"
)

// ScoringConfig holds Gemini connection and request parameters.
type ScoringConfig struct {
	Provider     string   `toml:"provider"`
	APIKey       string   `toml:"api_key"`
	APIKeyFile   string   `toml:"api_key_file"`
	Model        string   `toml:"model"`
	Timeout      string   `toml:"timeout"`
	Temperature  *float64 `toml:"temperature"`
	MaxLogLength int      `toml:"max_log_length"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ScoringConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, key file
// resolution, and validation.
func (c *ScoringConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.APIKey == "" && c.APIKeyFile != "" {
		data, err := os.ReadFile(c.APIKeyFile)
		if err != nil {
			return fmt.Errorf("read api_key_file: %w", err)
		}
		c.APIKey = strings.TrimSpace(string(data))
	}

	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ScoringConfig) Merge(overlay *ScoringConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.APIKeyFile != "" {
		c.APIKeyFile = overlay.APIKeyFile
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Temperature != nil {
		c.Temperature = overlay.Temperature
	}
	if overlay.MaxLogLength != 0 {
		c.MaxLogLength = overlay.MaxLogLength
	}
}

func (c *ScoringConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = "gemini"
	}
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.Temperature == nil {
		t := 0.2
		c.Temperature = &t
	}
	if c.MaxLogLength == 0 {
		c.MaxLogLength = 200
	}
}

func (c *ScoringConfig) loadEnv() {
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvScoringAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvScoringAPIKeyFile); v != "" {
		c.APIKeyFile = v
	}
	if v := os.Getenv(EnvScoringModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvScoringTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvScoringTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = &t
		}
	}
	if v := os.Getenv(EnvScoringMaxLogLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxLogLength = n
		}
	}
}

func (c *ScoringConfig) validate() error {
	if !strings.EqualFold(c.Provider, "gemini") {
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if *c.Temperature < 0 || *c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2]")
	}
	return nil
}
