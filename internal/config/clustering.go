package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvClusteringDefaultK      = "SCREENER_CLUSTERING_DEFAULT_K"
	EnvClusteringMaxIterations = "SCREENER_CLUSTERING_MAX_ITERATIONS"
	EnvClusteringSeed          = "SCREENER_CLUSTERING_SEED"
	EnvClusteringFeatures      = "SCREENER_CLUSTERING_FEATURES"
)

// ClusteringConfig holds cohort clustering defaults.
// A zero Seed draws a fresh seed for every run.
type ClusteringConfig struct {
	DefaultK      int    `toml:"default_k"`
	MaxIterations int    `toml:"max_iterations"`
	Seed          uint64 `toml:"seed"`
	Features      string `toml:"features"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ClusteringConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClusteringConfig) Merge(overlay *ClusteringConfig) {
	if overlay.DefaultK != 0 {
		c.DefaultK = overlay.DefaultK
	}
	if overlay.MaxIterations != 0 {
		c.MaxIterations = overlay.MaxIterations
	}
	if overlay.Seed != 0 {
		c.Seed = overlay.Seed
	}
	if overlay.Features != "" {
		c.Features = overlay.Features
	}
}

func (c *ClusteringConfig) loadDefaults() {
	if c.DefaultK == 0 {
		c.DefaultK = 3
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.Features == "" {
		c.Features = "score"
	}
}

func (c *ClusteringConfig) loadEnv() {
	if v := os.Getenv(EnvClusteringDefaultK); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultK = n
		}
	}
	if v := os.Getenv(EnvClusteringMaxIterations); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxIterations = n
		}
	}
	if v := os.Getenv(EnvClusteringSeed); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v := os.Getenv(EnvClusteringFeatures); v != "" {
		c.Features = v
	}
}

func (c *ClusteringConfig) validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be positive")
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be positive")
	}
	if c.Features != "score" && c.Features != "criteria" {
		return fmt.Errorf("features must be score or criteria: %s", c.Features)
	}
	return nil
}
