package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvIngestWorkers           = "SCREENER_INGEST_WORKERS"
	EnvIngestDispatchers       = "SCREENER_INGEST_DISPATCHERS"
	EnvIngestQueueSize         = "SCREENER_INGEST_QUEUE_SIZE"
	EnvIngestTaskRetention     = "SCREENER_INGEST_TASK_RETENTION"
	EnvIngestPlaceholderDomain = "SCREENER_INGEST_PLACEHOLDER_DOMAIN"
)

// IngestConfig bounds candidate ingestion concurrency and the background task queue.
type IngestConfig struct {
	// Workers is the number of candidates scored concurrently within one batch.
	Workers int `toml:"workers"`
	// Dispatchers is the number of background tasks processed concurrently.
	Dispatchers int `toml:"dispatchers"`
	// QueueSize is the number of background tasks that may wait for a dispatcher.
	QueueSize int `toml:"queue_size"`
	// TaskRetention is how long finished tasks remain queryable.
	TaskRetention     string `toml:"task_retention"`
	PlaceholderDomain string `toml:"placeholder_domain"`
}

// TaskRetentionDuration returns TaskRetention as a time.Duration.
func (c *IngestConfig) TaskRetentionDuration() time.Duration {
	d, _ := time.ParseDuration(c.TaskRetention)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *IngestConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *IngestConfig) Merge(overlay *IngestConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.Dispatchers != 0 {
		c.Dispatchers = overlay.Dispatchers
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
	if overlay.TaskRetention != "" {
		c.TaskRetention = overlay.TaskRetention
	}
	if overlay.PlaceholderDomain != "" {
		c.PlaceholderDomain = overlay.PlaceholderDomain
	}
}

func (c *IngestConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Dispatchers == 0 {
		c.Dispatchers = 2
	}
	if c.QueueSize == 0 {
		c.QueueSize = 32
	}
	if c.TaskRetention == "" {
		c.TaskRetention = "1h"
	}
	if c.PlaceholderDomain == "" {
		c.PlaceholderDomain = "example.com"
	}
}

func (c *IngestConfig) loadEnv() {
	setInt := func(env string, dst *int) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt(EnvIngestWorkers, &c.Workers)
	setInt(EnvIngestDispatchers, &c.Dispatchers)
	setInt(EnvIngestQueueSize, &c.QueueSize)

	if v := os.Getenv(EnvIngestTaskRetention); v != "" {
		c.TaskRetention = v
	}
	if v := os.Getenv(EnvIngestPlaceholderDomain); v != "" {
		c.PlaceholderDomain = v
	}
}

func (c *IngestConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Dispatchers < 1 {
		return fmt.Errorf("dispatchers must be positive")
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive")
	}
	if _, err := time.ParseDuration(c.TaskRetention); err != nil {
		return fmt.Errorf("invalid task_retention: %w", err)
	}
	return nil
}
