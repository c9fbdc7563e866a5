package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/screener/pkg/database"
	"github.com/JaimeStill/screener/pkg/metrics"
	"github.com/JaimeStill/screener/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvScreenerEnv             = "SCREENER_ENV"
	EnvScreenerShutdownTimeout = "SCREENER_SHUTDOWN_TIMEOUT"
	EnvScreenerVersion         = "SCREENER_VERSION"
)

// DatabaseEnv maps database settings to SCREENER_DB_* variables. The
// migrate command reuses it to build its connection string.
var DatabaseEnv = &database.Env{
	URL:             "SCREENER_DB_URL",
	Host:            "SCREENER_DB_HOST",
	Port:            "SCREENER_DB_PORT",
	Name:            "SCREENER_DB_NAME",
	User:            "SCREENER_DB_USER",
	Password:        "SCREENER_DB_PASSWORD",
	SSLMode:         "SCREENER_DB_SSL_MODE",
	MaxOpenConns:    "SCREENER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SCREENER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SCREENER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SCREENER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "SCREENER_STORAGE_CONTAINER_NAME",
	ConnectionString: "SCREENER_STORAGE_CONNECTION_STRING",
	ServiceURL:       "SCREENER_STORAGE_SERVICE_URL",
}

var metricsEnv = &metrics.Env{
	Enabled:   "SCREENER_METRICS_ENABLED",
	Path:      "SCREENER_METRICS_PATH",
	Namespace: "SCREENER_METRICS_NAMESPACE",
}

// Config is the root configuration for the screening service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Logging         LoggingConfig    `toml:"logging"`
	Database        database.Config  `toml:"database"`
	Storage         storage.Config   `toml:"storage"`
	Metrics         metrics.Config   `toml:"metrics"`
	API             APIConfig        `toml:"api"`
	Scoring         ScoringConfig    `toml:"scoring"`
	Ingest          IngestConfig     `toml:"ingest"`
	Clustering      ClusteringConfig `toml:"clustering"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the SCREENER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvScreenerEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Metrics.Merge(&overlay.Metrics)
	c.API.Merge(&overlay.API)
	c.Scoring.Merge(&overlay.Scoring)
	c.Ingest.Merge(&overlay.Ingest)
	c.Clustering.Merge(&overlay.Clustering)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Database.Finalize(DatabaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Metrics.Finalize(metricsEnv); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Scoring.Finalize(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Ingest.Finalize(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if err := c.Clustering.Finalize(); err != nil {
		return fmt.Errorf("clustering: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvScreenerShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvScreenerVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvScreenerEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
