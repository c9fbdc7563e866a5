package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/screener/pkg/formatting"
	"github.com/JaimeStill/screener/pkg/middleware"
	"github.com/JaimeStill/screener/pkg/pagination"
)

const (
	EnvAPIBasePath      = "SCREENER_API_BASE_PATH"
	EnvAPIMaxUploadSize = "SCREENER_API_MAX_UPLOAD_SIZE"

	defaultMaxUpload = 25 << 20
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SCREENER_CORS_ENABLED",
	Origins:          "SCREENER_CORS_ORIGINS",
	AllowedMethods:   "SCREENER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SCREENER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SCREENER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SCREENER_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SCREENER_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SCREENER_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig covers the /api module. MaxUploadSize bounds a multipart
// submission, CV file included.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes falls back to 25MB when MaxUploadSize does not parse.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	if n, err := formatting.ParseBytes(c.MaxUploadSize); err == nil && n > 0 {
		return n
	}
	return defaultMaxUpload
}

func (c *APIConfig) Finalize() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = formatting.FormatBytes(defaultMaxUpload, 0)
	}

	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 || len(c.BasePath) < 2 {
		return fmt.Errorf("base_path must be a single segment such as /api, got %q", c.BasePath)
	}
	if n, err := formatting.ParseBytes(c.MaxUploadSize); err != nil || n == 0 {
		return fmt.Errorf("invalid max_upload_size %q", c.MaxUploadSize)
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}
