// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/infrastructure"
	"github.com/JaimeStill/screener/pkg/middleware"
	"github.com/JaimeStill/screener/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The background ingestion dispatcher is registered with the lifecycle here.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	if err := domain.Dispatcher.Start(runtime.Lifecycle); err != nil {
		return nil, fmt.Errorf("ingest dispatcher start failed: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(
		middleware.CORS(&cfg.API.CORS),
		middleware.Logger(runtime.Logger),
	)

	return m, nil
}
