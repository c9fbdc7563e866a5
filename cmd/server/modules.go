package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/screener/internal/api"
	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/infrastructure"
	"github.com/JaimeStill/screener/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) error {
	return router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		status, code := "ready", http.StatusOK
		switch {
		case !infra.Lifecycle.Ready():
			status, code = "starting", http.StatusServiceUnavailable
		case infra.Database.Ping(r.Context()) != nil:
			status, code = "database unavailable", http.StatusServiceUnavailable
		}
		writeStatus(w, code, status)
	})

	if cfg.Metrics.IsEnabled() {
		metricsHandler := infra.Metrics.Handler()
		router.HandleNative("GET "+cfg.Metrics.Path, metricsHandler.ServeHTTP)
	}

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
