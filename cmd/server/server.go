package main

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/infrastructure"
)

// Server owns the infrastructure, the mounted modules, and the listener.
type Server struct {
	infra  *infrastructure.Infrastructure
	http   *httpServer
	logger *slog.Logger
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg)
	if err := modules.Mount(router); err != nil {
		return nil, err
	}

	logger := infra.Logger.With("version", cfg.Version, "env", cfg.Env())
	logger.Info("server initialized", "addr", cfg.Server.Addr(), "api", cfg.API.BasePath)

	return &Server{
		infra:  infra,
		http:   newHTTPServer(&cfg.Server, router, infra.Logger),
		logger: logger,
	}, nil
}

// Start registers subsystem hooks, binds the listener, and reports readiness
// in the background once every startup hook has returned.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		start := time.Now()
		s.infra.Lifecycle.WaitForStartup()
		s.logger.Info("ready", "startup", time.Since(start))
	}()
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("shutting down", "timeout", timeout)
	if err := s.infra.Lifecycle.Shutdown(timeout); err != nil {
		s.logger.Error("shutdown incomplete", "error", err)
		return err
	}
	s.logger.Info("stopped")
	return nil
}
