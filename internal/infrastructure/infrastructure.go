// Package infrastructure builds the process-wide systems every module shares:
// lifecycle, logging, metrics, the database pool, and CV storage.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/pkg/database"
	"github.com/JaimeStill/screener/pkg/lifecycle"
	"github.com/JaimeStill/screener/pkg/metrics"
	"github.com/JaimeStill/screener/pkg/storage"
)

type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   metrics.System
	Database  database.System
	Storage   storage.System
}

// New constructs every system without touching the network. Start registers
// their lifecycle hooks.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := NewLogger(&cfg.Logging, os.Stderr)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		db.Connection().Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Metrics:   metrics.New(&cfg.Metrics),
		Database:  db,
		Storage:   store,
	}, nil
}

// NewLogger returns a JSON or text slog logger at the configured level.
func NewLogger(cfg *config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (i *Infrastructure) Start() error {
	starters := []struct {
		name  string
		start func(*lifecycle.Coordinator) error
	}{
		{"database", i.Database.Start},
		{"storage", i.Storage.Start},
	}
	for _, s := range starters {
		if err := s.start(i.Lifecycle); err != nil {
			return fmt.Errorf("%s start: %w", s.name, err)
		}
	}
	return nil
}
