package api

import (
	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/infrastructure"
	"github.com/JaimeStill/screener/pkg/pagination"
)

// Runtime is what the API domain systems see: the shared infrastructure with
// an api-scoped logger, plus request limits from the API config.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination     pagination.Config
	MaxUploadBytes int64
}

func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		MaxUploadBytes: cfg.API.MaxUploadSizeBytes(),
	}
}
