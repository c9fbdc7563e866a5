package api

import (
	"net/http"

	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/ingest"
	"github.com/JaimeStill/screener/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	ingestHandler := ingest.NewHandler(
		domain.Pipeline,
		domain.Dispatcher,
		domain.Batches,
		domain.Jobs,
		runtime.Logger,
		runtime.MaxUploadBytes,
	)

	patterns := routes.Register(
		mux,
		domain.Jobs.Handler().Routes(),
		domain.Batches.Handler().Routes(),
		domain.Candidates.Handler().Routes(),
		domain.Cohorts.Handler().Routes(),
		ingestHandler.Routes(),
	)
	runtime.Logger.Debug("api routes registered", "count", len(patterns), "base", cfg.API.BasePath)
}
