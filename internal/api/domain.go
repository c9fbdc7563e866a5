package api

import (
	"fmt"

	"github.com/JaimeStill/screener/internal/batches"
	"github.com/JaimeStill/screener/internal/candidates"
	"github.com/JaimeStill/screener/internal/cohorts"
	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/ingest"
	"github.com/JaimeStill/screener/internal/jobs"
	"github.com/JaimeStill/screener/internal/scoring"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Jobs       jobs.System
	Batches    batches.System
	Candidates candidates.System
	Cohorts    cohorts.System
	Scoring    *scoring.Client
	Pipeline   *ingest.Pipeline
	Dispatcher *ingest.Dispatcher
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()

	jobsSystem := jobs.New(db, runtime.Logger, runtime.Pagination)
	batchesSystem := batches.New(db, runtime.Logger)

	candidatesSystem := candidates.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	cohortsSystem := cohorts.New(
		candidatesSystem,
		batchesSystem,
		jobsSystem,
		cfg.Clustering,
		runtime.Logger,
	)

	generator, err := scoring.NewGeminiGenerator(runtime.Lifecycle.Context(), &cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("scoring generator: %w", err)
	}

	scoringClient := scoring.New(
		generator,
		runtime.Metrics,
		runtime.Logger,
		cfg.Scoring.MaxLogLength,
	)

	pipeline := ingest.NewPipeline(
		scoringClient,
		candidatesSystem,
		runtime.Storage,
		cohortsSystem,
		ingest.Options{
			Workers:           cfg.Ingest.Workers,
			ScoreTimeout:      cfg.Scoring.TimeoutDuration(),
			PlaceholderDomain: cfg.Ingest.PlaceholderDomain,
		},
		runtime.Metrics,
		runtime.Logger,
	)

	dispatcher := ingest.NewDispatcher(
		pipeline,
		cfg.Ingest.Dispatchers,
		cfg.Ingest.QueueSize,
		cfg.Ingest.TaskRetentionDuration(),
		runtime.Logger,
	)

	return &Domain{
		Jobs:       jobsSystem,
		Batches:    batchesSystem,
		Candidates: candidatesSystem,
		Cohorts:    cohortsSystem,
		Scoring:    scoringClient,
		Pipeline:   pipeline,
		Dispatcher: dispatcher,
	}, nil
}
