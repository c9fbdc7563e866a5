package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/internal/batches"
	"github.com/JaimeStill/screener/internal/jobs"
	"github.com/JaimeStill/screener/pkg/handlers"
	"github.com/JaimeStill/screener/pkg/routes"
)

// BatchFinder resolves a batch.
type BatchFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*batches.Batch, error)
}

// JobFinder resolves a job.
type JobFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*jobs.Job, error)
}

// Handler provides synchronous and background ingestion endpoints.
type Handler struct {
	pipeline      *Pipeline
	dispatcher    *Dispatcher
	batches       BatchFinder
	jobs          JobFinder
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler. maxUploadSize bounds the request body.
func NewHandler(
	pipeline *Pipeline,
	dispatcher *Dispatcher,
	batchFinder BatchFinder,
	jobFinder JobFinder,
	logger *slog.Logger,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		pipeline:      pipeline,
		dispatcher:    dispatcher,
		batches:       batchFinder,
		jobs:          jobFinder,
		logger:        logger.With("handler", "ingest"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the ingestion endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/batches/{id}",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/candidates", Handler: h.Ingest},
					{Method: "POST", Pattern: "/ingestions", Handler: h.Submit},
				},
			},
			{
				Prefix: "/ingestions",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: h.Task},
				},
			},
		},
	}
}

// Ingest scores and stores the submitted candidates before responding.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	batch, job, req, ok := h.prepare(w, r)
	if !ok {
		return
	}

	report, err := h.pipeline.Ingest(r.Context(), batch, job, req.Candidates)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, report)
}

// Submit queues the submitted candidates for background ingestion.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	batch, job, req, ok := h.prepare(w, r)
	if !ok {
		return
	}

	task, err := h.dispatcher.Submit(batch, job, req.Candidates)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Location", "/ingestions/"+task.ID.String())
	handlers.RespondJSON(w, http.StatusAccepted, task)
}

// Task returns the current snapshot of a background ingestion.
func (h *Handler) Task(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed id", ErrInvalidRequest))
		return
	}

	task, err := h.dispatcher.Task(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, task)
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request) (*batches.Batch, *jobs.Job, Request, bool) {
	var req Request

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed id", ErrInvalidRequest))
		return nil, nil, req, false
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		handlers.RespondError(w, h.logger, status, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return nil, nil, req, false
	}

	batch, err := h.batches.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, batches.ErrNotFound) {
			err = ErrBatchNotFound
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, nil, req, false
	}

	job, err := h.jobs.Find(r.Context(), batch.JobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			err = ErrJobNotFound
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, nil, req, false
	}

	return batch, job, req, true
}
