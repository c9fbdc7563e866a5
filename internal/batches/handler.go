package batches

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/handlers"
	"github.com/JaimeStill/screener/pkg/routes"
)

// Handler provides HTTP endpoints for batch operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "batches"),
	}
}

// Routes returns the batch endpoints, both top-level and nested under their job.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/batches",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: h.Find},
					{Method: "POST", Pattern: "/{id}/archive", Handler: h.Archive},
				},
			},
			{
				Prefix: "/jobs/{jobId}/batches",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListByJob},
					{Method: "POST", Pattern: "", Handler: h.Create},
				},
			},
		},
	}
}

// ListByJob returns every batch created for the job path parameter, newest first.
func (h *Handler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.parseID(w, r, "jobId")
	if !ok {
		return
	}

	batches, err := h.sys.ListByJob(r.Context(), jobID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, batches)
}

// Find returns a single batch by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	batch, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, batch)
}

// Create opens a new active batch for the job path parameter.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.parseID(w, r, "jobId")
	if !ok {
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidBatch, err))
		return
	}
	cmd.JobID = jobID

	batch, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, batch)
}

// Archive closes a batch to further ingestion.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	batch, err := h.sys.Archive(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, batch)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed %s", ErrInvalidBatch, name))
		return uuid.Nil, false
	}
	return id, true
}
