package cohorts

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/handlers"
	"github.com/JaimeStill/screener/pkg/routes"
)

// Handler provides the cohort endpoint.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "cohorts"),
	}
}

// Routes returns the route group definition for cohort endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/batches/{id}/cohorts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Cluster},
		},
	}
}

// Cluster computes cohorts for the batch path parameter.
// Query parameters k and features override the defaults.
func (h *Handler) Cluster(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: malformed id", ErrInvalidOptions))
		return
	}

	var opts Options

	if v := r.URL.Query().Get("k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil || k < 1 {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: k must be a positive integer", ErrInvalidOptions))
			return
		}
		opts.K = k
	}

	opts.Features, err = ParseFeature(r.URL.Query().Get("features"), "")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Cluster(r.Context(), id, opts)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
