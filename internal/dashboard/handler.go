package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/procuregpt/procure/pkg/handlers"
	"github.com/procuregpt/procure/pkg/routes"
)

// Handler provides HTTP endpoints for dashboard operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "dashboard"),
	}
}

// Routes returns the route group definition for dashboard endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/dashboard",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/metrics", Handler: h.Metrics},
		},
	}
}

// Metrics returns aggregate metrics over records, uploads, and validation outcomes.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.sys.Metrics(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, m)
}
