package analyst

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/procuregpt/procure/pkg/handlers"
	"github.com/procuregpt/procure/pkg/routes"
)

// Handler provides HTTP endpoints for analyst operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "analyst"),
	}
}

// Routes returns the route group definition for analyst endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyst",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/query", Handler: h.Query},
			{Method: "GET", Pattern: "/health", Handler: h.Health},
		},
	}
}

// Query sends a question to the analyst with optional grounding context.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyQuery)
		return
	}

	resp, err := h.sys.Query(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Health verifies the analyst's agent configuration.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.sys.Health(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, health)
}
