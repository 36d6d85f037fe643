package historical

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/procuregpt/procure/pkg/handlers"
	"github.com/procuregpt/procure/pkg/routes"
)

// Handler provides HTTP endpoints for archive operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "historical"),
	}
}

// Routes returns the route group definition for archive endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/historical",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/chart-data", Handler: h.ChartData},
			{Method: "GET", Pattern: "/price-trend/{sku}", Handler: h.PriceTrend},
			{Method: "GET", Pattern: "/summary/{sku}", Handler: h.Summary},
			{Method: "GET", Pattern: "/price-summary/{sku}", Handler: h.PriceSummary},
			{Method: "GET", Pattern: "/skus", Handler: h.SKUs},
			{Method: "GET", Pattern: "/companies", Handler: h.Companies},
			{Method: "GET", Pattern: "/distributors", Handler: h.Distributors},
		},
	}
}

// Search returns archive entries matching the query parameter filters,
// with aggregate stats for the filtered slice.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	filters := SearchFiltersFromQuery(r.URL.Query())

	result, err := h.sys.Search(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ChartData returns a wider search slice shaped for chart rendering.
func (h *Handler) ChartData(w http.ResponseWriter, r *http.Request) {
	filters := SearchFiltersFromQuery(r.URL.Query())
	filters.Limit = 1000

	result, err := h.sys.Search(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"records": result.Records,
		"stats":   result.Stats,
	})
}

// PriceTrend returns monthly price aggregates for the SKU path parameter.
func (h *Handler) PriceTrend(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if sku == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	trend, err := h.sys.PriceTrend(r.Context(), sku)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, trend)
}

// Summary returns trend, stats, and recent entries for the SKU path parameter.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if sku == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	summary, err := h.sys.Summary(r.Context(), sku)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// PriceSummary returns price statistics for the SKU path parameter,
// optionally narrowed by the eu_company query parameter.
func (h *Handler) PriceSummary(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if sku == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	var euCompany *string
	if c := r.URL.Query().Get("eu_company"); c != "" {
		euCompany = &c
	}

	summary, err := h.sys.PriceSummary(r.Context(), sku, euCompany)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// SKUs returns all distinct SKUs present in the archive.
func (h *Handler) SKUs(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.sys.SKUs)
}

// Companies returns all distinct EU companies across records and archive.
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.sys.Companies)
}

// Distributors returns all distinct distributors across records and archive.
func (h *Handler) Distributors(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.sys.Distributors)
}

func (h *Handler) respondList(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context) ([]string, error),
) {
	values, err := fetch(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, values)
}
