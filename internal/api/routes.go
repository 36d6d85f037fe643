package api

import (
	"net/http"

	"github.com/procuregpt/procure/internal/config"
	"github.com/procuregpt/procure/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Records.Handler().Routes(),
		domain.Historical.Handler().Routes(),
		domain.Uploads.Handler(cfg.API.MaxUploadSizeBytes(), &cfg.Uploads).Routes(),
		domain.Analyst.Handler().Routes(),
		domain.Dashboard.Handler().Routes(),
	)
}
