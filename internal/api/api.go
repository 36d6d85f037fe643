// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/procuregpt/procure/internal/config"
	"github.com/procuregpt/procure/internal/infrastructure"
	"github.com/procuregpt/procure/pkg/middleware"
	"github.com/procuregpt/procure/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
