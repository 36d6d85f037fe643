package api

import (
	"github.com/procuregpt/procure/internal/analyst"
	"github.com/procuregpt/procure/internal/config"
	"github.com/procuregpt/procure/internal/dashboard"
	"github.com/procuregpt/procure/internal/extraction"
	"github.com/procuregpt/procure/internal/historical"
	"github.com/procuregpt/procure/internal/records"
	"github.com/procuregpt/procure/internal/uploads"
	"github.com/procuregpt/procure/pkg/validation"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Records    records.System
	Historical historical.System
	Uploads    uploads.System
	Analyst    analyst.System
	Dashboard  dashboard.System
}

// NewDomain creates all domain systems from the API runtime. The historical
// archive is assembled first so its average unit price lookup can feed the
// validation engine used by records and extraction.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()
	engine := validation.New(cfg.Validation)

	historicalSystem := historical.New(db, runtime.Logger)
	lookup := historicalSystem.AverageLookup()

	recordsSystem := records.New(
		db,
		engine,
		lookup,
		runtime.Logger,
		runtime.Pagination,
	)

	extractor := extraction.New(&extraction.Runtime{
		Agent:  runtime.Agent,
		Engine: engine,
		Lookup: lookup,
		Logger: runtime.Logger,
	})

	uploadsSystem := uploads.New(
		db,
		runtime.Storage,
		extractor,
		runtime.Logger,
		runtime.Pagination,
	)

	analystSystem := analyst.New(runtime.Agent, runtime.Logger)

	dashboardSystem := dashboard.New(db, uploadsSystem, runtime.Logger)

	return &Domain{
		Records:    recordsSystem,
		Historical: historicalSystem,
		Uploads:    uploadsSystem,
		Analyst:    analystSystem,
		Dashboard:  dashboardSystem,
	}
}
