package historical

import (
	"context"

	"github.com/procuregpt/procure/pkg/validation"
)

// System defines the public contract for archive domain operations.
type System interface {
	Handler() *Handler

	Search(ctx context.Context, filters SearchFilters) (*SearchResult, error)
	Stats(ctx context.Context, sku, euCompany *string) (Stats, error)
	PriceTrend(ctx context.Context, sku string) (*PriceTrend, error)
	Summary(ctx context.Context, sku string) (*SKUSummary, error)
	PriceSummary(ctx context.Context, sku string, euCompany *string) (*PriceSummary, error)

	Companies(ctx context.Context) ([]string, error)
	Distributors(ctx context.Context) ([]string, error)
	SKUs(ctx context.Context) ([]string, error)

	// AverageLookup adapts the archive into the per-record average unit
	// price source consumed by the validation engine.
	AverageLookup() validation.AverageLookup
}
