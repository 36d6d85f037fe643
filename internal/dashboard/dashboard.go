// Package dashboard aggregates summary metrics over current records,
// recent uploads, and validation outcomes.
package dashboard

import (
	"context"

	"github.com/procuregpt/procure/internal/uploads"
)

// ValidationSummary counts current records by validation status.
type ValidationSummary struct {
	Valid   int `json:"valid"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

// Metrics is the aggregate dashboard payload.
type Metrics struct {
	TotalRecords      int                    `json:"total_records"`
	NewThisMonth      int                    `json:"new_this_month"`
	NumCompanies      int                    `json:"num_companies"`
	NumSKUs           int                    `json:"num_skus"`
	RecentUploads     []uploads.UploadedFile `json:"recent_uploads"`
	ValidationSummary ValidationSummary      `json:"validation_summary"`
}

// System defines the public contract for dashboard operations.
type System interface {
	// Handler creates an HTTP handler bound to this system.
	Handler() *Handler

	// Metrics computes the aggregate dashboard metrics.
	Metrics(ctx context.Context) (*Metrics, error)
}
