package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/procuregpt/procure/internal/uploads"
	"github.com/procuregpt/procure/pkg/pagination"
)

const recentUploadLimit = 10

type repo struct {
	db      *sql.DB
	uploads uploads.System
	logger  *slog.Logger
}

// New creates a dashboard repository implementing the System interface.
func New(db *sql.DB, uploadSys uploads.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		uploads: uploadSys,
		logger:  logger.With("system", "dashboard"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Metrics(ctx context.Context) (*Metrics, error) {
	m := &Metrics{}

	counts := `
		SELECT
			COUNT(*),
			COUNT(DISTINCT CASE WHEN eu_company IS NOT NULL AND eu_company != '' THEN eu_company END),
			COUNT(DISTINCT CASE WHEN sku IS NOT NULL AND sku != '' THEN sku END)
		FROM records
		WHERE is_current = 1`

	if err := r.db.QueryRowContext(ctx, counts).Scan(
		&m.TotalRecords,
		&m.NumCompanies,
		&m.NumSKUs,
	); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	monthStart := startOfMonth(time.Now().UTC())
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM records WHERE is_current = 1 AND created_at >= ?",
		monthStart,
	).Scan(&m.NewThisMonth); err != nil {
		return nil, fmt.Errorf("count new records: %w", err)
	}

	summary, err := r.validationSummary(ctx)
	if err != nil {
		return nil, err
	}
	m.ValidationSummary = summary

	recent, err := r.uploads.List(ctx, pagination.PageRequest{
		Page:     1,
		PageSize: recentUploadLimit,
	}, uploads.Filters{})
	if err != nil {
		return nil, fmt.Errorf("recent uploads: %w", err)
	}
	m.RecentUploads = recent.Data

	return m, nil
}

func (r *repo) validationSummary(ctx context.Context) (ValidationSummary, error) {
	var s ValidationSummary

	rows, err := r.db.QueryContext(
		ctx,
		"SELECT validation_status, COUNT(*) FROM records WHERE is_current = 1 GROUP BY validation_status",
	)
	if err != nil {
		return s, fmt.Errorf("validation summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return s, fmt.Errorf("scan validation summary: %w", err)
		}

		switch status {
		case "valid":
			s.Valid = count
		case "warning":
			s.Warning = count
		case "error":
			s.Error = count
		}
	}

	return s, rows.Err()
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
