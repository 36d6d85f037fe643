package historical

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/procuregpt/procure/pkg/query"
	"github.com/procuregpt/procure/pkg/repository"
	"github.com/procuregpt/procure/pkg/validation"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an archive repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "historical"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Search(ctx context.Context, filters SearchFilters) (*SearchResult, error) {
	filters.Normalize()

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	pageSQL, args := qb.BuildPage(1, filters.Limit)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("search archive: %w", err)
	}

	stats, err := r.Stats(ctx, filters.SKU, filters.EUCompany)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Records: entries,
		Stats:   stats,
		Count:   len(entries),
	}, nil
}

func (r *repo) Stats(ctx context.Context, sku, euCompany *string) (Stats, error) {
	q := `SELECT
			COUNT(*),
			COUNT(DISTINCT sku),
			COUNT(DISTINCT distributor),
			AVG(unit_price),
			MIN(unit_price),
			MAX(unit_price)
		FROM historical_archive WHERE 1=1`
	args := make([]any, 0, 2)

	if sku != nil && *sku != "" {
		q += " AND LOWER(sku) LIKE LOWER(?)"
		args = append(args, "%"+*sku+"%")
	}
	if euCompany != nil && *euCompany != "" {
		q += " AND LOWER(eu_company) LIKE LOWER(?)"
		args = append(args, "%"+*euCompany+"%")
	}

	var s Stats
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&s.TotalRecords,
		&s.UniqueSKUs,
		&s.UniqueDistributors,
		&s.AvgUnitPrice,
		&s.MinUnitPrice,
		&s.MaxUnitPrice,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("archive stats: %w", err)
	}

	return s, nil
}

func (r *repo) PriceTrend(ctx context.Context, sku string) (*PriceTrend, error) {
	points, err := repository.QueryMany(
		ctx, r.db,
		`SELECT
			strftime('%Y-%m', archived_at),
			AVG(unit_price),
			MIN(unit_price),
			MAX(unit_price),
			COUNT(*)
		FROM historical_archive
		WHERE sku = ? AND unit_price IS NOT NULL
		GROUP BY strftime('%Y-%m', archived_at)
		ORDER BY strftime('%Y-%m', archived_at)`,
		[]any{sku},
		scanTrendPoint,
	)
	if err != nil {
		return nil, fmt.Errorf("price trend for %s: %w", sku, err)
	}

	return &PriceTrend{SKU: sku, DataPoints: points}, nil
}

func (r *repo) Summary(ctx context.Context, sku string) (*SKUSummary, error) {
	trend, err := r.PriceTrend(ctx, sku)
	if err != nil {
		return nil, err
	}

	stats, err := r.Stats(ctx, &sku, nil)
	if err != nil {
		return nil, err
	}

	result, err := r.Search(ctx, SearchFilters{SKU: &sku, Limit: 50})
	if err != nil {
		return nil, err
	}

	return &SKUSummary{
		Trend:   trend,
		Stats:   stats,
		Records: result.Records,
	}, nil
}

func (r *repo) PriceSummary(ctx context.Context, sku string, euCompany *string) (*PriceSummary, error) {
	q := `SELECT
			COALESCE(AVG(unit_price), 0),
			COALESCE(MIN(unit_price), 0),
			COALESCE(MAX(unit_price), 0),
			COUNT(*)
		FROM historical_archive
		WHERE sku = ? AND unit_price IS NOT NULL`
	args := []any{sku}

	if euCompany != nil && *euCompany != "" {
		q += " AND eu_company = ?"
		args = append(args, *euCompany)
	}

	var s PriceSummary
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&s.AvgPrice,
		&s.MinPrice,
		&s.MaxPrice,
		&s.RecordCount,
	)
	if err != nil {
		return nil, fmt.Errorf("price summary for %s: %w", sku, err)
	}

	if s.RecordCount == 0 {
		return nil, ErrNotFound
	}

	return &s, nil
}

func (r *repo) Companies(ctx context.Context) ([]string, error) {
	return r.distinctUnion(ctx, "eu_company")
}

func (r *repo) Distributors(ctx context.Context) ([]string, error) {
	return r.distinctUnion(ctx, "distributor")
}

func (r *repo) SKUs(ctx context.Context) ([]string, error) {
	values, err := repository.QueryMany(
		ctx, r.db,
		`SELECT DISTINCT sku FROM historical_archive
		 WHERE sku IS NOT NULL AND sku != '' ORDER BY sku`,
		nil,
		scanString,
	)
	if err != nil {
		return nil, fmt.Errorf("distinct skus: %w", err)
	}
	return values, nil
}

func (r *repo) AverageLookup() validation.AverageLookup {
	return func(rec validation.Record) float64 {
		sku, ok := rec[validation.FieldSKU].(string)
		if !ok {
			return 0
		}
		sku = strings.TrimSpace(sku)
		if sku == "" {
			return 0
		}

		var avg sql.NullFloat64
		err := r.db.QueryRow(
			`SELECT AVG(unit_price) FROM historical_archive
			 WHERE sku = ? AND unit_price IS NOT NULL`,
			sku,
		).Scan(&avg)
		if err != nil || !avg.Valid {
			return 0
		}

		return avg.Float64
	}
}

// distinctUnion collects distinct non-empty values of a column across the
// active records table and the archive.
func (r *repo) distinctUnion(ctx context.Context, column string) ([]string, error) {
	q := fmt.Sprintf(
		`SELECT DISTINCT %[1]s FROM (
			SELECT %[1]s FROM records WHERE %[1]s IS NOT NULL AND %[1]s != ''
			UNION
			SELECT %[1]s FROM historical_archive WHERE %[1]s IS NOT NULL AND %[1]s != ''
		) ORDER BY %[1]s`,
		column,
	)

	values, err := repository.QueryMany(ctx, r.db, q, nil, scanString)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

func scanTrendPoint(s repository.Scanner) (TrendPoint, error) {
	var p TrendPoint
	err := s.Scan(&p.Month, &p.AvgPrice, &p.MinPrice, &p.MaxPrice, &p.RecordCount)
	return p, err
}

func scanString(s repository.Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}
