package historical_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/procuregpt/procure/internal/historical"
	"github.com/procuregpt/procure/pkg/validation"
)

const testSchema = `
CREATE TABLE records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sku TEXT,
    distributor TEXT,
    eu_company TEXT,
    is_current INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE historical_archive (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sku TEXT,
    distributor TEXT,
    item_description TEXT,
    brand TEXT,
    quote_currency TEXT,
    quantity REAL,
    serial_no TEXT,
    start_date TEXT,
    end_date TEXT,
    unit_price REAL,
    total_price REAL,
    eu_company TEXT,
    comments_notes TEXT,
    quotation_ref_no TEXT,
    quotation_date TEXT,
    quotation_end_date TEXT,
    quotation_validity TEXT,
    source_file TEXT,
    archived_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    archive_reason TEXT NOT NULL DEFAULT 'approved'
);
`

type archiveRow struct {
	sku         string
	distributor string
	description string
	euCompany   string
	unitPrice   float64
	archivedAt  string
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return db
}

func newSystem(t *testing.T, db *sql.DB) historical.System {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return historical.New(db, logger)
}

func seedArchive(t *testing.T, db *sql.DB, rows ...archiveRow) {
	t.Helper()

	for _, row := range rows {
		_, err := db.Exec(
			`INSERT INTO historical_archive
				(sku, distributor, item_description, eu_company, unit_price, archived_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			row.sku, row.distributor, row.description,
			row.euCompany, row.unitPrice, row.archivedAt,
		)
		if err != nil {
			t.Fatalf("seed archive row: %v", err)
		}
	}
}

func defaultRows() []archiveRow {
	return []archiveRow{
		{"SRV-100", "Ingram Micro", "Rack server", "Acme GmbH", 1000, "2026-05-10 09:00:00"},
		{"SRV-100", "Ingram Micro", "Rack server", "Acme GmbH", 1200, "2026-06-12 09:00:00"},
		{"SRV-100", "Tech Data", "Rack server", "Nordwind AB", 1400, "2026-06-20 09:00:00"},
		{"NET-500", "Tech Data", "Managed switch", "Acme GmbH", 300, "2026-06-25 09:00:00"},
	}
}

func strPtr(s string) *string { return &s }

func TestSearchFiltersBySKU(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	res, err := sys.Search(context.Background(), historical.SearchFilters{SKU: strPtr("srv-100")})
	if err != nil {
		t.Fatalf("search archive: %v", err)
	}
	if res.Count != 3 {
		t.Fatalf("expected 3 entries, got %d", res.Count)
	}
	if res.Stats.TotalRecords != 3 {
		t.Errorf("expected stats scoped to filter, got %d records", res.Stats.TotalRecords)
	}
	if res.Stats.AvgUnitPrice == nil || *res.Stats.AvgUnitPrice != 1200 {
		t.Errorf("unexpected avg unit price: %v", res.Stats.AvgUnitPrice)
	}
	if res.Stats.MinUnitPrice == nil || *res.Stats.MinUnitPrice != 1000 {
		t.Errorf("unexpected min unit price: %v", res.Stats.MinUnitPrice)
	}
	if res.Stats.MaxUnitPrice == nil || *res.Stats.MaxUnitPrice != 1400 {
		t.Errorf("unexpected max unit price: %v", res.Stats.MaxUnitPrice)
	}
}

func TestSearchFreeTextQuery(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	res, err := sys.Search(context.Background(), historical.SearchFilters{Query: strPtr("managed")})
	if err != nil {
		t.Fatalf("search archive: %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("expected 1 entry, got %d", res.Count)
	}
	if *res.Records[0].SKU != "NET-500" {
		t.Errorf("unexpected match: %s", *res.Records[0].SKU)
	}
}

func TestSearchDateRange(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	res, err := sys.Search(context.Background(), historical.SearchFilters{
		SKU:      strPtr("SRV-100"),
		DateFrom: strPtr("2026-06-01"),
		DateTo:   strPtr("2026-06-30"),
	})
	if err != nil {
		t.Fatalf("search archive: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("expected 2 entries in June, got %d", res.Count)
	}
}

func TestSearchOrdersNewestFirst(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	res, err := sys.Search(context.Background(), historical.SearchFilters{SKU: strPtr("SRV-100")})
	if err != nil {
		t.Fatalf("search archive: %v", err)
	}
	if *res.Records[0].UnitPrice != 1400 {
		t.Errorf("expected newest entry first, got price %v", *res.Records[0].UnitPrice)
	}
}

func TestPriceTrendGroupsByMonth(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	trend, err := sys.PriceTrend(context.Background(), "SRV-100")
	if err != nil {
		t.Fatalf("price trend: %v", err)
	}
	if trend.SKU != "SRV-100" {
		t.Errorf("unexpected trend sku: %s", trend.SKU)
	}
	if len(trend.DataPoints) != 2 {
		t.Fatalf("expected 2 monthly points, got %d", len(trend.DataPoints))
	}

	may, june := trend.DataPoints[0], trend.DataPoints[1]
	if may.Month != "2026-05" || june.Month != "2026-06" {
		t.Errorf("unexpected month ordering: %s, %s", may.Month, june.Month)
	}
	if *may.AvgPrice != 1000 || may.RecordCount != 1 {
		t.Errorf("unexpected may aggregates: avg %v count %d", *may.AvgPrice, may.RecordCount)
	}
	if *june.AvgPrice != 1300 || june.RecordCount != 2 {
		t.Errorf("unexpected june aggregates: avg %v count %d", *june.AvgPrice, june.RecordCount)
	}
	if *june.MinPrice != 1200 || *june.MaxPrice != 1400 {
		t.Errorf("unexpected june bounds: %v, %v", *june.MinPrice, *june.MaxPrice)
	}
}

func TestPriceSummary(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	sum, err := sys.PriceSummary(context.Background(), "SRV-100", nil)
	if err != nil {
		t.Fatalf("price summary: %v", err)
	}
	if sum.AvgPrice != 1200 || sum.MinPrice != 1000 || sum.MaxPrice != 1400 || sum.RecordCount != 3 {
		t.Errorf("unexpected summary: %+v", sum)
	}

	scoped, err := sys.PriceSummary(context.Background(), "SRV-100", strPtr("Acme GmbH"))
	if err != nil {
		t.Fatalf("scoped price summary: %v", err)
	}
	if scoped.RecordCount != 2 || scoped.AvgPrice != 1100 {
		t.Errorf("unexpected scoped summary: %+v", scoped)
	}
}

func TestPriceSummaryNotFound(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	_, err := sys.PriceSummary(context.Background(), "GONE-999", nil)
	if !errors.Is(err, historical.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummaryBundlesTrendStatsRecords(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	sum, err := sys.Summary(context.Background(), "SRV-100")
	if err != nil {
		t.Fatalf("sku summary: %v", err)
	}
	if sum.Trend == nil || len(sum.Trend.DataPoints) != 2 {
		t.Error("expected trend data in summary")
	}
	if sum.Stats.TotalRecords != 3 {
		t.Errorf("expected 3 records in stats, got %d", sum.Stats.TotalRecords)
	}
	if len(sum.Records) != 3 {
		t.Errorf("expected 3 entries, got %d", len(sum.Records))
	}
}

func TestCompaniesUnionsActiveAndArchive(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)

	_, err := db.Exec(
		"INSERT INTO records (sku, distributor, eu_company) VALUES ('SRV-900', 'Arrow', 'Zephyr Ltd')",
	)
	if err != nil {
		t.Fatalf("seed active record: %v", err)
	}

	sys := newSystem(t, db)

	companies, err := sys.Companies(context.Background())
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}

	want := []string{"Acme GmbH", "Nordwind AB", "Zephyr Ltd"}
	if len(companies) != len(want) {
		t.Fatalf("expected %v, got %v", want, companies)
	}
	for i, name := range want {
		if companies[i] != name {
			t.Errorf("expected %q at %d, got %q", name, i, companies[i])
		}
	}
}

func TestSKUsDistinctSorted(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	seedArchive(t, db, archiveRow{sku: "", archivedAt: "2026-06-01 09:00:00"})
	sys := newSystem(t, db)

	skus, err := sys.SKUs(context.Background())
	if err != nil {
		t.Fatalf("list skus: %v", err)
	}

	want := []string{"NET-500", "SRV-100"}
	if len(skus) != len(want) {
		t.Fatalf("expected %v, got %v", want, skus)
	}
	for i, sku := range want {
		if skus[i] != sku {
			t.Errorf("expected %q at %d, got %q", sku, i, skus[i])
		}
	}
}

func TestAverageLookup(t *testing.T) {
	db := openDB(t)
	seedArchive(t, db, defaultRows()...)
	sys := newSystem(t, db)

	lookup := sys.AverageLookup()

	if avg := lookup(validation.Record{validation.FieldSKU: "SRV-100"}); avg != 1200 {
		t.Errorf("expected average 1200, got %v", avg)
	}
	if avg := lookup(validation.Record{validation.FieldSKU: "GONE-999"}); avg != 0 {
		t.Errorf("expected 0 for unknown sku, got %v", avg)
	}
	if avg := lookup(validation.Record{}); avg != 0 {
		t.Errorf("expected 0 for missing sku, got %v", avg)
	}
	if avg := lookup(validation.Record{validation.FieldSKU: "  "}); avg != 0 {
		t.Errorf("expected 0 for blank sku, got %v", avg)
	}
}
