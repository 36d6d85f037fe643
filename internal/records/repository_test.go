package records_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/procuregpt/procure/internal/records"
	"github.com/procuregpt/procure/pkg/pagination"
	"github.com/procuregpt/procure/pkg/validation"
)

const testSchema = `
CREATE TABLE records (
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
    validation_status TEXT NOT NULL DEFAULT 'pending',
    validation_message TEXT,
    is_current INTEGER NOT NULL DEFAULT 1,
    user_modified INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
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

CREATE TABLE change_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    record_id INTEGER NOT NULL REFERENCES records(id) ON DELETE CASCADE,
    field_name TEXT NOT NULL,
    old_value TEXT,
    new_value TEXT,
    changed_by TEXT NOT NULL DEFAULT 'user',
    timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

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

func newSystem(t *testing.T, db *sql.DB) records.System {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := validation.New(validation.DefaultConfig())

	return records.New(db, engine, nil, logger, pagination.Config{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	})
}

func sampleRecord(sku string) validation.Record {
	return validation.Record{
		validation.FieldSKU:             sku,
		validation.FieldDistributor:     "Ingram Micro",
		validation.FieldItemDescription: "Rack server",
		validation.FieldBrand:           "Dell",
		validation.FieldQuoteCurrency:   "USD",
		validation.FieldQuantity:        float64(2),
		validation.FieldSerialNo:        "SN-001",
		validation.FieldUnitPrice:       float64(1200),
		validation.FieldTotalPrice:      float64(2400),
		validation.FieldEUCompany:       "Acme GmbH",
		validation.FieldQuotationRefNo:  "Q-2026-001",
	}
}

func approve(t *testing.T, sys records.System, recs ...validation.Record) []int64 {
	t.Helper()

	res, err := sys.ApproveBatch(context.Background(), records.ApproveBatchCommand{
		Records:    recs,
		SourceFile: "quote.pdf",
	})
	if err != nil {
		t.Fatalf("approve batch: %v", err)
	}
	return res.RecordIDs
}

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestApproveBatchPersistsRecords(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	first := sampleRecord("SRV-100")
	first[validation.KeyValidationStatus] = "warning"
	first[validation.KeyValidationMessage] = "Quantity: high quantity"

	ids := approve(t, sys, first, sampleRecord("SRV-200"))

	if len(ids) != 2 {
		t.Fatalf("expected 2 record ids, got %d", len(ids))
	}

	rec, err := sys.Find(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("find approved record: %v", err)
	}
	if rec.SKU == nil || *rec.SKU != "SRV-100" {
		t.Errorf("unexpected sku: %v", rec.SKU)
	}
	if rec.ValidationStatus != "warning" {
		t.Errorf("expected status warning, got %q", rec.ValidationStatus)
	}
	if rec.ValidationMessage == nil || *rec.ValidationMessage != "Quantity: high quantity" {
		t.Errorf("unexpected validation message: %v", rec.ValidationMessage)
	}
	if !rec.IsCurrent {
		t.Error("approved record should be current")
	}
	if rec.UserModified {
		t.Error("approved record should not be user modified")
	}
	if rec.SourceFile == nil || *rec.SourceFile != "quote.pdf" {
		t.Errorf("unexpected source file: %v", rec.SourceFile)
	}

	var archived int
	err = db.QueryRow(
		"SELECT COUNT(*) FROM historical_archive WHERE archive_reason = 'approved'",
	).Scan(&archived)
	if err != nil {
		t.Fatalf("count archive rows: %v", err)
	}
	if archived != 2 {
		t.Errorf("expected 2 archive rows, got %d", archived)
	}
}

func TestApproveBatchDefaultsStatus(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	ids := approve(t, sys, sampleRecord("SRV-300"))

	rec, err := sys.Find(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("find record: %v", err)
	}
	if rec.ValidationStatus != "valid" {
		t.Errorf("expected status valid, got %q", rec.ValidationStatus)
	}
}

func TestApproveBatchRejectsEmpty(t *testing.T) {
	sys := newSystem(t, openDB(t))

	_, err := sys.ApproveBatch(context.Background(), records.ApproveBatchCommand{})
	if !errors.Is(err, records.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestListExcludesDeleted(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	ids := approve(t, sys, sampleRecord("SRV-100"), sampleRecord("SRV-200"), sampleRecord("SRV-300"))

	if err := sys.Delete(context.Background(), ids[1]); err != nil {
		t.Fatalf("delete record: %v", err)
	}

	page, err := sys.List(context.Background(), pagination.PageRequest{}, records.Filters{})
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("expected 2 current records, got %d", page.Total)
	}
	for _, rec := range page.Data {
		if rec.ID == ids[1] {
			t.Error("deleted record returned in listing")
		}
	}
}

func TestListFilters(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	other := sampleRecord("NET-500")
	other[validation.FieldDistributor] = "Tech Data"
	approve(t, sys, sampleRecord("SRV-100"), sampleRecord("SRV-200"), other)

	page, err := sys.List(
		context.Background(),
		pagination.PageRequest{},
		records.Filters{SKU: strPtr("srv")},
	)
	if err != nil {
		t.Fatalf("list with sku filter: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("expected 2 matches on sku contains, got %d", page.Total)
	}

	page, err = sys.List(
		context.Background(),
		pagination.PageRequest{},
		records.Filters{Distributor: strPtr("tech data")},
	)
	if err != nil {
		t.Fatalf("list with distributor filter: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("expected 1 match on distributor, got %d", page.Total)
	}
}

func TestListSearch(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	switchRec := sampleRecord("NET-500")
	switchRec[validation.FieldItemDescription] = "48-port managed switch"
	approve(t, sys, sampleRecord("SRV-100"), switchRec)

	page, err := sys.List(
		context.Background(),
		pagination.PageRequest{Search: strPtr("managed switch")},
		records.Filters{},
	)
	if err != nil {
		t.Fatalf("list with search: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 search match, got %d", page.Total)
	}
	if *page.Data[0].SKU != "NET-500" {
		t.Errorf("unexpected search result sku: %s", *page.Data[0].SKU)
	}
}

func TestFindNotFound(t *testing.T) {
	sys := newSystem(t, openDB(t))

	_, err := sys.Find(context.Background(), 42)
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAppliesChanges(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	ids := approve(t, sys, sampleRecord("SRV-100"))

	rec, err := sys.Update(context.Background(), ids[0], records.UpdateCommand{
		Brand:     strPtr("HPE"),
		UnitPrice: numPtr(1350),
	})
	if err != nil {
		t.Fatalf("update record: %v", err)
	}
	if rec.Brand == nil || *rec.Brand != "HPE" {
		t.Errorf("brand not updated: %v", rec.Brand)
	}
	if rec.UnitPrice == nil || *rec.UnitPrice != 1350 {
		t.Errorf("unit price not updated: %v", rec.UnitPrice)
	}
	if !rec.UserModified {
		t.Error("updated record should be marked user modified")
	}
}

func TestUpdateLogsChanges(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	ids := approve(t, sys, sampleRecord("SRV-100"))

	_, err := sys.Update(context.Background(), ids[0], records.UpdateCommand{
		Brand: strPtr("HPE"),
		// unchanged value, should not produce a log entry
		Distributor: strPtr("Ingram Micro"),
	})
	if err != nil {
		t.Fatalf("update record: %v", err)
	}

	entries, err := sys.ChangeLog(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("read change log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 change entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.FieldName != "brand" {
		t.Errorf("expected brand change, got %q", entry.FieldName)
	}
	if entry.OldValue == nil || *entry.OldValue != "Dell" {
		t.Errorf("unexpected old value: %v", entry.OldValue)
	}
	if entry.NewValue == nil || *entry.NewValue != "HPE" {
		t.Errorf("unexpected new value: %v", entry.NewValue)
	}
	if entry.ChangedBy != "user" {
		t.Errorf("unexpected changed_by: %q", entry.ChangedBy)
	}
}

func TestUpdateRequiresFields(t *testing.T) {
	sys := newSystem(t, openDB(t))

	_, err := sys.Update(context.Background(), 1, records.UpdateCommand{})
	if !errors.Is(err, records.ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	sys := newSystem(t, openDB(t))

	_, err := sys.Update(context.Background(), 42, records.UpdateCommand{Brand: strPtr("HPE")})
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	db := openDB(t)
	sys := newSystem(t, db)

	ids := approve(t, sys, sampleRecord("SRV-100"))

	if err := sys.Delete(context.Background(), ids[0]); err != nil {
		t.Fatalf("delete record: %v", err)
	}

	// the row survives, only is_current flips
	rec, err := sys.Find(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("find deleted record: %v", err)
	}
	if rec.IsCurrent {
		t.Error("deleted record still marked current")
	}

	if err := sys.Delete(context.Background(), ids[0]); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestValidateAnnotatesRecords(t *testing.T) {
	sys := newSystem(t, openDB(t))

	valid := sampleRecord("SRV-100")
	broken := sampleRecord("SRV-200")
	delete(broken, validation.FieldDistributor)
	broken[validation.FieldQuoteCurrency] = "XYZ"

	out, err := sys.Validate(context.Background(), []validation.Record{valid, broken})
	if err != nil {
		t.Fatalf("validate batch: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 annotated records, got %d", len(out))
	}

	if status := out[0][validation.KeyValidationStatus]; status != "valid" {
		t.Errorf("expected first record valid, got %v", status)
	}
	if status := out[1][validation.KeyValidationStatus]; status != "error" {
		t.Errorf("expected second record error, got %v", status)
	}
}
