package validation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/procuregpt/procure/pkg/validation"
)

func dupeRecord() validation.Record {
	rec := validRecord()
	rec["sku"] = "DUPE"
	rec["unit_price"] = 100.0
	rec["quantity"] = 1.0
	rec["total_price"] = 100.0
	return rec
}

func TestValidateBatchAnnotates(t *testing.T) {
	eng := validation.New(validation.Config{})

	records, err := eng.ValidateBatch(context.Background(), []validation.Record{validRecord()}, nil)
	if err != nil {
		t.Fatalf("ValidateBatch error: %v", err)
	}

	rec := records[0]
	if rec["validation_status"] != "valid" {
		t.Errorf("validation_status = %v, want valid", rec["validation_status"])
	}
	if rec["validation_message"] != validation.AllFieldsValid {
		t.Errorf("validation_message = %v", rec["validation_message"])
	}

	fields, ok := rec["field_validation"].(map[string]validation.FieldVerdict)
	if !ok {
		t.Fatalf("field_validation has type %T", rec["field_validation"])
	}
	for _, name := range compulsoryFields() {
		if _, ok := fields[name]; !ok {
			t.Errorf("field_validation missing %s", name)
		}
	}

	// Original fields survive annotation untouched.
	if rec["sku"] != "C9300-48P-A" {
		t.Errorf("sku rewritten: %v", rec["sku"])
	}
}

func TestValidateBatchDuplicates(t *testing.T) {
	eng := validation.New(validation.Config{})

	records, err := eng.ValidateBatch(
		context.Background(),
		[]validation.Record{dupeRecord(), dupeRecord()},
		nil,
	)
	if err != nil {
		t.Fatalf("ValidateBatch error: %v", err)
	}

	want := "Possible duplicate: SKU DUPE appears 2 times with same price and quantity"
	for i, rec := range records {
		if rec["validation_status"] != "warning" {
			t.Errorf("record %d status = %v, want warning", i, rec["validation_status"])
		}

		fields := rec["field_validation"].(map[string]validation.FieldVerdict)
		sku := fields["sku"]
		if sku.Status != validation.Warning || sku.Message != want {
			t.Errorf("record %d sku verdict = %+v", i, sku)
		}

		msg, _ := rec["validation_message"].(string)
		if msg != want {
			t.Errorf("record %d message = %q, want %q", i, msg, want)
		}
	}
}

func TestValidateBatchDuplicateKeyBoundaries(t *testing.T) {
	eng := validation.New(validation.Config{})

	a := dupeRecord()
	b := dupeRecord()
	b["sku"] = "  dupe  " // key matching trims and upper-cases
	c := dupeRecord()
	c["unit_price"] = 101.0
	c["total_price"] = 101.0

	records, err := eng.ValidateBatch(context.Background(), []validation.Record{a, b, c}, nil)
	if err != nil {
		t.Fatalf("ValidateBatch error: %v", err)
	}

	if records[0]["validation_status"] != "warning" || records[1]["validation_status"] != "warning" {
		t.Errorf("matching records not flagged: %v / %v",
			records[0]["validation_status"], records[1]["validation_status"])
	}
	if records[2]["validation_status"] != "valid" {
		t.Errorf("distinct price flagged as duplicate: %v", records[2]["validation_status"])
	}
}

// Duplicate escalation is monotonic: an error record keeps its error
// status even when its sku verdict is rewritten with the warning.
func TestDetectDuplicatesMonotonic(t *testing.T) {
	eng := validation.New(validation.Config{})

	bad := dupeRecord()
	bad["distributor"] = ""

	records, err := eng.ValidateBatch(
		context.Background(),
		[]validation.Record{bad, dupeRecord()},
		nil,
	)
	if err != nil {
		t.Fatalf("ValidateBatch error: %v", err)
	}

	if records[0]["validation_status"] != "error" {
		t.Errorf("error record downgraded to %v", records[0]["validation_status"])
	}
	if records[1]["validation_status"] != "warning" {
		t.Errorf("valid record = %v, want warning", records[1]["validation_status"])
	}

	msg := records[0]["validation_message"].(string)
	if !strings.Contains(msg, "Missing compulsory field: distributor") ||
		!strings.Contains(msg, "Possible duplicate") {
		t.Errorf("message lost a finding: %q", msg)
	}
}

func TestDetectDuplicatesLeavesPhaseOneVerdictsIntact(t *testing.T) {
	eng := validation.New(validation.Config{})
	records := []validation.Record{dupeRecord(), dupeRecord()}

	phase1, err := eng.EvaluateBatch(context.Background(), records, nil)
	if err != nil {
		t.Fatalf("EvaluateBatch error: %v", err)
	}

	overlaid := eng.DetectDuplicates(records, phase1)

	if phase1[0].Fields["sku"].Status != validation.Valid {
		t.Error("phase-1 verdict mutated by duplicate overlay")
	}
	if overlaid[0].Fields["sku"].Status != validation.Warning {
		t.Error("overlay missing duplicate warning")
	}
}

func TestValidateBatchHistoricalLookup(t *testing.T) {
	eng := validation.New(validation.Config{})

	rec := validRecord()
	rec["unit_price"] = 160.0
	rec["total_price"] = 800.0

	averages := map[string]float64{"C9300-48P-A": 100.0}
	lookup := func(r validation.Record) float64 {
		sku, _ := r["sku"].(string)
		return averages[sku]
	}

	records, err := eng.ValidateBatch(context.Background(), []validation.Record{rec}, lookup)
	if err != nil {
		t.Fatalf("ValidateBatch error: %v", err)
	}

	if records[0]["validation_status"] != "error" {
		t.Errorf("status = %v, want error from price anomaly", records[0]["validation_status"])
	}
}

func TestValidateBatchUnknownSKUGroup(t *testing.T) {
	eng := validation.New(validation.Config{})

	a := dupeRecord()
	a["sku"] = ""
	b := dupeRecord()
	b["sku"] = ""

	records, err := eng.ValidateBatch(context.Background(), []validation.Record{a, b}, nil)
	if err != nil {
		t.Fatalf("ValidateBatch error: %v", err)
	}

	msg := records[0]["validation_message"].(string)
	if !strings.Contains(msg, "SKU Unknown appears 2 times") {
		t.Errorf("message = %q, want Unknown display name", msg)
	}
	// Missing sku is an error; duplicate escalation must not downgrade it.
	if records[0]["validation_status"] != "error" {
		t.Errorf("status = %v, want error", records[0]["validation_status"])
	}
}

func TestValidateBatchLargeBatch(t *testing.T) {
	eng := validation.New(validation.Config{})

	records := make([]validation.Record, 100)
	for i := range records {
		records[i] = validRecord()
	}

	out, err := eng.ValidateBatch(context.Background(), records, nil)
	if err != nil {
		t.Fatalf("ValidateBatch error: %v", err)
	}

	// All 100 share the same composite key, so every record is flagged.
	for i, rec := range out {
		msg, _ := rec["validation_message"].(string)
		if !strings.Contains(msg, "appears 100 times") {
			t.Fatalf("record %d message = %q", i, msg)
		}
	}
}

func TestValidateBatchCancelled(t *testing.T) {
	eng := validation.New(validation.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := make([]validation.Record, 50)
	for i := range records {
		records[i] = validRecord()
	}

	if _, err := eng.ValidateBatch(ctx, records, nil); err == nil {
		t.Error("expected context cancellation error")
	}
}
