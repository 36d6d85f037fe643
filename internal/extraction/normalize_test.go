package extraction_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/procuregpt/procure/internal/extraction"
	"github.com/procuregpt/procure/pkg/validation"
)

func TestNormalizeItemFieldNames(t *testing.T) {
	item := map[string]any{
		"SKU":                "ABC-123",
		"Item Description":   "Network switch",
		"Comments/Notes":     "expedite",
		"Quotation Ref No":   "Q-9",
		"Quotation Validity": "30 days",
	}

	rec := extraction.NormalizeItem(item)

	want := validation.Record{
		"sku":                "ABC-123",
		"item_description":   "Network switch",
		"comments_notes":     "expedite",
		"quotation_ref_no":   "Q-9",
		"quotation_validity": "30 days",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("NormalizeItem mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeItemUnknownFieldFallback(t *testing.T) {
	rec := extraction.NormalizeItem(map[string]any{
		"Delivery Terms": "FOB",
		"Region/Zone":    "EMEA",
	})

	if rec["delivery_terms"] != "FOB" {
		t.Errorf("delivery_terms = %v, want FOB", rec["delivery_terms"])
	}
	if rec["region_zone"] != "EMEA" {
		t.Errorf("region_zone = %v, want EMEA", rec["region_zone"])
	}
}

func TestNormalizeItemNumericCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"currency symbol", "$1,234.50", 1234.50},
		{"plain string", "42", 42.0},
		{"already numeric", 17.5, 17.5},
		{"embedded spaces", "1 250", 1250.0},
		{"empty string", "", nil},
		{"garbage preserved", "call for pricing", "call for pricing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := extraction.NormalizeItem(map[string]any{"Unit Price": tt.value})
			if got := rec["unit_price"]; got != tt.want {
				t.Errorf("unit_price = %v (%T), want %v", got, got, tt.want)
			}
		})
	}
}

func TestNormalizeItemQuantityAndTotalCoerced(t *testing.T) {
	rec := extraction.NormalizeItem(map[string]any{
		"Quantity":    "10",
		"Total Price": "$500.00",
		"Serial No":   "123",
	})

	if rec["quantity"] != 10.0 {
		t.Errorf("quantity = %v, want 10.0", rec["quantity"])
	}
	if rec["total_price"] != 500.0 {
		t.Errorf("total_price = %v, want 500.0", rec["total_price"])
	}
	// Non-numeric fields keep their raw value.
	if rec["serial_no"] != "123" {
		t.Errorf("serial_no = %v, want string 123", rec["serial_no"])
	}
}
