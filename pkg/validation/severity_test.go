package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/procuregpt/procure/pkg/validation"
)

func TestSeverityOrdering(t *testing.T) {
	if !(validation.Valid < validation.Warning && validation.Warning < validation.Error) {
		t.Fatal("severity ordering broken")
	}

	tests := []struct {
		name string
		a, b validation.Severity
		want validation.Severity
	}{
		{"valid vs warning", validation.Valid, validation.Warning, validation.Warning},
		{"warning vs error", validation.Warning, validation.Error, validation.Error},
		{"error vs valid", validation.Error, validation.Valid, validation.Error},
		{"equal", validation.Warning, validation.Warning, validation.Warning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Max(tt.b); got != tt.want {
				t.Errorf("%v.Max(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(validation.FieldVerdict{
		Status:  validation.Warning,
		Message: "High quantity: 15000",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"status":"warning","message":"High quantity: 15000"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var fv validation.FieldVerdict
	if err := json.Unmarshal(data, &fv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fv.Status != validation.Warning {
		t.Errorf("round-trip status = %v", fv.Status)
	}
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []validation.Severity{validation.Valid, validation.Warning, validation.Error} {
		got, err := validation.ParseSeverity(s.String())
		if err != nil {
			t.Fatalf("ParseSeverity(%s): %v", s, err)
		}
		if got != s {
			t.Errorf("ParseSeverity(%s) = %v", s, got)
		}
	}

	if _, err := validation.ParseSeverity("pending"); err == nil {
		t.Error("expected error for unknown severity")
	}
}
