package validation_test

import (
	"math"
	"testing"

	"github.com/procuregpt/procure/pkg/validation"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"NA", "NA", true},
		{"N/A", "N/A", true},
		{"NaN token mixed case", "NaN", true},
		{"NULL", "NULL", true},
		{"None", "None", true},
		{"lowercase null token", "null", true},
		{"padded token", "  n/a  ", true},
		{"NaN float", math.NaN(), true},
		{"regular string", "hello", false},
		{"zero number", float64(0), false},
		{"integer", 123, false},
		{"negative", -1.5, false},
		{"zero-like string", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validation.IsEmpty(tt.value); got != tt.want {
				t.Errorf("IsEmpty(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestToNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float passthrough", 42.5, 42.5, true},
		{"zero", float64(0), 0, true},
		{"int", 7, 7, true},
		{"negative float", -3.25, -3.25, true},
		{"NaN float", math.NaN(), 0, false},
		{"plain string", "123.45", 123.45, true},
		{"comma separators", "1,234,567.89", 1234567.89, true},
		{"dollar sign", "$500", 500, true},
		{"internal spaces", "1 234", 1234, true},
		{"currency with everything", " $1,250.00 ", 1250, true},
		{"negative string", "-42", -42, true},
		{"empty string", "", 0, false},
		{"null token", "N/A", 0, false},
		{"lowercase null token", "none", 0, false},
		{"non-numeric string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := validation.ToNumeric(tt.value)
			if ok != tt.ok {
				t.Fatalf("ToNumeric(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Errorf("ToNumeric(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
