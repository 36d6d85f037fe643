package validation

import (
	"math"
	"strconv"
	"strings"
)

// Tokens treated as absent values after trimming and upper-casing.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NAN":  {},
	"NULL": {},
	"NONE": {},
}

// IsEmpty reports whether a raw value counts as absent: nil, a NaN float,
// or a string whose trimmed upper-case form is a null-like token.
// Non-string numbers, including zero, are never empty.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case string:
		_, ok := nullTokens[strings.ToUpper(strings.TrimSpace(v))]
		return ok
	default:
		return false
	}
}

// ToNumeric coerces a raw value to a float64. Numeric types pass through
// (NaN is unparseable). Strings are trimmed with commas, dollar signs, and
// internal spaces stripped before decimal parsing. Everything else is
// unparseable, reported by the false return.
func ToNumeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case float32:
		if math.IsNaN(float64(v)) {
			return 0, false
		}
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		cleaned := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(v))
		if _, null := nullTokens[strings.ToUpper(cleaned)]; null {
			return 0, false
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(n) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// formatNumber renders a numeric value for verdict messages without
// trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
