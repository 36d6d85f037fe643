package validation

import (
	"strings"
	"time"
)

// dateLayouts are tried in this fixed order; the first successful parse
// wins. Ambiguous day/month-first strings are therefore consumed by the
// US layout before the European one is tried ("01/02/2024" is January 2,
// not February 1). This is a deliberate, documented property of the
// intake pipeline, not a defect.
var dateLayouts = []string{
	"2006-01-02",          // ISO: 2024-01-15
	"2006-01-02T15:04:05", // ISO date-time
	"1/2/2006",            // US: 01/15/2024
	"2-Jan-06",            // European short: 15-Jan-24
	"2-Jan-2006",          // European full: 15-Jan-2024
	"02/01/2006",          // DD/MM/YYYY
	"20060102",            // compact: 20240115
	"Jan 2, 2006",         // Jan 15, 2024
	"2 Jan 2006",          // 15 Jan 2024
}

// ParseDate parses a raw date value against the fixed candidate layouts.
// Non-string or blank input is unparseable, reported by the false return.
func ParseDate(value any) (time.Time, bool) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
