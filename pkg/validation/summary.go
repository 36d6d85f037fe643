package validation

import (
	"fmt"
	"math"
	"sort"
)

// Summary counts records in a batch by their annotated validation status.
type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

// Summarize tallies annotated records by validation status. Records
// without a status annotation count toward the total only.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}

	for _, rec := range records {
		status, _ := rec[KeyValidationStatus].(string)
		switch status {
		case Valid.String():
			s.Valid++
		case Warning.String():
			s.Warning++
		case Error.String():
			s.Error++
		}
	}

	return s
}

// MissingFields returns the sorted names of compulsory fields that are
// empty on the record.
func (eng *Engine) MissingFields(rec Record) []string {
	missing := make([]string, 0)

	for _, name := range eng.text {
		if IsEmpty(rec[name]) {
			missing = append(missing, name)
		}
	}
	for _, name := range eng.numeric {
		if IsEmpty(rec[name]) {
			missing = append(missing, name)
		}
	}

	sort.Strings(missing)
	return missing
}

// CheckPriceAnomaly reports whether the record's unit price deviates from
// the historical average by at least the warn threshold, with a message
// describing the direction of the deviation. A non-positive average or an
// unparseable unit price yields no anomaly.
func (eng *Engine) CheckPriceAnomaly(rec Record, historicalAvg float64) (bool, string) {
	if historicalAvg <= 0 {
		return false, ""
	}

	unitPrice, ok := ToNumeric(rec[FieldUnitPrice])
	if !ok {
		return false, ""
	}

	deviation := math.Abs(unitPrice-historicalAvg) / historicalAvg
	if deviation < eng.cfg.PriceWarnDeviation {
		return false, ""
	}

	direction := "above"
	if unitPrice < historicalAvg {
		direction = "below"
	}

	return true, fmt.Sprintf(
		"Unit price (%.2f) is %.0f%% %s historical average (%.2f)",
		unitPrice, deviation*100, direction, historicalAvg,
	)
}
