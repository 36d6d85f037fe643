package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// evaluation accumulates field verdicts for a single record.
type evaluation struct {
	fields map[string]FieldVerdict
}

func newEvaluation() *evaluation {
	return &evaluation{fields: make(map[string]FieldVerdict, len(FieldOrder))}
}

// set records a verdict for a field, overwriting any existing verdict.
func (e *evaluation) set(name string, status Severity, message string) {
	e.fields[name] = FieldVerdict{Status: status, Message: message}
}

// setUnlessWorse records a verdict only when it does not lower an
// existing verdict's severity.
func (e *evaluation) setUnlessWorse(name string, status Severity, message string) {
	if existing, ok := e.fields[name]; ok && existing.Status > status {
		return
	}
	e.set(name, status, message)
}

// status returns the current severity for a field, Valid if unset.
func (e *evaluation) status(name string) (Severity, bool) {
	fv, ok := e.fields[name]
	return fv.Status, ok
}

// EvaluateRecord runs field-level and cross-field rules for a single
// record and returns its verdict. historicalAvg enables the unit price
// anomaly check when positive; pass zero when no comparison data exists.
//
// Every compulsory field is guaranteed a verdict, and the overall
// severity is the maximum across all field verdicts. The record itself
// is not modified; evaluation of an already-annotated record with
// unchanged raw values yields the same verdict.
func (eng *Engine) EvaluateRecord(rec Record, historicalAvg float64) RecordVerdict {
	ev := newEvaluation()

	eng.evaluateTextFields(ev, rec)
	eng.evaluateNumericFields(ev, rec)
	eng.evaluateCrossFields(ev, rec, historicalAvg)

	for _, name := range optionalFields {
		if _, ok := ev.status(name); !ok {
			ev.set(name, Valid, "")
		}
	}

	return RecordVerdict{
		Overall: overallSeverity(ev.fields),
		Fields:  ev.fields,
		Summary: buildSummary(ev.fields),
	}
}

func (eng *Engine) evaluateTextFields(ev *evaluation, rec Record) {
	for _, name := range eng.text {
		if IsEmpty(rec[name]) {
			ev.set(name, Error, fmt.Sprintf("Missing compulsory field: %s", name))
		} else {
			ev.set(name, Valid, "")
		}
	}

	if sku, ok := rec[FieldSKU].(string); ok && !IsEmpty(sku) {
		if utf8.RuneCountInString(strings.TrimSpace(sku)) < 3 {
			ev.setUnlessWorse(FieldSKU, Warning,
				fmt.Sprintf("SKU '%s' has fewer than 3 characters", sku))
		}
	}

	if currency, ok := rec[FieldQuoteCurrency].(string); ok && !IsEmpty(currency) {
		if _, supported := eng.currencies[strings.ToUpper(strings.TrimSpace(currency))]; !supported {
			ev.setUnlessWorse(FieldQuoteCurrency, Warning,
				fmt.Sprintf("Unsupported currency: %s", currency))
		}
	}
}

func (eng *Engine) evaluateNumericFields(ev *evaluation, rec Record) {
	for _, name := range eng.numeric {
		num, ok := ToNumeric(rec[name])

		switch {
		case !ok:
			ev.set(name, Error, fmt.Sprintf("Missing compulsory field: %s", name))
		case num < 0:
			ev.set(name, Error, fmt.Sprintf("Negative value for %s: %s", name, formatNumber(num)))
		case name == FieldQuantity && num == 0:
			ev.set(name, Error, "Quantity cannot be zero")
		case name == FieldQuantity && num > eng.cfg.HighQuantity:
			ev.set(name, Warning, fmt.Sprintf("High quantity: %s", formatNumber(num)))
		default:
			if status, exists := ev.status(name); !exists || status == Valid {
				ev.set(name, Valid, "")
			}
		}
	}
}
