package validation

import (
	"fmt"
	"math"
	"time"
)

func (eng *Engine) evaluateCrossFields(ev *evaluation, rec Record, historicalAvg float64) {
	eng.checkPriceDeviation(ev, rec, historicalAvg)
	eng.checkTotalConsistency(ev, rec)
	eng.checkDates(ev, rec)
}

// checkPriceDeviation compares unit_price against the historical average.
// Deviations at or beyond the error threshold escalate to Error, those at
// or beyond the warn threshold to Warning; smaller deviations leave the
// existing verdict untouched.
func (eng *Engine) checkPriceDeviation(ev *evaluation, rec Record, historicalAvg float64) {
	unitPrice, ok := ToNumeric(rec[FieldUnitPrice])
	if !ok || historicalAvg <= 0 {
		return
	}

	deviation := math.Abs(unitPrice-historicalAvg) / historicalAvg
	msg := fmt.Sprintf(
		"Unit price (%.2f) deviates %.0f%% from historical avg (%.2f)",
		unitPrice, deviation*100, historicalAvg,
	)

	switch {
	case deviation >= eng.cfg.PriceErrorDeviation:
		ev.set(FieldUnitPrice, Error, msg)
	case deviation >= eng.cfg.PriceWarnDeviation:
		ev.setUnlessWorse(FieldUnitPrice, Warning, msg)
	}
}

// checkTotalConsistency verifies total_price against unit_price multiplied
// by quantity within the configured tolerance.
func (eng *Engine) checkTotalConsistency(ev *evaluation, rec Record) {
	unitPrice, okUnit := ToNumeric(rec[FieldUnitPrice])
	quantity, okQty := ToNumeric(rec[FieldQuantity])
	totalPrice, okTotal := ToNumeric(rec[FieldTotalPrice])

	if !okUnit || !okQty || !okTotal || quantity <= 0 {
		return
	}

	expected := unitPrice * quantity
	if expected <= 0 {
		return
	}

	diff := math.Abs(totalPrice-expected) / expected
	if diff > eng.cfg.TotalTolerance {
		ev.setUnlessWorse(FieldTotalPrice, Warning, fmt.Sprintf(
			"Total (%.2f) differs from unit price x quantity (%.2f) by %.1f%%",
			totalPrice, expected, diff*100,
		))
	}
}

// checkDates validates the four date fields and their ordering. Empty
// dates are valid; non-empty unparseable dates are errors.
func (eng *Engine) checkDates(ev *evaluation, rec Record) {
	parsed := make(map[string]time.Time, len(dateFields))

	for _, name := range dateFields {
		raw := rec[name]
		if IsEmpty(raw) {
			if _, ok := ev.status(name); !ok {
				ev.set(name, Valid, "")
			}
			continue
		}

		t, ok := ParseDate(raw)
		if !ok {
			ev.set(name, Error, fmt.Sprintf("Cannot parse date: %v", raw))
			continue
		}

		parsed[name] = t
		if _, ok := ev.status(name); !ok {
			ev.set(name, Valid, "")
		}
	}

	if start, ok := parsed[FieldStartDate]; ok {
		if end, ok := parsed[FieldEndDate]; ok && start.After(end) {
			ev.set(FieldStartDate, Error, "Start date is after end date")
			ev.set(FieldEndDate, Error, "End date is before start date")
		}
	}

	if qd, ok := parsed[FieldQuotationDate]; ok {
		if qe, ok := parsed[FieldQuotationEndDate]; ok && qd.After(qe) {
			ev.set(FieldQuotationDate, Error, "Quotation date is after quotation end date")
		}
	}
}
