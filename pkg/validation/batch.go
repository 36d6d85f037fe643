package validation

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// duplicateKey is the composite identity used for batch duplicate
// grouping. Unparseable numerics are distinguished from any parsed value
// by the ok flags rather than a sentinel number.
type duplicateKey struct {
	sku         string
	unitPrice   float64
	unitPriceOK bool
	quantity    float64
	quantityOK  bool
}

func recordKey(rec Record) duplicateKey {
	key := duplicateKey{}

	if sku, ok := rec[FieldSKU].(string); ok {
		key.sku = strings.ToUpper(strings.TrimSpace(sku))
	}
	key.unitPrice, key.unitPriceOK = ToNumeric(rec[FieldUnitPrice])
	key.quantity, key.quantityOK = ToNumeric(rec[FieldQuantity])

	return key
}

// ValidateBatch runs the full two-phase pipeline over a batch: per-record
// field and cross-field evaluation, the batch-level duplicate overlay, and
// annotation of every record with its final verdict. Records are returned
// annotated in order; a partial failure in one record never blocks the
// rest. The only error returned is context cancellation.
func (eng *Engine) ValidateBatch(ctx context.Context, records []Record, lookup AverageLookup) ([]Record, error) {
	verdicts, err := eng.EvaluateBatch(ctx, records, lookup)
	if err != nil {
		return nil, err
	}

	verdicts = eng.DetectDuplicates(records, verdicts)

	for i, rec := range records {
		verdicts[i].Annotate(rec)
	}

	return records, nil
}

// EvaluateBatch is phase one: independent per-record evaluation, run with
// bounded parallelism. Verdict order matches record order.
func (eng *Engine) EvaluateBatch(ctx context.Context, records []Record, lookup AverageLookup) ([]RecordVerdict, error) {
	verdicts := make([]RecordVerdict, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(records)))

	for i, rec := range records {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			var avg float64
			if lookup != nil {
				avg = lookup(rec)
			}

			verdicts[i] = eng.EvaluateRecord(rec, avg)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return verdicts, nil
}

// DetectDuplicates is phase two: it groups records by the composite
// (SKU, unit price, quantity) key and returns a new verdict slice where
// every member of a group of two or more has its sku verdict overwritten
// with a duplicate warning and its overall severity escalated. Escalation
// is monotonic: an existing Error is preserved. Verdicts for records
// outside any duplicate group are returned unchanged.
func (eng *Engine) DetectDuplicates(records []Record, verdicts []RecordVerdict) []RecordVerdict {
	groups := make(map[duplicateKey][]int, len(records))
	for i, rec := range records {
		key := recordKey(rec)
		groups[key] = append(groups[key], i)
	}

	result := make([]RecordVerdict, len(verdicts))
	copy(result, verdicts)

	for key, indices := range groups {
		if len(indices) < 2 {
			continue
		}

		display := key.sku
		if display == "" {
			display = "Unknown"
		}
		msg := fmt.Sprintf(
			"Possible duplicate: SKU %s appears %d times with same price and quantity",
			display, len(indices),
		)

		for _, i := range indices {
			result[i] = escalateDuplicate(result[i], msg)
		}
	}

	return result
}

func escalateDuplicate(v RecordVerdict, msg string) RecordVerdict {
	fields := make(map[string]FieldVerdict, len(v.Fields))
	for name, fv := range v.Fields {
		fields[name] = fv
	}
	fields[FieldSKU] = FieldVerdict{Status: Warning, Message: msg}

	return RecordVerdict{
		Overall: v.Overall.Max(Warning),
		Fields:  fields,
		Summary: appendSummary(v.Summary, msg),
	}
}

func workerCount(batchSize int) int {
	return max(min(runtime.NumCPU(), batchSize), 1)
}
