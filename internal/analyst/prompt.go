package analyst

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/procuregpt/procure/pkg/validation"
)

const systemInstructions = `You are a procurement analyst assistant. You help analyze procurement data, compare pricing, identify trends, and provide actionable recommendations for procurement decisions.`

const (
	sampleRecordLimit = 10
	skuListLimit      = 20
)

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(systemInstructions)

	if len(req.ContextRecords) > 0 {
		fmt.Fprintf(&b, "\n\nCurrent Records (%d items):\n", len(req.ContextRecords))

		sample := req.ContextRecords
		if len(sample) > sampleRecordLimit {
			sample = sample[:sampleRecordLimit]
		}
		b.WriteString(marshalContext(sample))

		if overflow := len(req.ContextRecords) - sampleRecordLimit; overflow > 0 {
			fmt.Fprintf(
				&b, "\n... and %d more records. All SKUs: %s",
				overflow,
				strings.Join(collectSKUs(req.ContextRecords), ", "),
			)
		}
	}

	if len(req.HistoricalSummary) > 0 {
		b.WriteString("\n\nHistorical Summary:\n")
		b.WriteString(marshalContext(req.HistoricalSummary))
	}

	fmt.Fprintf(&b, "\n\nUser Question: %s", req.Query)
	return b.String()
}

func marshalContext(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func collectSKUs(records []validation.Record) []string {
	seen := make(map[string]struct{})
	var skus []string

	for _, rec := range records {
		sku, ok := rec[validation.FieldSKU].(string)
		if !ok || sku == "" {
			continue
		}
		if _, dup := seen[sku]; dup {
			continue
		}
		seen[sku] = struct{}{}

		skus = append(skus, sku)
		if len(skus) == skuListLimit {
			break
		}
	}

	return skus
}
