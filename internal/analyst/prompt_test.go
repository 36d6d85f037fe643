package analyst

import (
	"fmt"
	"strings"
	"testing"

	"github.com/procuregpt/procure/pkg/validation"
)

func TestBuildPromptBare(t *testing.T) {
	prompt := buildPrompt(Request{Query: "What should I negotiate?"})

	if !strings.HasPrefix(prompt, systemInstructions) {
		t.Error("prompt missing system instructions prefix")
	}
	if !strings.HasSuffix(prompt, "User Question: What should I negotiate?") {
		t.Errorf("prompt missing question suffix: %q", prompt)
	}
	if strings.Contains(prompt, "Current Records") {
		t.Error("prompt mentions records without any context")
	}
}

func TestBuildPromptSamplesRecords(t *testing.T) {
	records := make([]validation.Record, 15)
	for i := range records {
		records[i] = validation.Record{
			validation.FieldSKU: fmt.Sprintf("SKU-%02d", i),
		}
	}

	prompt := buildPrompt(Request{Query: "q", ContextRecords: records})

	if !strings.Contains(prompt, "Current Records (15 items):") {
		t.Error("prompt missing record count header")
	}
	if !strings.Contains(prompt, "... and 5 more records.") {
		t.Error("prompt missing overflow note")
	}
	if !strings.Contains(prompt, "SKU-14") {
		t.Error("overflow SKU list missing later SKUs")
	}
	// Only the first ten records are embedded as JSON.
	if strings.Count(prompt, `"sku": "SKU-0`) == 0 {
		t.Error("sampled records not embedded as JSON")
	}
	if strings.Contains(prompt, `"sku": "SKU-1`) {
		t.Error("records beyond the sample cap embedded as JSON")
	}
}

func TestBuildPromptHistoricalSummary(t *testing.T) {
	prompt := buildPrompt(Request{
		Query:             "q",
		HistoricalSummary: map[string]any{"total_records": 120},
	})

	if !strings.Contains(prompt, "Historical Summary:") {
		t.Error("prompt missing historical summary section")
	}
	if !strings.Contains(prompt, `"total_records": 120`) {
		t.Error("historical summary not embedded as JSON")
	}
}

func TestCollectSKUs(t *testing.T) {
	records := []validation.Record{
		{validation.FieldSKU: "A"},
		{validation.FieldSKU: "B"},
		{validation.FieldSKU: "A"},
		{validation.FieldSKU: ""},
		{},
	}

	got := collectSKUs(records)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("collectSKUs = %v, want [A B]", got)
	}
}

func TestCollectSKUsCapped(t *testing.T) {
	records := make([]validation.Record, 30)
	for i := range records {
		records[i] = validation.Record{
			validation.FieldSKU: fmt.Sprintf("SKU-%02d", i),
		}
	}

	if got := collectSKUs(records); len(got) != skuListLimit {
		t.Errorf("collectSKUs returned %d entries, want %d", len(got), skuListLimit)
	}
}
