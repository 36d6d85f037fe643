// Package analyst exposes a conversational procurement analyst backed by the
// configured LLM provider. Questions are grounded with a sample of current
// records and a historical pricing summary.
package analyst

import (
	"context"

	"github.com/procuregpt/procure/pkg/validation"
)

// Request is one analyst question with optional grounding context.
type Request struct {
	Query             string              `json:"query"`
	ContextRecords    []validation.Record `json:"context_records,omitempty"`
	HistoricalSummary map[string]any      `json:"historical_summary,omitempty"`
}

// Response is the analyst's answer plus follow-up suggestions.
type Response struct {
	Answer      string   `json:"response"`
	Suggestions []string `json:"suggestions"`
	Confidence  float64  `json:"confidence"`
}

// Health reports whether the analyst's agent configuration is usable.
type Health struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// System defines the public contract for analyst operations.
type System interface {
	// Handler creates an HTTP handler bound to this system.
	Handler() *Handler

	// Query sends a question to the analyst with procurement context.
	Query(ctx context.Context, req Request) (*Response, error)

	// Health verifies that an agent can be constructed from configuration.
	Health(ctx context.Context) (*Health, error)
}
