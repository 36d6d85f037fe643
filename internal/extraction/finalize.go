package extraction

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/procuregpt/procure/pkg/validation"
)

// FinalizeNode returns a state node that normalizes the raw page items into
// canonical records, backfills the EU company, and runs batch validation.
// When verification rejected the document the node emits an empty record set
// so the graph still exits cleanly.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		if !isVerified(s) {
			s = s.Set(KeyRecords, []validation.Record{})
			return s, nil
		}

		items, err := itemsFromState(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		euCompany := extractEUCompany(s)

		records := make([]validation.Record, 0, len(items))
		for _, item := range items {
			rec := NormalizeItem(item)
			backfillEUCompany(rec, euCompany)
			records = append(records, rec)
		}

		validated, err := rt.Engine.ValidateBatch(ctx, records, rt.Lookup)
		if err != nil {
			return s, fmt.Errorf("finalize: validate batch: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"record_count", len(validated),
		)

		s = s.Set(KeyRecords, validated)
		return s, nil
	})
}

func itemsFromState(s state.State) ([]map[string]any, error) {
	val, ok := s.Get(KeyItems)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrExtractFailed, KeyItems)
	}

	items, ok := val.([]map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []map[string]any", ErrExtractFailed, KeyItems)
	}

	return items, nil
}

func extractEUCompany(s state.State) string {
	val, ok := s.Get(KeyEUCompany)
	if !ok {
		return ""
	}

	euCompany, ok := val.(string)
	if !ok {
		return ""
	}

	return euCompany
}

func backfillEUCompany(rec validation.Record, euCompany string) {
	if euCompany == "" {
		return
	}

	if validation.IsEmpty(rec[validation.FieldEUCompany]) {
		rec[validation.FieldEUCompany] = euCompany
	}
}
