package extraction

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"golang.org/x/sync/errgroup"

	"github.com/procuregpt/procure/pkg/formatting"
)

type itemsResponse struct {
	Items []map[string]any `json:"items"`
}

// ExtractNode returns a state node that performs parallel page-by-page line
// item extraction using bounded errgroup concurrency. Each goroutine creates
// its own agent and sends the page image to the vision model; per-page item
// lists are reassembled in page order.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		pages, err := extractPages(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		items, err := extractItems(ctx, rt, pages)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"page_count", len(pages),
			"item_count", len(items),
		)

		s = s.Set(KeyItems, items)
		return s, nil
	})
}

func extractItems(ctx context.Context, rt *Runtime, pages []Page) ([]map[string]any, error) {
	pageItems := make([][]map[string]any, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(pages)))

	for i := range pages {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			a, err := agent.New(&rt.Agent)
			if err != nil {
				return fmt.Errorf("page %d: create agent: %w", i+1, err)
			}

			dataURI, err := encodePageImage(pages[i].ImagePath)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}

			resp, err := a.Vision(gctx, extractPrompt, []string{dataURI})
			if err != nil {
				return fmt.Errorf("page %d: vision call: %w", i+1, err)
			}

			parsed, err := formatting.Parse[itemsResponse](resp.Content())
			if err != nil {
				return fmt.Errorf("page %d: parse response: %w", i+1, err)
			}

			pageItems[i] = parsed.Items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	var items []map[string]any
	for _, page := range pageItems {
		items = append(items, page...)
	}

	return items, nil
}
