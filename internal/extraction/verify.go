package extraction

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// VerifyNode returns a state node that sends the first page image to the
// vision model and asks whether the document is procurement material. The
// model is instructed to answer with a bare YES or NO.
func VerifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		pages, err := extractPages(s)
		if err != nil {
			return s, fmt.Errorf("verify: %w", err)
		}

		if len(pages) == 0 {
			return s, fmt.Errorf("verify: %w: document has no pages", ErrVerifyFailed)
		}

		verified, err := verifyPage(ctx, rt, pages[0])
		if err != nil {
			return s, fmt.Errorf("verify: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "verify node complete",
			"verified", verified,
		)

		s = s.Set(KeyVerified, verified)
		return s, nil
	})
}

func verifyPage(ctx context.Context, rt *Runtime, page Page) (bool, error) {
	a, err := agent.New(&rt.Agent)
	if err != nil {
		return false, fmt.Errorf("%w: create agent: %w", ErrVerifyFailed, err)
	}

	dataURI, err := encodePageImage(page.ImagePath)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}

	resp, err := a.Vision(ctx, verifyPrompt, []string{dataURI})
	if err != nil {
		return false, fmt.Errorf("%w: vision call: %w", ErrVerifyFailed, err)
	}

	answer := strings.ToUpper(strings.TrimSpace(resp.Content()))
	return strings.HasPrefix(answer, "YES"), nil
}

func encodePageImage(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	dataURI, err := encoding.EncodeImageDataURI(data, document.PNG)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return dataURI, nil
}
