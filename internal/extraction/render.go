package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/image"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"golang.org/x/sync/errgroup"
)

const sourcePDF = "source.pdf"

// Page references a single rendered page image on disk.
type Page struct {
	PageNumber int
	ImagePath  string
}

// RenderNode returns a state node that renders every page of the temp PDF
// to a PNG image using bounded errgroup concurrency.
func RenderNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		tempDir, err := extractTempDir(s)
		if err != nil {
			return s, fmt.Errorf("render: %w", err)
		}

		pages, err := renderPages(ctx, tempDir)
		if err != nil {
			return s, fmt.Errorf("render: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "render node complete",
			"page_count", len(pages),
		)

		s = s.Set(KeyPages, pages)
		return s, nil
	})
}

func requirePDF(doc Document) error {
	ext := strings.ToLower(filepath.Ext(doc.Filename))
	if ext != ".pdf" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, doc.Filename)
	}

	if len(doc.Data) == 0 {
		return fmt.Errorf("%w: empty document", ErrRenderFailed)
	}

	return nil
}

func sourcePath(tempDir string) string {
	return filepath.Join(tempDir, sourcePDF)
}

func extractTempDir(s state.State) (string, error) {
	val, ok := s.Get(KeyTempDir)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrRenderFailed, KeyTempDir)
	}

	tempDir, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not string", ErrRenderFailed, KeyTempDir)
	}

	return tempDir, nil
}

func extractPages(s state.State) ([]Page, error) {
	val, ok := s.Get(KeyPages)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrExtractFailed, KeyPages)
	}

	pages, ok := val.([]Page)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []Page", ErrExtractFailed, KeyPages)
	}

	return pages, nil
}

func renderPages(ctx context.Context, tempDir string) ([]Page, error) {
	pdfDoc, err := document.OpenPDF(sourcePath(tempDir))
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", ErrRenderFailed, err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(config.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create renderer: %w", ErrRenderFailed, err)
	}

	allPages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("%w: extract pages: %w", ErrRenderFailed, err)
	}

	pageCount := len(allPages)
	pages := make([]Page, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(pageCount))

	for i, page := range allPages {
		pageNum := i + 1
		imgPath := filepath.Join(tempDir, fmt.Sprintf("page-%d.png", pageNum))
		pages[i] = Page{
			PageNumber: pageNum,
			ImagePath:  imgPath,
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			data, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", pageNum, err)
			}

			if err := os.WriteFile(imgPath, data, 0600); err != nil {
				return fmt.Errorf("write page %d image: %w", pageNum, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return pages, nil
}

func workerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}
