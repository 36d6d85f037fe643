// Package extraction implements LLM-backed line item extraction from
// procurement documents as a state-graph workflow: verify that the document
// is procurement material, extract line items page by page with a vision
// model, then normalize and validate the assembled batch.
package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/procuregpt/procure/pkg/validation"
)

// Document is the raw input handed to the workflow.
type Document struct {
	Data        []byte
	Filename    string
	ContentType string
	EUCompany   string
}

// Result holds the extracted and validated line items.
type Result struct {
	Records   []validation.Record `json:"records"`
	PageCount int                 `json:"page_count"`
	Verified  bool                `json:"verified"`
}

// System defines the public contract for document extraction.
type System interface {
	// Extract runs the full workflow and returns validated line items.
	Extract(ctx context.Context, doc Document) (*Result, error)
	// Verify runs only the verification check.
	Verify(ctx context.Context, doc Document) (bool, error)
}

// Runtime bundles the dependencies that workflow nodes require.
type Runtime struct {
	Agent  gaconfig.AgentConfig
	Engine *validation.Engine
	Lookup validation.AverageLookup
	Logger *slog.Logger
}

type workflow struct {
	rt *Runtime
}

// New creates an extraction system from the given runtime.
func New(rt *Runtime) System {
	return &workflow{
		rt: &Runtime{
			Agent:  rt.Agent,
			Engine: rt.Engine,
			Lookup: rt.Lookup,
			Logger: rt.Logger.With("system", "extraction"),
		},
	}
}

// State bag keys shared across workflow nodes.
const (
	KeyTempDir   = "temp_dir"
	KeyFilename  = "filename"
	KeyEUCompany = "eu_company"
	KeyPages     = "pages"
	KeyVerified  = "verified"
	KeyItems     = "items"
	KeyRecords   = "records"
)

func (wf *workflow) Extract(ctx context.Context, doc Document) (*Result, error) {
	if err := requirePDF(doc); err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "procure-extract-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	graph, err := buildGraph(wf.rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState, err := seedState(doc, tempDir)
	if err != nil {
		return nil, err
	}

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func (wf *workflow) Verify(ctx context.Context, doc Document) (bool, error) {
	if err := requirePDF(doc); err != nil {
		return false, err
	}

	tempDir, err := os.MkdirTemp("", "procure-verify-*")
	if err != nil {
		return false, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	s, err := seedState(doc, tempDir)
	if err != nil {
		return false, err
	}

	s, err = RenderNode(wf.rt).Execute(ctx, s)
	if err != nil {
		return false, err
	}

	s, err = VerifyNode(wf.rt).Execute(ctx, s)
	if err != nil {
		return false, err
	}

	return isVerified(s), nil
}

func seedState(doc Document, tempDir string) (state.State, error) {
	pdfPath := sourcePath(tempDir)
	if err := os.WriteFile(pdfPath, doc.Data, 0600); err != nil {
		return state.State{}, fmt.Errorf("write temp pdf: %w", err)
	}

	s := state.New(nil)
	s = s.Set(KeyTempDir, tempDir)
	s = s.Set(KeyFilename, doc.Filename)
	s = s.Set(KeyEUCompany, doc.EUCompany)
	return s, nil
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("procure-extract")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("render", RenderNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("verify", VerifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// render → verify (unconditional)
	if err := graph.AddEdge("render", "verify", nil); err != nil {
		return nil, err
	}

	// verify → extract (procurement document confirmed)
	if err := graph.AddEdge("verify", "extract", isVerified); err != nil {
		return nil, err
	}

	// verify → finalize (rejected; finalize emits an empty result)
	if err := graph.AddEdge("verify", "finalize", state.Not(isVerified)); err != nil {
		return nil, err
	}

	// extract → finalize (unconditional)
	if err := graph.AddEdge("extract", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("render"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	verified := isVerified(s)

	pages, _ := extractPages(s)

	records := []validation.Record{}
	if val, ok := s.Get(KeyRecords); ok {
		recs, ok := val.([]validation.Record)
		if !ok {
			return nil, fmt.Errorf("%s is not []validation.Record", KeyRecords)
		}
		records = recs
	}

	return &Result{
		Records:   records,
		PageCount: len(pages),
		Verified:  verified,
	}, nil
}

func isVerified(s state.State) bool {
	val, ok := s.Get(KeyVerified)
	if !ok {
		return false
	}

	verified, ok := val.(bool)
	return ok && verified
}
