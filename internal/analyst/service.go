package analyst

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const answerConfidence = 0.85

type service struct {
	agent  gaconfig.AgentConfig
	logger *slog.Logger
}

// New creates an analyst system bound to the given agent configuration.
func New(agentCfg gaconfig.AgentConfig, logger *slog.Logger) System {
	return &service{
		agent:  agentCfg,
		logger: logger.With("system", "analyst"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Query(ctx context.Context, req Request) (*Response, error) {
	if req.Query == "" {
		return nil, ErrEmptyQuery
	}

	a, err := agent.New(&s.agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrAgentUnavailable, err)
	}

	prompt := buildPrompt(req)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrAgentUnavailable, err)
	}

	s.logger.InfoContext(
		ctx, "analyst query answered",
		"context_records", len(req.ContextRecords),
	)

	return &Response{
		Answer:      resp.Content(),
		Suggestions: Suggestions(req.Query),
		Confidence:  answerConfidence,
	}, nil
}

func (s *service) Health(ctx context.Context) (*Health, error) {
	if _, err := agent.New(&s.agent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAgentUnavailable, err)
	}

	return &Health{
		Status:   "ok",
		Provider: s.agent.Provider.Name,
		Model:    s.agent.Model.Name,
	}, nil
}
