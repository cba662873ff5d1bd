package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	"github.com/nawi-n/SmartCart/pkg/adapters/llm/gemini"
	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/agents"
	"github.com/nawi-n/SmartCart/pkg/config"
	"github.com/nawi-n/SmartCart/pkg/prompt"
	"github.com/nawi-n/SmartCart/pkg/prompt/assembler"
)

// app is everything a command needs once configuration is resolved.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	prompts  *prompt.Store
	changes  []prompt.Change
	registry *agent.Registry

	customers       *agents.CustomerAgent
	recommendations *agents.RecommendationAgent
	// voice is nil when no transcriber could be built.
	voice *agents.VoiceAgent
}

// newApp builds the configured provider clients and wires them into an app.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	model, err := llm.New(ctx, cfg.LLM.Provider, cfg.LLM.ProviderConfig())
	if err != nil {
		return nil, err
	}
	stt, err := gemini.NewTranscriber(ctx, cfg.LLM.SpeechConfig())
	if err != nil {
		logger.WarnContext(ctx, "voice disabled", "error", err)
		stt = nil
	}
	return buildApp(cfg, logger, model, stt)
}

func buildApp(cfg *config.Config, logger *slog.Logger, model llm.LLM, stt llm.Transcriber) (*app, error) {
	store, changes, err := agents.NewPromptStore(cfg.PromptOverrides)
	if err != nil {
		return nil, err
	}
	completer := llm.NewCompleter(model, llm.WithTimeout(cfg.LLM.Timeout))
	a := agent.New(completer, store, agent.WithLogger(logger))

	reg := agent.NewRegistry(a)
	if err := agents.Register(reg); err != nil {
		return nil, fmt.Errorf("register operations: %w", err)
	}

	history := assembler.New(
		assembler.WithMaxEntries(agents.MaxRecentBehaviors),
		assembler.WithMaxTokens(cfg.PromptTokenBudget),
		assembler.WithTokenEstimator(assembler.EstimatorFor(cfg.TokenizerModel)),
	)
	out := &app{
		cfg:             cfg,
		logger:          logger,
		prompts:         store,
		changes:         changes,
		registry:        reg,
		customers:       agents.NewCustomerAgent(a, agents.WithHistoryAssembler(history)),
		recommendations: agents.NewRecommendationAgent(a, agents.WithConcurrency(cfg.RecommendConcurrency)),
	}
	if stt != nil {
		out.voice = agents.NewVoiceAgent(stt, agents.NewAssistantAgent(a))
	}
	for _, c := range changes {
		logger.Info("prompt overridden", "template", c.Name, "from_version", c.From, "to_version", c.To)
	}
	return out, nil
}
