// Package ollama adapts a local Ollama server through langchaingo.
package ollama

import (
	"context"
	"fmt"
	"os"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	"github.com/tmc/langchaingo/llms"
	lc "github.com/tmc/langchaingo/llms/ollama"
)

const (
	defaultModel  = "llama3.2"
	defaultServer = "http://localhost:11434"
)

type clientWrapper struct {
	client *lc.LLM
	model  string
}

func (c *clientWrapper) Name() string { return "ollama" }

func (c *clientWrapper) Generate(ctx context.Context, messages []llm.Message, opts map[string]any) (llm.GenerateResult, error) {
	mc := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case llm.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		mc = append(mc, llms.TextParts(role, m.Content))
	}
	var callOpts []llms.CallOption
	model := c.model
	if v, ok := opts["model"].(string); ok && v != "" {
		model = v
		callOpts = append(callOpts, llms.WithModel(v))
	}
	if v, ok := opts["json"].(bool); ok && v {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := c.client.GenerateContent(ctx, mc, callOpts...)
	if err != nil {
		return llm.GenerateResult{}, llm.NewProviderError(c.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return llm.GenerateResult{Model: model}, nil
	}
	choice := resp.Choices[0]
	out := llm.GenerateResult{Text: choice.Content, Model: model}
	out.PromptTokens, _ = choice.GenerationInfo["PromptTokens"].(int)
	out.OutputTokens, _ = choice.GenerationInfo["CompletionTokens"].(int)
	out.TotalTokens, _ = choice.GenerationInfo["TotalTokens"].(int)
	return out, nil
}

// Factory builds the Ollama provider. cfg keys: server_url, model. OLLAMA_HOST is honoured.
func Factory(ctx context.Context, cfg map[string]any) (llm.LLM, error) { // nolint: revive
	_ = ctx
	server := os.Getenv("OLLAMA_HOST")
	if v, ok := cfg["server_url"].(string); ok && v != "" {
		server = v
	}
	if server == "" {
		server = defaultServer
	}
	model := defaultModel
	if v, ok := cfg["model"].(string); ok && v != "" {
		model = v
	}
	client, err := lc.New(lc.WithModel(model), lc.WithServerURL(server))
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	return &clientWrapper{client: client, model: model}, nil
}

func init() {
	_ = llm.Register("ollama", Factory)
}
