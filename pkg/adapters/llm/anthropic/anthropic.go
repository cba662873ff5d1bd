package anthropic

import (
	"context"
	"fmt"
	"os"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
)

const (
	defaultModel     = "claude-haiku-4-5"
	defaultMaxTokens = 2048
)

type clientWrapper struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func (c *clientWrapper) Name() string { return "anthropic" }

func (c *clientWrapper) Generate(ctx context.Context, messages []llm.Message, opts map[string]any) (llm.GenerateResult, error) {
	model := c.model
	if v, ok := opts["model"].(string); ok && v != "" {
		model = v
	}
	var system []sdk.TextBlockParam
	mm := make([]sdk.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, sdk.TextBlockParam{Text: m.Content})
		case llm.RoleAssistant:
			mm = append(mm, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		default:
			mm = append(mm, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		}
	}

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  mm,
	})
	if err != nil {
		return llm.GenerateResult{}, llm.NewProviderError(c.Name(), err)
	}
	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	in, outTok := int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)
	return llm.GenerateResult{
		Text:         out.String(),
		PromptTokens: in,
		OutputTokens: outTok,
		TotalTokens:  in + outTok,
		Model:        model,
	}, nil
}

// Factory builds the Anthropic provider. cfg keys: api_key, model, max_tokens, base_url.
func Factory(ctx context.Context, cfg map[string]any) (llm.LLM, error) { // nolint: revive
	_ = ctx
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if v, ok := cfg["api_key"].(string); ok && v != "" {
		apiKey = v
	}
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: missing API key; set ANTHROPIC_API_KEY or cfg.api_key")
	}
	model := defaultModel
	if v, ok := cfg["model"].(string); ok && v != "" {
		model = v
	}
	maxTokens := int64(defaultMaxTokens)
	if v, ok := cfg["max_tokens"].(int); ok && v > 0 {
		maxTokens = int64(v)
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if v, ok := cfg["base_url"].(string); ok && v != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(v))
	}
	return &clientWrapper{client: sdk.NewClient(reqOpts...), model: model, maxTokens: maxTokens}, nil
}

func init() {
	_ = llm.Register("anthropic", Factory)
}
