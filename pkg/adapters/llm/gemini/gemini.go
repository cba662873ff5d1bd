package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	genai "google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash-lite"

type clientWrapper struct {
	client *genai.Client
	model  string
}

func (c *clientWrapper) Name() string { return "gemini" }

// Generate folds system messages into the system instruction and sends the
// rest as one user turn. opts: "model" (string), "json" (bool).
func (c *clientWrapper) Generate(ctx context.Context, messages []llm.Message, opts map[string]any) (llm.GenerateResult, error) {
	model := c.model
	if v, ok := opts["model"].(string); ok && v != "" {
		model = v
	}
	var system, text strings.Builder
	for _, m := range messages {
		if m.Content == "" {
			continue
		}
		if m.Role == llm.RoleSystem {
			system.WriteString(m.Content)
			system.WriteString("\n")
			continue
		}
		text.WriteString(m.Content)
		text.WriteString("\n")
	}

	cfg := &genai.GenerateContentConfig{}
	if system.Len() > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(system.String(), genai.RoleUser)
	}
	if v, ok := opts["json"].(bool); ok && v {
		cfg.ResponseMIMEType = "application/json"
	}
	contents := []*genai.Content{genai.NewContentFromText(text.String(), genai.RoleUser)}
	res, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return llm.GenerateResult{}, llm.NewProviderError(c.Name(), err)
	}
	out := llm.GenerateResult{Text: res.Text(), Model: model}
	if u := res.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.OutputTokens = int(u.CandidatesTokenCount)
		out.TotalTokens = int(u.TotalTokenCount)
	}
	return out, nil
}

// Transcribe sends the audio inline and asks for a verbatim transcript.
func (c *clientWrapper) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("gemini: empty audio")
	}
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	parts := []*genai.Part{
		genai.NewPartFromText("Transcribe this audio verbatim. Reply with the transcript only."),
		genai.NewPartFromBytes(audio, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", llm.NewProviderError(c.Name(), err)
	}
	return strings.TrimSpace(res.Text()), nil
}

func newClient(ctx context.Context, cfg map[string]any) (*clientWrapper, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if v, ok := cfg["api_key"].(string); ok && v != "" {
		apiKey = v
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key; set GOOGLE_API_KEY or cfg.api_key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	model := defaultModel
	if v, ok := cfg["model"].(string); ok && v != "" {
		model = v
	}
	return &clientWrapper{client: client, model: model}, nil
}

// Factory creates a Gemini LLM client using GOOGLE_API_KEY by default.
func Factory(ctx context.Context, cfg map[string]any) (llm.LLM, error) { // nolint: revive
	return newClient(ctx, cfg)
}

// NewTranscriber creates a Gemini speech-to-text client with the same config keys as Factory.
func NewTranscriber(ctx context.Context, cfg map[string]any) (llm.Transcriber, error) {
	return newClient(ctx, cfg)
}

func init() {
	_ = llm.Register("gemini", Factory)
}
