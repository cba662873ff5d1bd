package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Message represents a chat message with a role and content.
type Message struct {
	Role    string
	Content string
}

// Roles understood by every provider adapter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GenerateResult contains the model's text output and token usage if available.
type GenerateResult struct {
	Text         string
	PromptTokens int
	OutputTokens int
	TotalTokens  int
	Model        string
}

// LLM defines a minimal chat/text generation interface.
//
// Implementations must not retry on their own. A failed call returns a
// *ProviderError so callers can tell timeouts from other failures.
type LLM interface {
	// Name returns provider name (e.g., "gemini").
	Name() string
	// Generate creates a completion from a list of messages.
	Generate(ctx context.Context, messages []Message, opts map[string]any) (GenerateResult, error)
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Factory constructs an LLM from provider-specific config.
type Factory func(ctx context.Context, cfg map[string]any) (LLM, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers an LLM factory under a provider name.
func Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("llm: empty provider name")
	}
	if f == nil {
		return fmt.Errorf("llm: nil factory for %q", name)
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := factories[name]; exists {
		return fmt.Errorf("llm: provider %q already registered", name)
	}
	factories[name] = f
	return nil
}

// Resolve gets a registered factory by name.
func Resolve(name string) (Factory, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Range iterates all registered factories.
func Range(fn func(name string, f Factory)) {
	regMu.RLock()
	defer regMu.RUnlock()
	for n, f := range factories {
		fn(n, f)
	}
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	var names []string
	Range(func(name string, _ Factory) { names = append(names, name) })
	sort.Strings(names)
	return names
}

// New resolves the named provider and builds a client from cfg.
func New(ctx context.Context, name string, cfg map[string]any) (LLM, error) {
	f, ok := Resolve(name)
	if !ok {
		return nil, fmt.Errorf("llm: unknown provider %q (registered: %v)", name, Providers())
	}
	return f(ctx, cfg)
}
