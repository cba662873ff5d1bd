package llm

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyCompletion is returned when a provider answers with no text at all.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Completer reduces a chat LLM to single prompt in, raw text out.
//
// It performs exactly one provider call per Complete and never retries.
type Completer struct {
	model   LLM
	system  string
	timeout time.Duration
	opts    map[string]any
}

// CompleterOption configures a Completer.
type CompleterOption func(*Completer)

// WithSystemPrompt prepends a system message to every call.
func WithSystemPrompt(s string) CompleterOption { return func(c *Completer) { c.system = s } }

// WithTimeout bounds each call. Zero leaves the caller's context untouched.
func WithTimeout(d time.Duration) CompleterOption { return func(c *Completer) { c.timeout = d } }

// WithOptions passes provider options (e.g. "model", "json") to Generate.
func WithOptions(opts map[string]any) CompleterOption {
	return func(c *Completer) { c.opts = opts }
}

// NewCompleter wraps m.
func NewCompleter(m LLM, opts ...CompleterOption) *Completer {
	c := &Completer{model: m}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Name returns the underlying provider name.
func (c *Completer) Name() string { return c.model.Name() }

// Complete sends prompt as a single user turn and returns the raw reply text.
// Every failure is a *ProviderError.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	msgs := make([]Message, 0, 2)
	if c.system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: c.system})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: prompt})

	res, err := c.model.Generate(ctx, msgs, c.opts)
	if err != nil {
		// A provider may swallow the deadline into its own error type.
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = errors.Join(err, ctxErr)
		}
		return "", NewProviderError(c.model.Name(), err)
	}
	if res.Text == "" {
		return "", NewProviderError(c.model.Name(), ErrEmptyCompletion)
	}
	return res.Text, nil
}
