package agent

import (
	"context"
	"log/slog"

	"github.com/nawi-n/SmartCart/pkg/prompt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Context is the named-field input to an operation's template. Callers build
// it; operations never mutate it.
type Context map[string]any

// Completer sends one prompt to a language model and returns its raw reply.
// *llm.Completer satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Agent holds what every operation execution shares: the model, the prompt
// templates and the telemetry handles. It is safe for concurrent use.
type Agent struct {
	llm     Completer
	prompts *prompt.Store
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTracer sets the tracer. Defaults to the global provider's "agent" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(a *Agent) {
		if t != nil {
			a.tracer = t
		}
	}
}

// New constructs an Agent.
func New(c Completer, prompts *prompt.Store, opts ...Option) *Agent {
	a := &Agent{
		llm:     c,
		prompts: prompts,
		logger:  slog.Default(),
		tracer:  otel.Tracer("agent"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Prompts exposes the template store the agent renders from.
func (a *Agent) Prompts() *prompt.Store { return a.prompts }

// Logger returns the agent's logger.
func (a *Agent) Logger() *slog.Logger { return a.logger }
