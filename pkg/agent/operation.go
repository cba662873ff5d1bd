package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation is one prompt template plus the decoder and fallback for its reply.
// Operations are plain values and are never modified after registration.
type Operation[T any] struct {
	Name        string
	Description string
	// Template names the prompt in the store. Defaults to Name.
	Template string
	Decode   Decoder[T]
	// Fallback is required for lenient operations and ignored for strict ones.
	Fallback Fallback[T]
	// Strict operations surface failures as *GenerationError instead of degrading.
	Strict bool
	// Record names the field a bare record is filed under when the operation
	// is dispatched by name with none of its fields set.
	Record string
}

// Outcomes recorded on spans and logs.
const (
	OutcomeDecoded       = "decoded"
	OutcomeDecodeError   = "decode_error"
	OutcomeProviderError = "provider_error"
	OutcomeRenderError   = "render_error"
)

func (op Operation[T]) template() string {
	if op.Template != "" {
		return op.Template
	}
	return op.Name
}

func (op Operation[T]) validate() error {
	switch {
	case op.Name == "":
		return errors.New("agent: operation name is empty")
	case op.Decode == nil:
		return fmt.Errorf("agent: %s: no decoder", op.Name)
	case !op.Strict && op.Fallback == nil:
		return fmt.Errorf("agent: %s: lenient operation needs a fallback", op.Name)
	}
	return nil
}

// Execute renders op's template with c, asks the model once and decodes the
// reply. Lenient operations never return an error once validated; strict
// operations return a *GenerationError when no decodable reply was produced.
func Execute[T any](ctx context.Context, a *Agent, op Operation[T], c Context) (T, error) {
	var zero T
	if err := op.validate(); err != nil {
		return zero, err
	}
	id := uuid.NewString()
	ctx, span := a.tracer.Start(ctx, "agent.Execute", trace.WithAttributes(
		attribute.String("agent.operation", op.Name),
		attribute.String("agent.invocation_id", id),
		attribute.Bool("agent.strict", op.Strict),
	))
	defer span.End()
	log := a.logger.With("operation", op.Name, "invocation_id", id)

	degrade := func(outcome string, cause error) (T, error) {
		span.SetAttributes(attribute.String("agent.outcome", outcome))
		span.RecordError(cause)
		if op.Strict {
			span.SetStatus(codes.Error, "generation unavailable")
			log.ErrorContext(ctx, "strict operation failed", "outcome", outcome, "error", cause)
			return zero, &GenerationError{Operation: op.Name, InvocationID: id, Err: cause}
		}
		log.WarnContext(ctx, "operation fell back to default", "outcome", outcome, "error", cause)
		return WithDefault(zero, cause, op.Fallback, c), nil
	}

	rendered, err := a.prompts.Render(op.template(), c)
	if err != nil {
		return degrade(OutcomeRenderError, err)
	}
	if len(rendered.Missing) > 0 {
		log.WarnContext(ctx, "prompt rendered with missing fields", "missing_fields", rendered.Missing)
	}
	span.SetAttributes(attribute.Int("agent.prompt_version", rendered.Version))

	raw, err := a.llm.Complete(ctx, rendered.Text)
	if err != nil {
		return degrade(OutcomeProviderError, err)
	}
	v, err := TryDecode(op.Decode, raw)
	if err != nil {
		return degrade(OutcomeDecodeError, err)
	}
	span.SetAttributes(attribute.String("agent.outcome", OutcomeDecoded))
	log.DebugContext(ctx, "operation decoded")
	return v, nil
}

// Invoke runs the operation and boxes the result for name-based dispatch.
func (op Operation[T]) Invoke(ctx context.Context, a *Agent, c Context) (any, error) {
	v, err := Execute(ctx, a, op, c)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Describe returns the static part of the operation's descriptor.
func (op Operation[T]) Describe() Descriptor {
	return Descriptor{
		Name:        op.Name,
		Description: op.Description,
		Template:    op.template(),
		Strict:      op.Strict,
		Record:      op.Record,
	}
}

// prepare validates the operation against the store and, for lenient
// operations, checks that the fallback conforms to the result schema.
func (op Operation[T]) prepare(a *Agent) (*SchemaValidator, error) {
	if err := op.validate(); err != nil {
		return nil, err
	}
	if _, ok := a.prompts.Get(op.template(), 0); !ok {
		return nil, fmt.Errorf("agent: %s: template %q not found", op.Name, op.template())
	}
	schema, err := SchemaFor[T]()
	if err != nil {
		return nil, fmt.Errorf("agent: %s: %w", op.Name, err)
	}
	if op.Strict {
		return schema, nil
	}
	if err := schema.Validate(op.Fallback(Context{})); err != nil {
		return nil, fmt.Errorf("agent: %s: fallback does not conform to result schema: %w", op.Name, err)
	}
	return schema, nil
}
