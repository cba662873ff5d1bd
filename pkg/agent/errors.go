package agent

import (
	"errors"
	"fmt"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	"github.com/nawi-n/SmartCart/pkg/errmodel"
)

// GenerationError is returned by strict operations when no usable reply was
// produced: the provider failed, timed out, or answered with something that
// did not decode.
type GenerationError struct {
	Operation    string
	InvocationID string
	Err          error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("agent: %s: generation unavailable: %v", e.Operation, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Compact maps the failure to a user-safe envelope. Provider details stay in
// the logs; the caller only learns that generation is temporarily unavailable.
func (e *GenerationError) Compact() *errmodel.Error {
	code := errmodel.CodeGenerationUnavailable
	if errors.Is(e.Err, llm.ErrTimeout) {
		code = errmodel.CodeTimeout
	}
	return errmodel.Model(code, "the assistant is temporarily unavailable, please try again", map[string]any{
		"operation":     e.Operation,
		"invocation_id": e.InvocationID,
	}, nil)
}

// IsGenerationError reports whether err is or wraps a *GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
