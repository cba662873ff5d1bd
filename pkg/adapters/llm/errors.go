package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrTimeout matches any ProviderError caused by a deadline or network timeout.
var ErrTimeout = errors.New("llm: timeout")

// ProviderError wraps a failure reported by (or while reaching) a provider.
type ProviderError struct {
	Provider string
	Err      error
	timeout  bool
}

// NewProviderError classifies err and wraps it. A nil err yields nil.
func NewProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	return &ProviderError{Provider: provider, Err: err, timeout: isTimeout(err)}
}

func (e *ProviderError) Error() string {
	if e.timeout {
		return fmt.Sprintf("llm: %s: timeout: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("llm: %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline or network timeout.
func (e *ProviderError) Timeout() bool { return e.timeout }

// Is lets errors.Is(err, ErrTimeout) hold for timeouts.
func (e *ProviderError) Is(target error) bool {
	return target == ErrTimeout && e.timeout
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
