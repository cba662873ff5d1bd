package agent

import (
	"encoding/json"
)

// Fallback produces the value an operation returns when it degrades. It must
// build a fresh value on every call so no two callers share mutable state.
type Fallback[T any] func(Context) T

// Static adapts a constructor that ignores the context.
func Static[T any](build func() T) Fallback[T] {
	return func(Context) T { return build() }
}

// Scalar is the set of result types safe to return by value.
type Scalar interface {
	~string | ~float64 | ~int | ~bool
}

// Constant returns v on every call.
func Constant[T Scalar](v T) Fallback[T] {
	return func(Context) T { return v }
}

// FromContext falls back to the upstream value stored under key, which may be
// a T or any JSON-compatible equivalent (e.g. a decoded request body). The
// value is copied through JSON so the caller's instance is never aliased.
// When the key is absent or does not convert, def is used.
func FromContext[T any](key string, def Fallback[T]) Fallback[T] {
	return func(c Context) T {
		if out, ok := ContextValue[T](c, key); ok {
			return out
		}
		return def(c)
	}
}

// convert copies v into a fresh T through its JSON form.
func convert[T any](v any) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	return JSON[T]()(string(b))
}

// ContextValue reads key from c as a fresh T copied through JSON. It reports
// false when the key is absent, null or does not convert.
func ContextValue[T any](c Context, key string) (T, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		var zero T
		return zero, false
	}
	out, err := convert[T](v)
	return out, err == nil
}
