package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Decoder turns raw model text into a typed result.
type Decoder[T any] func(raw string) (T, error)

// ErrDecode marks every decoder failure.
var ErrDecode = errors.New("agent: decode failed")

// DecodeError describes why raw text did not decode.
type DecodeError struct {
	Want string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("agent: decode %s: %v", e.Want, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// JSON decodes a JSON document into T. Only surrounding whitespace is
// trimmed; fenced or otherwise decorated replies fail. Keys missing from the
// reply decode to zero values, and nil slices and maps are replaced with
// empty ones so the result still encodes to its schema. A field whose JSON
// type does not match T is left at its zero value and the rest still decodes.
// A top-level null, or a document of the wrong kind altogether, is a failure.
func JSON[T any]() Decoder[T] {
	want := fmt.Sprintf("%T", *new(T))
	return func(raw string) (T, error) {
		var out T
		s := strings.TrimSpace(raw)
		if s == "" || s == "null" {
			return out, &DecodeError{Want: want, Err: errors.New("empty document")}
		}
		if err := json.Unmarshal([]byte(s), &out); err != nil && !fieldMismatch(err) {
			var zero T
			return zero, &DecodeError{Want: want, Err: err}
		}
		fillCollections(reflect.ValueOf(&out).Elem())
		return out, nil
	}
}

// fieldMismatch reports a type error below the top level. encoding/json skips
// such fields and finishes decoding the rest of the document.
func fieldMismatch(err error) bool {
	var ute *json.UnmarshalTypeError
	return errors.As(err, &ute) && ute.Field != ""
}

// Score decodes a bare number and clamps it to [0, 1]. NaN is rejected;
// infinities and out-of-range literals clamp to the nearest bound.
func Score() Decoder[float64] {
	return func(raw string) (float64, error) {
		s := strings.TrimSpace(raw)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			var ne *strconv.NumError
			if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
				return 0, &DecodeError{Want: "score", Err: err}
			}
		}
		if math.IsNaN(f) {
			return 0, &DecodeError{Want: "score", Err: errors.New("NaN")}
		}
		return Clamp01(f), nil
	}
}

// Clamp01 bounds f to [0, 1].
func Clamp01(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}

// Text accepts any non-blank reply, trimmed.
func Text() Decoder[string] {
	return func(raw string) (string, error) {
		s := strings.TrimSpace(raw)
		if s == "" {
			return "", &DecodeError{Want: "text", Err: errors.New("blank reply")}
		}
		return s, nil
	}
}

// TryDecode runs d and reports success separately from the value.
func TryDecode[T any](d Decoder[T], raw string) (T, error) {
	if d == nil {
		var zero T
		return zero, &DecodeError{Want: "value", Err: errors.New("no decoder")}
	}
	return d(raw)
}

// WithDefault returns v when err is nil, otherwise a fresh fallback for c.
func WithDefault[T any](v T, err error, fb Fallback[T], c Context) T {
	if err == nil {
		return v
	}
	return fb(c)
}

// fillCollections replaces nil slices and maps reachable from v with empty ones.
func fillCollections(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			fillCollections(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				fillCollections(f)
			}
		}
	case reflect.Slice:
		if v.IsNil() {
			if v.CanSet() {
				v.Set(reflect.MakeSlice(v.Type(), 0, 0))
			}
			return
		}
		for i := 0; i < v.Len(); i++ {
			fillCollections(v.Index(i))
		}
	case reflect.Map:
		if v.IsNil() {
			if v.CanSet() {
				v.Set(reflect.MakeMap(v.Type()))
			}
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			elem := reflect.New(v.Type().Elem()).Elem()
			elem.Set(iter.Value())
			fillCollections(elem)
			v.SetMapIndex(iter.Key(), elem)
		}
	}
}
