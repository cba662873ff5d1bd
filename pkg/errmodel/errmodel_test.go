package errmodel

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewAndFrom(t *testing.T) {
	e := Validation("missing", "field missing", map[string]any{"field": "customer_id"})
	if e.Category != CategoryValidation || e.Code != "missing" {
		t.Fatalf("unexpected: %#v", e)
	}
	if got := From(e); got != e {
		t.Fatalf("From should return same error instance")
	}
	wrapped := fmt.Errorf("handler: %w", e)
	if got := From(wrapped); got != e {
		t.Fatalf("From should unwrap to the compact error")
	}
}

type unavailable struct{ op string }

func (u unavailable) Error() string { return "no reply for " + u.op }
func (u unavailable) Compact() *Error {
	return Model(CodeGenerationUnavailable, "temporarily unavailable", map[string]any{"operation": u.op}, nil)
}

func TestFromUsesCompacter(t *testing.T) {
	ce := From(fmt.Errorf("wrap: %w", unavailable{op: "chat_reply"}))
	if ce.Category != CategoryModel || ce.Code != CodeGenerationUnavailable {
		t.Fatalf("unexpected: %#v", ce)
	}
	if HTTPStatus(ce) != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want 503", HTTPStatus(ce))
	}
}

func TestFromUnknownIsInternal(t *testing.T) {
	ce := From(errors.New("disk on fire"))
	if ce.Category != CategorySystem || ce.Code != CodeInternal {
		t.Fatalf("unexpected: %#v", ce)
	}
	if From(nil) != nil {
		t.Fatalf("From(nil) should be nil")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("unknown operation", nil), http.StatusNotFound},
		{Validation(CodeBadJSON, "oops", nil), http.StatusBadRequest},
		{Validation(CodeMethodNotAllowed, "GET only", nil), http.StatusMethodNotAllowed},
		{Model(CodeTimeout, "slow", nil, nil), http.StatusGatewayTimeout},
		{Model("provider", "boom", nil, nil), http.StatusBadGateway},
		{System(CodeInternal, "x", nil, nil), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Fatalf("%v: status=%d want %d", c.err, got, c.want)
		}
	}
}

func TestContextTruncation(t *testing.T) {
	long := strings.Repeat("a", 1000)
	e := Validation("x", long, map[string]any{"prompt": long, "n": 3})
	if len(e.Message) != 512 || !strings.HasSuffix(e.Message, "...") {
		t.Fatalf("message not truncated: %d", len(e.Message))
	}
	if s := e.Context["prompt"].(string); len(s) != 256 {
		t.Fatalf("context not truncated: %d", len(s))
	}
	if e.Context["n"] != 3 {
		t.Fatalf("numeric context should pass through: %#v", e.Context["n"])
	}
}

func TestCausesAreCompacted(t *testing.T) {
	e := System(CodeInternal, "render failed", nil, errors.New("template: bad"))
	if len(e.Causes) != 1 || e.Causes[0].Code != CodeInternal {
		t.Fatalf("unexpected causes: %#v", e.Causes)
	}
	if !IsCategory(e, CategorySystem) || IsCategory(e, CategoryModel) {
		t.Fatalf("IsCategory mismatch")
	}
}

func TestWriteHTTP_StatusAndEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/operations/chat_reply", nil)
	WriteHTTP(rr, req, Validation(CodeBadJSON, "oops", nil))
	if rr.Code != 400 {
		t.Fatalf("status=%d want 400", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "\"category\":\"validation\"") {
		t.Fatalf("body missing category: %s", body)
	}
	if !strings.Contains(body, "\"code\":\"bad_json\"") {
		t.Fatalf("body missing code: %s", body)
	}
}
