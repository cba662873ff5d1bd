package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/agents"
	"github.com/nawi-n/SmartCart/pkg/errmodel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	maxJSONBody  = 1 << 20
	maxAudioBody = 10 << 20
)

// buildRouter mounts the HTTP API. Every error leaves as an errmodel envelope.
func buildRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(a.logger))
	r.Use(chiMiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errmodel.WriteHTTP(w, r, errmodel.NotFound("no such route", map[string]any{"path": r.URL.Path}))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errmodel.WriteHTTP(w, r, errmodel.Validation(errmodel.CodeMethodNotAllowed, "method not allowed", map[string]any{"method": r.Method}))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := &handlers{app: a}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/operations", h.listOperations)
		r.Post("/operations/{name}", h.executeOperation)
		r.Post("/recommendations", h.recommend)
		r.Post("/personas/behavior", h.updatePersonaFromBehavior)
		r.Post("/behavior/insights", h.behaviorInsights)
		r.Post("/voice", h.voice)
	})

	return otelhttp.NewHandler(r, "smartcart.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chiMiddleware.GetReqID(r.Context()),
			)
		})
	}
}

type handlers struct {
	app *app
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a single JSON value from the request into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errmodel.Validation(errmodel.CodeBadJSON, "request body is empty", nil)
		}
		return errmodel.Validation(errmodel.CodeBadJSON, "request body is not valid JSON", map[string]any{"detail": err.Error()})
	}
	return nil
}

func (h *handlers) listOperations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"operations": h.app.registry.Describe()})
}

func (h *handlers) executeOperation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := h.app.registry.Lookup(name); !ok {
		errmodel.WriteHTTP(w, r, errmodel.NotFound("unknown operation", map[string]any{"operation": name}))
		return
	}
	c := agent.Context{}
	if err := decodeBody(w, r, &c); err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	v, err := h.app.registry.Execute(r.Context(), name, c)
	if err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type recommendRequest struct {
	Persona  agents.Persona   `json:"persona"`
	Mood     string           `json:"mood"`
	Products []agents.Product `json:"products"`
}

func (h *handlers) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeBody(w, r, &req); err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	res, err := h.app.recommendations.Recommend(r.Context(), req.Persona, req.Mood, req.Products)
	if err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type behaviorUpdateRequest struct {
	Persona  agents.Persona    `json:"persona"`
	Recent   []agents.Behavior `json:"recent_behaviors"`
	Behavior agents.Behavior   `json:"new_behavior"`
}

func (h *handlers) updatePersonaFromBehavior(w http.ResponseWriter, r *http.Request) {
	var req behaviorUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	p, err := h.app.customers.UpdatePersonaFromBehavior(r.Context(), req.Persona, req.Recent, req.Behavior)
	if err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) behaviorInsights(w http.ResponseWriter, r *http.Request) {
	var behaviors []agents.Behavior
	if err := decodeBody(w, r, &behaviors); err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	insights, err := h.app.customers.AnalyzeBehaviorPatterns(r.Context(), behaviors)
	if err != nil {
		errmodel.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

// voice takes the raw recording as the body; Content-Type is its MIME type.
func (h *handlers) voice(w http.ResponseWriter, r *http.Request) {
	if h.app.voice == nil {
		errmodel.WriteHTTP(w, r, errmodel.Model(errmodel.CodeGenerationUnavailable, "voice is not configured", nil, nil))
		return
	}
	audio, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAudioBody))
	if err != nil {
		errmodel.WriteHTTP(w, r, errmodel.Validation("body_too_large", "recording is too large", map[string]any{"limit_bytes": maxAudioBody}))
		return
	}
	if len(audio) == 0 {
		errmodel.WriteHTTP(w, r, errmodel.Validation("empty_audio", "request body is empty", nil))
		return
	}
	res, err := h.app.voice.Respond(r.Context(), r.URL.Query().Get("customer_id"), audio, r.Header.Get("Content-Type"))
	if err != nil {
		ce := errmodel.From(err)
		if res.Transcript != "" {
			// Transcription succeeded; only the reply failed.
			withTranscript := *ce
			withTranscript.Context = maps.Clone(ce.Context)
			if withTranscript.Context == nil {
				withTranscript.Context = map[string]any{}
			}
			withTranscript.Context["transcript"] = res.Transcript
			ce = &withTranscript
		}
		errmodel.WriteHTTP(w, r, ce)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
