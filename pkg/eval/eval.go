// Package eval replays recorded model replies through registered operations
// and checks the rendered prompts and decode outcomes. It runs offline, so
// prompt and decoder changes can be checked without calling a provider.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	"github.com/nawi-n/SmartCart/pkg/adapters/llm/fake"
	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/prompt"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// Fixture is one evaluation case: an operation, its context and the reply
// the model is pretended to have given.
type Fixture struct {
	Name      string         `json:"name"`
	Operation string         `json:"operation"`
	Context   map[string]any `json:"context"`
	Reply     string         `json:"reply"`
	Expect    Expectation    `json:"expect"`
}

type Expectation struct {
	PromptContains    []string `json:"prompt_contains,omitempty"`
	PromptNotContains []string `json:"prompt_not_contains,omitempty"`
	// Outcome is one of the agent.Outcome* values.
	Outcome        string   `json:"outcome,omitempty"`
	ResultContains []string `json:"result_contains,omitempty"`
}

// Report summarizes a run. Score is Passed/Total, or 1 with no fixtures.
type Report struct {
	Total   int
	Passed  int
	Score   float64
	Details []string
}

// LoadFixtures reads every *.json file in dir, sorted by file name.
func LoadFixtures(fsys fs.FS, dir string) ([]Fixture, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var out []Fixture
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var fx Fixture
		if err := json.Unmarshal(b, &fx); err != nil {
			return nil, fmt.Errorf("eval: %s: %w", e.Name(), err)
		}
		if fx.Name == "" {
			fx.Name = strings.TrimSuffix(e.Name(), ".json")
		}
		out = append(out, fx)
	}
	return out, nil
}

// Run executes fixtures in order against the templates in store. register
// adds the operations under test to a fresh registry.
func Run(ctx context.Context, store *prompt.Store, register func(*agent.Registry) error, fixtures []Fixture) (Report, error) {
	var (
		mu    sync.Mutex
		reply string
	)
	model := &fake.LLM{Respond: func([]llm.Message) fake.Reply {
		mu.Lock()
		defer mu.Unlock()
		return fake.Reply{Text: reply}
	}}
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	a := agent.New(llm.NewCompleter(model), store,
		agent.WithTracer(tp.Tracer("eval")),
		agent.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	reg := agent.NewRegistry(a)
	if err := register(reg); err != nil {
		return Report{}, err
	}

	rep := Report{Total: len(fixtures)}
	for _, fx := range fixtures {
		mu.Lock()
		reply = fx.Reply
		mu.Unlock()
		seen := len(spans.Ended())

		result, err := reg.Execute(ctx, fx.Operation, fx.Context)
		if err != nil && !agent.IsGenerationError(err) {
			rep.Details = append(rep.Details, fx.Name+": "+err.Error())
			continue
		}
		problems := check(fx.Expect, model.LastPrompt(), outcome(spans.Ended()[seen:]), result)
		for _, p := range problems {
			rep.Details = append(rep.Details, fx.Name+": "+p)
		}
		if len(problems) == 0 {
			rep.Passed++
		}
	}
	rep.Score = 1
	if rep.Total > 0 {
		rep.Score = float64(rep.Passed) / float64(rep.Total)
	}
	return rep, nil
}

func outcome(spans []sdktrace.ReadOnlySpan) string {
	for _, s := range spans {
		for _, kv := range s.Attributes() {
			if kv.Key == "agent.outcome" {
				return kv.Value.AsString()
			}
		}
	}
	return ""
}

func check(want Expectation, prompt, got string, result any) []string {
	var problems []string
	for _, s := range want.PromptContains {
		if !strings.Contains(prompt, s) {
			problems = append(problems, "prompt missing "+s)
		}
	}
	for _, s := range want.PromptNotContains {
		if strings.Contains(prompt, s) {
			problems = append(problems, "prompt unexpectedly contains "+s)
		}
	}
	if want.Outcome != "" && want.Outcome != got {
		problems = append(problems, fmt.Sprintf("outcome %s, want %s", got, want.Outcome))
	}
	if len(want.ResultContains) > 0 {
		b, _ := json.Marshal(result)
		for _, s := range want.ResultContains {
			if !strings.Contains(string(b), s) {
				problems = append(problems, "result missing "+s)
			}
		}
	}
	return problems
}
