//go:build integration

package openai

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
)

func TestOpenAIJSONCompletion(t *testing.T) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}
	ctx := context.Background()
	m, err := Factory(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	c := llm.NewCompleter(m, llm.WithTimeout(60*time.Second), llm.WithOptions(map[string]any{"json": true}))
	out, err := c.Complete(ctx, `Return a JSON object {"score": <number between 0 and 1>} rating how well a tent suits a hiker.`)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("reply is not JSON: %q", out)
	}
}
