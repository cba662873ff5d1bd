// Package fake provides a scripted LLM for tests.
package fake

import (
	"context"
	"sync"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
)

// Reply is one scripted answer. Err takes precedence over Text.
type Reply struct {
	Text string
	Err  error
	// Block makes Generate wait for ctx cancellation before answering.
	Block bool
}

// LLM replays Replies in order and records every prompt it receives.
// Once the script is exhausted the last reply repeats.
type LLM struct {
	mu      sync.Mutex
	replies []Reply
	calls   [][]llm.Message
	// Respond, when set, answers instead of the script.
	Respond func(messages []llm.Message) Reply
}

// New returns a fake answering with the given texts in order.
func New(texts ...string) *LLM {
	f := &LLM{}
	for _, t := range texts {
		f.replies = append(f.replies, Reply{Text: t})
	}
	return f
}

// WithReplies returns a fake scripted with full replies.
func WithReplies(replies ...Reply) *LLM { return &LLM{replies: replies} }

func (f *LLM) Name() string { return "fake" }

func (f *LLM) Generate(ctx context.Context, messages []llm.Message, _ map[string]any) (llm.GenerateResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]llm.Message(nil), messages...))
	var r Reply
	switch {
	case f.Respond != nil:
		r = f.Respond(messages)
	case len(f.replies) == 0:
	case len(f.calls) <= len(f.replies):
		r = f.replies[len(f.calls)-1]
	default:
		r = f.replies[len(f.replies)-1]
	}
	f.mu.Unlock()

	if r.Block {
		<-ctx.Done()
		return llm.GenerateResult{}, ctx.Err()
	}
	if r.Err != nil {
		return llm.GenerateResult{}, r.Err
	}
	return llm.GenerateResult{Text: r.Text, Model: "fake"}, nil
}

// Calls returns the number of Generate invocations.
func (f *LLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// LastPrompt returns the content of the last user message seen.
func (f *LLM) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	msgs := f.calls[len(f.calls)-1]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}

// Prompts returns every user prompt in call order.
func (f *LLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, msgs := range f.calls {
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role == llm.RoleUser {
				out = append(out, msgs[i].Content)
				break
			}
		}
	}
	return out
}

// Transcriber is a scripted llm.Transcriber.
type Transcriber struct {
	Text string
	Err  error
}

func (t Transcriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return t.Text, t.Err
}
