package agents_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	"github.com/nawi-n/SmartCart/pkg/adapters/llm/fake"
	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/agents"
	"github.com/nawi-n/SmartCart/pkg/eval"
	"github.com/nawi-n/SmartCart/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent(t *testing.T, m llm.LLM) *agent.Agent {
	t.Helper()
	store, changes, err := agents.NewPromptStore("")
	require.NoError(t, err)
	require.Empty(t, changes)
	return agent.New(llm.NewCompleter(m), store)
}

// userPrompt returns the last user message, which is the rendered template.
func userPrompt(msgs []llm.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}

func assertInOrder(t *testing.T, text string, sections ...string) {
	t.Helper()
	last := -1
	for _, s := range sections {
		i := strings.Index(text, s)
		require.GreaterOrEqual(t, i, 0, "section %q missing", s)
		assert.Greater(t, i, last, "section %q out of order", s)
		last = i
	}
}

func TestRegisterEveryOperation(t *testing.T) {
	r := agent.NewRegistry(newAgent(t, fake.New("x")))
	require.NoError(t, agents.Register(r))

	names := r.Names()
	assert.Len(t, names, 21)
	for _, d := range r.Describe() {
		assert.NotEmpty(t, d.Fields, d.Name)
		assert.NotEmpty(t, d.ResultSchema, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
	}
	assert.Error(t, agents.Register(r), "second registration must be rejected")
}

func TestEveryOperationDegradesByMode(t *testing.T) {
	f := fake.WithReplies(fake.Reply{Err: errors.New("provider down")})
	r := agent.NewRegistry(newAgent(t, f))
	require.NoError(t, agents.Register(r))

	strict := map[string]bool{}
	for _, d := range r.Describe() {
		strict[d.Name] = d.Strict
	}
	assert.Equal(t, map[string]bool{
		"chat_reply":                  true,
		"answer_product_query":        true,
		"answer_recommendation_query": true,
	}, onlyTrue(strict))

	for name, isStrict := range strict {
		got, err := r.Execute(context.Background(), name, agent.Context{})
		if isStrict {
			assert.True(t, agent.IsGenerationError(err), name)
			assert.Nil(t, got, name)
			continue
		}
		require.NoError(t, err, name)
		assert.NotNil(t, got, name)
	}
	assert.Equal(t, len(strict), f.Calls(), "exactly one call per operation")
}

func onlyTrue(m map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k, v := range m {
		if v {
			out[k] = v
		}
	}
	return out
}

func TestTextOperationsFallBackToApology(t *testing.T) {
	a := newAgent(t, fake.New("   "))
	product := agents.NewProductAgent(a)
	story, err := product.Story(context.Background(), agents.Product{ID: "p1", Name: "Trail Tent"})
	require.NoError(t, err)
	assert.Equal(t, agents.Apology, story)
}

func TestNewPromptStoreAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`templates:
  - name: chat_reply
    fields: [customer_id, message]
    body: |
      Reply briefly to {{json .customer_id}}: {{json .message}}
`), 0o600))

	store, changes, err := agents.NewPromptStore(path)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "chat_reply", changes[0].Name)
	assert.Equal(t, 1, changes[0].From)
	assert.Equal(t, 2, changes[0].To)
	assert.Contains(t, changes[0].Diff, "+Reply briefly")

	f := fake.New("Sure.")
	assistant := agents.NewAssistantAgent(agent.New(llm.NewCompleter(f), store))
	_, err = assistant.Reply(context.Background(), "c-1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Reply briefly to \"c-1\": \"hi\"\n", f.LastPrompt())
}

func TestNewPromptStoreMissingOverrideFile(t *testing.T) {
	_, _, err := agents.NewPromptStore(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuiltinCatalogLintsClean(t *testing.T) {
	c, err := agents.BuiltinCatalog()
	require.NoError(t, err)
	assert.Len(t, c.Templates, len(agents.Operations()))
	for _, tpl := range c.Templates {
		assert.Empty(t, prompt.Lint(tpl), tpl.Name)
	}
}

func TestRecordedReplies(t *testing.T) {
	fixtures, err := eval.LoadFixtures(os.DirFS("testdata"), "eval")
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	store, _, err := agents.NewPromptStore("")
	require.NoError(t, err)
	rep, err := eval.Run(context.Background(), store, agents.Register, fixtures)
	require.NoError(t, err)
	assert.Empty(t, rep.Details)
	assert.Equal(t, 1.0, rep.Score)
}

func TestDispatchByNameWithBareRecord(t *testing.T) {
	f := fake.New(`{"demographics": {"age_group": "30-40"}}`)
	r := agent.NewRegistry(newAgent(t, f))
	require.NoError(t, agents.Register(r))

	v, err := r.Execute(context.Background(), "generate_persona", agent.Context{"name": "Test Customer", "age": 30})
	require.NoError(t, err)
	assert.Equal(t, "30-40", v.(agents.Persona).Demographics.AgeGroup)
	rendered := f.LastPrompt()
	assert.Contains(t, rendered, `"name": "Test Customer"`)
	assert.Contains(t, rendered, `"age": 30`)
	assert.NotContains(t, rendered, "Customer Data:\nnull")

	_, err = r.Execute(context.Background(), "generate_product_story", agent.Context{"name": "Bath & Body Set", "category": "Bath & Body"})
	require.NoError(t, err)
	assert.Contains(t, f.LastPrompt(), `"category": "Bath & Body"`)
}
