package agents

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/prompt/assembler"
)

// MaxRecentBehaviors bounds the history sent with a behavior update.
const MaxRecentBehaviors = 10

// CustomerAgent builds and maintains customer personas.
type CustomerAgent struct {
	agent   *agent.Agent
	history *assembler.Assembler
}

// CustomerOption configures a CustomerAgent.
type CustomerOption func(*CustomerAgent)

// WithHistoryAssembler replaces how recent behaviors are trimmed.
func WithHistoryAssembler(h *assembler.Assembler) CustomerOption {
	return func(c *CustomerAgent) {
		if h != nil {
			c.history = h
		}
	}
}

// NewCustomerAgent creates a CustomerAgent.
func NewCustomerAgent(a *agent.Agent, opts ...CustomerOption) *CustomerAgent {
	c := &CustomerAgent{
		agent:   a,
		history: assembler.New(assembler.WithMaxEntries(MaxRecentBehaviors)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GeneratePersona builds a persona from any JSON-encodable customer record.
func (c *CustomerAgent) GeneratePersona(ctx context.Context, customer any) (Persona, error) {
	return agent.Execute(ctx, c.agent, generatePersona, agent.Context{"customer": customer})
}

// UpdatePersona revises current with newData. On failure current is returned.
func (c *CustomerAgent) UpdatePersona(ctx context.Context, current Persona, newData any) (Persona, error) {
	return agent.Execute(ctx, c.agent, updatePersona, agent.Context{
		"persona":  current,
		"new_data": newData,
	})
}

// UpdatePersonaFromBehavior revises current from latest and the recent
// history, which must be ordered oldest first. Only the newest entries that
// fit the history budget are sent.
func (c *CustomerAgent) UpdatePersonaFromBehavior(ctx context.Context, current Persona, recent []Behavior, latest Behavior) (Persona, error) {
	return agent.Execute(ctx, c.agent, updatePersonaFromBehavior, agent.Context{
		"persona":          current,
		"recent_behaviors": c.trimHistory(ctx, recent),
		"new_behavior":     latest,
	})
}

func (c *CustomerAgent) trimHistory(ctx context.Context, recent []Behavior) []Behavior {
	entries := make([]assembler.Entry, 0, len(recent))
	for i, b := range recent {
		text, err := json.Marshal(b)
		if err != nil {
			continue
		}
		entries = append(entries, assembler.Entry{
			Key:    strconv.Itoa(i),
			Seq:    i,
			Text:   string(text),
			Pinned: i == len(recent)-1,
		})
	}
	kept, log := c.history.Assemble(entries)
	if log.DroppedCount > 0 {
		c.agent.Logger().DebugContext(ctx, "trimmed behavior history",
			"dropped", log.DroppedCount, "included_tokens", log.IncludedTokens)
	}
	out := make([]Behavior, 0, len(kept))
	for _, e := range kept {
		out = append(out, recent[e.Seq])
	}
	return out
}

// AnalyzeSeasonalBehavior describes how the customer shops across the year.
func (c *CustomerAgent) AnalyzeSeasonalBehavior(ctx context.Context, customer any) (SeasonalBehavior, error) {
	return agent.Execute(ctx, c.agent, analyzeSeasonalBehavior, agent.Context{"customer": customer})
}

// AnalyzeBehaviorPatterns summarizes behaviors and asks the model for
// insights. No behaviors means no insights and no model call.
func (c *CustomerAgent) AnalyzeBehaviorPatterns(ctx context.Context, behaviors []Behavior) (BehaviorInsights, error) {
	if len(behaviors) == 0 {
		return DefaultBehaviorInsights(), nil
	}
	return agent.Execute(ctx, c.agent, analyzeBehaviorPatterns, agent.Context{
		"behavior_summary": Summarize(behaviors),
	})
}

// ExplainPersona describes a persona in plain language.
func (c *CustomerAgent) ExplainPersona(ctx context.Context, p Persona) (string, error) {
	return agent.Execute(ctx, c.agent, explainPersona, agent.Context{"persona": p})
}

// Summarize aggregates sessions: viewed products, searches and per-session
// time are concatenated in order, category interests are counted.
func Summarize(behaviors []Behavior) BehaviorSummary {
	s := BehaviorSummary{
		ViewedProducts:    []string{},
		TimeSpent:         []float64{},
		SearchHistory:     []string{},
		CategoryInterests: map[string]int{},
	}
	for _, b := range behaviors {
		s.ViewedProducts = append(s.ViewedProducts, b.ViewedProducts...)
		s.TimeSpent = append(s.TimeSpent, b.TimeSpent)
		s.SearchHistory = append(s.SearchHistory, b.SearchHistory...)
		for _, cat := range b.CategoryInterests {
			s.CategoryInterests[cat]++
		}
	}
	return s
}
