package agents_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nawi-n/SmartCart/pkg/adapters/llm"
	"github.com/nawi-n/SmartCart/pkg/adapters/llm/fake"
	"github.com/nawi-n/SmartCart/pkg/agents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoring answers score prompts from scores keyed by product id and every
// other prompt with a fixed explanation.
func scoring(scores map[string]string) *fake.LLM {
	return &fake.LLM{Respond: func(msgs []llm.Message) fake.Reply {
		p := userPrompt(msgs)
		if !strings.Contains(p, "Calculate a psychographic match score") {
			return fake.Reply{Text: "It suits your style."}
		}
		for id, s := range scores {
			if strings.Contains(p, `"id": "`+id+`"`) {
				return fake.Reply{Text: s}
			}
		}
		return fake.Reply{Err: errors.New("unexpected product")}
	}}
}

func TestRecommend_KeepsScoresAboveNeutral(t *testing.T) {
	f := scoring(map[string]string{
		"p-high":     "0.9",
		"p-mid":      "0.7",
		"p-boundary": "0.5",
		"p-low":      "0.2",
		"p-garbled":  "a great match",
	})
	r := agents.NewRecommendationAgent(newAgent(t, f))
	products := []agents.Product{
		{ID: "p-low", Name: "Low"},
		{ID: "p-mid", Name: "Mid"},
		{ID: "p-boundary", Name: "Boundary"},
		{ID: "p-garbled", Name: "Garbled"},
		{ID: "p-high", Name: "High"},
	}

	got, err := r.Recommend(context.Background(), samplePersona(), "", products)
	require.NoError(t, err)
	require.Len(t, got.Recommendations, 2)
	assert.Equal(t, "p-high", got.Recommendations[0].ProductID)
	assert.Equal(t, 0.9, got.Recommendations[0].Score)
	assert.Equal(t, "p-mid", got.Recommendations[1].ProductID)
	assert.Equal(t, "It suits your style.", got.Recommendations[1].Explanation)
	assert.Empty(t, got.MoodConsidered)
	assert.Equal(t, len(products)+2, f.Calls())

	for _, p := range f.Prompts() {
		assert.Contains(t, p, `Current Mood: "neutral"`)
	}
}

func TestRecommend_CapsAtTenInInputOrderOnTies(t *testing.T) {
	scores := map[string]string{}
	var products []agents.Product
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("p-%02d", i)
		scores[id] = "0.8"
		products = append(products, agents.Product{ID: id})
	}
	r := agents.NewRecommendationAgent(newAgent(t, scoring(scores)), agents.WithConcurrency(3))

	got, err := r.Recommend(context.Background(), samplePersona(), "adventurous", products)
	require.NoError(t, err)
	require.Len(t, got.Recommendations, agents.MaxRecommendations)
	for i, rec := range got.Recommendations {
		assert.Equal(t, fmt.Sprintf("p-%02d", i), rec.ProductID)
	}
	assert.Equal(t, "adventurous", got.MoodConsidered)
}

func TestRecommend_NoProducts(t *testing.T) {
	f := fake.New("0.9")
	r := agents.NewRecommendationAgent(newAgent(t, f))
	got, err := r.Recommend(context.Background(), samplePersona(), "", nil)
	require.NoError(t, err)
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Recommendations)
	assert.Zero(t, f.Calls())
}

func TestMatchScore(t *testing.T) {
	cases := map[string]float64{"0.85": 0.85, "1.7": 1, "-0.3": 0, "NaN": 0.5, "very good": 0.5}
	for reply, want := range cases {
		r := agents.NewRecommendationAgent(newAgent(t, fake.New(reply)))
		got, err := r.MatchScore(context.Background(), samplePersona().Psychographics, "happy", agents.Product{ID: "p1"})
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9, reply)
	}
}

func TestMatchScore_TimeoutIsNeutral(t *testing.T) {
	f := fake.WithReplies(fake.Reply{Err: context.DeadlineExceeded})
	r := agents.NewRecommendationAgent(newAgent(t, f))
	got, err := r.MatchScore(context.Background(), agents.Psychographics{}, "", agents.Product{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, agents.NeutralScore, got)
	assert.Equal(t, 1, f.Calls())
}

func sampleRecommendation() agents.Recommendation {
	rec := agents.DefaultRecommendation()
	rec.ProductID = "p1"
	rec.MatchScore = 0.8
	rec.Explanation = "Great for weekend trips."
	rec.KeyBenefits = []string{"lightweight"}
	return rec
}

func TestApplyFeedback_FallbackIsOriginal(t *testing.T) {
	f := fake.New("I updated it for you!")
	r := agents.NewRecommendationAgent(newAgent(t, f))
	rec := sampleRecommendation()

	got, err := r.ApplyFeedback(context.Background(), rec, map[string]any{"rating": 2, "comment": "too heavy"})
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assertInOrder(t, f.LastPrompt(), "Original Recommendation:", "Customer Feedback:", "too heavy")
}

func TestApplyFeedback_Decodes(t *testing.T) {
	f := fake.New(`{"product_id": "p1", "match_score": 0.4, "explanation": "Heavier than you like."}`)
	r := agents.NewRecommendationAgent(newAgent(t, f))
	got, err := r.ApplyFeedback(context.Background(), sampleRecommendation(), "too heavy")
	require.NoError(t, err)
	assert.Equal(t, 0.4, got.MatchScore)
	assert.Equal(t, []string{}, got.KeyBenefits)
}

func TestGenerate_ArrayReply(t *testing.T) {
	f := fake.New(`[{"product_id": "p1", "match_score": 0.9}, {"product_id": "p2", "match_score": 0.6}]`)
	r := agents.NewRecommendationAgent(newAgent(t, f))
	got, err := r.Generate(context.Background(), map[string]any{"id": "c-1"}, []agents.Product{{ID: "p1"}, {ID: "p2"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[1].ProductID)
	assert.NotNil(t, got[0].SentimentAnalysis.KeyPositiveAspects)
}

func TestForMood_ObjectReplyFallsBackToEmpty(t *testing.T) {
	f := fake.New(`{"product_id": "p1"}`)
	r := agents.NewRecommendationAgent(newAgent(t, f))
	got, err := r.ForMood(context.Background(), map[string]any{"id": "c-1"}, "")
	require.NoError(t, err)
	assert.Equal(t, []agents.Recommendation{}, got)
	assert.Contains(t, f.LastPrompt(), `Current Mood: "neutral"`)
}

func TestAnalyzePerformance_Fallback(t *testing.T) {
	r := agents.NewRecommendationAgent(newAgent(t, fake.New("")))
	got, err := r.AnalyzePerformance(context.Background(), []agents.Recommendation{sampleRecommendation()})
	require.NoError(t, err)
	assert.Equal(t, agents.DefaultPerformanceAnalysis(), got)
}

func TestExplain(t *testing.T) {
	f := fake.New("This tent fits your weekend plans.")
	r := agents.NewRecommendationAgent(newAgent(t, f))
	got, err := r.Explain(context.Background(), sampleRecommendation())
	require.NoError(t, err)
	assert.Equal(t, "This tent fits your weekend plans.", got)
	assert.Contains(t, f.LastPrompt(), "Great for weekend trips.")
}
