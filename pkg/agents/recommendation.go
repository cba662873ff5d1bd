package agents

import (
	"context"
	"sort"

	"github.com/nawi-n/SmartCart/pkg/agent"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxRecommendations caps a Recommend result.
	MaxRecommendations = 10
	// NeutralMood is assumed when the customer's mood is unknown.
	NeutralMood = "neutral"
)

// RecommendationAgent scores, explains and revises product recommendations.
type RecommendationAgent struct {
	agent       *agent.Agent
	concurrency int
}

// RecommendationOption configures a RecommendationAgent.
type RecommendationOption func(*RecommendationAgent)

// WithConcurrency bounds how many model calls Recommend makes at once.
func WithConcurrency(n int) RecommendationOption {
	return func(r *RecommendationAgent) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRecommendationAgent creates a RecommendationAgent running up to four
// model calls at once unless WithConcurrency says otherwise.
func NewRecommendationAgent(a *agent.Agent, opts ...RecommendationOption) *RecommendationAgent {
	r := &RecommendationAgent{agent: a, concurrency: 4}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Generate asks the model to pick recommendations from products.
func (r *RecommendationAgent) Generate(ctx context.Context, customer any, products []Product) ([]Recommendation, error) {
	return agent.Execute(ctx, r.agent, generateRecommendations, agent.Context{
		"customer": customer,
		"products": products,
	})
}

// ForMood recommends products suited to mood.
func (r *RecommendationAgent) ForMood(ctx context.Context, customer any, mood string) ([]Recommendation, error) {
	return agent.Execute(ctx, r.agent, generateMoodRecommendations, agent.Context{
		"customer": customer,
		"mood":     moodOrNeutral(mood),
	})
}

// MatchScore rates how well p fits the customer in [0, 1]. Without a usable
// answer the score is NeutralScore.
func (r *RecommendationAgent) MatchScore(ctx context.Context, traits Psychographics, mood string, p Product) (float64, error) {
	return agent.Execute(ctx, r.agent, calculateMatchScore, agent.Context{
		"persona_traits": traits,
		"mood":           moodOrNeutral(mood),
		"product":        p,
	})
}

// ExplainMatch says why p suits the customer at the given score.
func (r *RecommendationAgent) ExplainMatch(ctx context.Context, traits Psychographics, mood string, p Product, score float64) (string, error) {
	return agent.Execute(ctx, r.agent, explainMatch, agent.Context{
		"persona_traits": traits,
		"mood":           moodOrNeutral(mood),
		"product":        p,
		"score":          score,
	})
}

// Explain describes rec in plain language.
func (r *RecommendationAgent) Explain(ctx context.Context, rec Recommendation) (string, error) {
	return agent.Execute(ctx, r.agent, explainRecommendation, agent.Context{"recommendation": rec})
}

// ApplyFeedback revises rec from customer feedback. On failure rec is returned.
func (r *RecommendationAgent) ApplyFeedback(ctx context.Context, rec Recommendation, feedback any) (Recommendation, error) {
	return agent.Execute(ctx, r.agent, updateRecommendationFeedback, agent.Context{
		"recommendation": rec,
		"feedback":       feedback,
	})
}

// AnalyzePerformance summarizes how a set of recommendations did.
func (r *RecommendationAgent) AnalyzePerformance(ctx context.Context, recs []Recommendation) (PerformanceAnalysis, error) {
	return agent.Execute(ctx, r.agent, analyzeRecommendationPerformance, agent.Context{"recommendations": recs})
}

// Recommend scores every product against the persona, keeps those scoring
// above NeutralScore, explains each and returns the best MaxRecommendations
// by descending score. Products whose score fell back to NeutralScore are
// never recommended.
func (r *RecommendationAgent) Recommend(ctx context.Context, persona Persona, mood string, products []Product) (RecommendResult, error) {
	traits := persona.Psychographics
	scores := make([]float64, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, p := range products {
		g.Go(func() error {
			s, err := r.MatchScore(gctx, traits, mood, p)
			scores[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return RecommendResult{}, err
	}

	var kept []ScoredProduct
	var keptProducts []Product
	for i, p := range products {
		if scores[i] > NeutralScore {
			kept = append(kept, ScoredProduct{ProductID: p.ID, Score: scores[i]})
			keptProducts = append(keptProducts, p)
		}
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range kept {
		g.Go(func() error {
			text, err := r.ExplainMatch(gctx, traits, mood, keptProducts[i], kept[i].Score)
			kept[i].Explanation = text
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return RecommendResult{}, err
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })
	if len(kept) > MaxRecommendations {
		kept = kept[:MaxRecommendations]
	}
	if kept == nil {
		kept = []ScoredProduct{}
	}
	return RecommendResult{Recommendations: kept, MoodConsidered: mood}, nil
}

func moodOrNeutral(mood string) string {
	if mood == "" {
		return NeutralMood
	}
	return mood
}
