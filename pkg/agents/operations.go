package agents

import "github.com/nawi-n/SmartCart/pkg/agent"

var decodeSentimentJSON = agent.JSON[Sentiment]()

// decodeSentiment keeps every emotion score inside [0, 1].
func decodeSentiment(raw string) (Sentiment, error) {
	s, err := decodeSentimentJSON(raw)
	if err != nil {
		return s, err
	}
	s.Happiness = agent.Clamp01(s.Happiness)
	s.Sadness = agent.Clamp01(s.Sadness)
	s.Anger = agent.Clamp01(s.Anger)
	s.Surprise = agent.Clamp01(s.Surprise)
	s.Fear = agent.Clamp01(s.Fear)
	return s, nil
}

// Customer operations.
var (
	generatePersona = agent.Operation[Persona]{
		Name:        "generate_persona",
		Record:      "customer",
		Description: "Build a persona from raw customer data.",
		Decode:      agent.JSON[Persona](),
		Fallback:    agent.Static(DefaultPersona),
	}
	updatePersona = agent.Operation[Persona]{
		Name:        "update_persona",
		Description: "Revise a persona with new customer data.",
		Decode:      agent.JSON[Persona](),
		Fallback:    agent.FromContext("persona", agent.Static(DefaultPersona)),
	}
	updatePersonaFromBehavior = agent.Operation[Persona]{
		Name:        "update_persona_from_behavior",
		Description: "Revise a persona from recent browsing behavior.",
		Decode:      agent.JSON[Persona](),
		Fallback:    agent.FromContext("persona", agent.Static(DefaultPersona)),
	}
	analyzeSeasonalBehavior = agent.Operation[SeasonalBehavior]{
		Name:        "analyze_seasonal_behavior",
		Record:      "customer",
		Description: "Describe a customer's seasonal and holiday shopping.",
		Decode:      agent.JSON[SeasonalBehavior](),
		Fallback:    agent.Static(DefaultSeasonalBehavior),
	}
	analyzeBehaviorPatterns = agent.Operation[BehaviorInsights]{
		Name:        "analyze_behavior_patterns",
		Record:      "behavior_summary",
		Description: "Summarize insights from aggregated browsing behavior.",
		Decode:      agent.JSON[BehaviorInsights](),
		Fallback:    agent.Static(DefaultBehaviorInsights),
	}
	explainPersona = agent.Operation[string]{
		Name:        "explain_persona",
		Record:      "persona",
		Description: "Explain a persona in plain language.",
		Decode:      agent.Text(),
		Fallback:    agent.Constant(Apology),
	}
)

// Product operations.
var (
	generateProductProfile = agent.Operation[ProductProfile]{
		Name:        "generate_product_profile",
		Record:      "product",
		Description: "Build a marketing profile for a product.",
		Decode:      agent.JSON[ProductProfile](),
		Fallback:    agent.Static(DefaultProductProfile),
	}
	matchWithPersona = agent.Operation[PersonaMatch]{
		Name:        "match_with_persona",
		Description: "Assess how well a product profile fits a persona.",
		Decode:      agent.JSON[PersonaMatch](),
		Fallback:    agent.Static(DefaultPersonaMatch),
	}
	generateProductStory = agent.Operation[string]{
		Name:        "generate_product_story",
		Record:      "product",
		Description: "Write a short product story.",
		Decode:      agent.Text(),
		Fallback:    agent.Constant(Apology),
	}
	analyzeSeasonalPerformance = agent.Operation[SeasonalPerformance]{
		Name:        "analyze_seasonal_performance",
		Record:      "product",
		Description: "Estimate a product's performance by season, holiday and region.",
		Decode:      agent.JSON[SeasonalPerformance](),
		Fallback:    agent.Static(DefaultSeasonalPerformance),
	}
)

// Recommendation operations.
var (
	generateRecommendations = agent.Operation[[]Recommendation]{
		Name:        "generate_recommendations",
		Description: "Recommend products from a candidate list.",
		Decode:      agent.JSON[[]Recommendation](),
		Fallback:    agent.Static(noRecommendations),
	}
	generateMoodRecommendations = agent.Operation[[]Recommendation]{
		Name:        "generate_mood_recommendations",
		Description: "Recommend products suited to the customer's mood.",
		Decode:      agent.JSON[[]Recommendation](),
		Fallback:    agent.Static(noRecommendations),
	}
	calculateMatchScore = agent.Operation[float64]{
		Name:        "calculate_match_score",
		Description: "Score the psychographic fit of a product in [0, 1].",
		Decode:      agent.Score(),
		Fallback:    agent.Constant(NeutralScore),
	}
	explainMatch = agent.Operation[string]{
		Name:        "explain_match",
		Description: "Explain a match score to the customer.",
		Decode:      agent.Text(),
		Fallback:    agent.Constant(Apology),
	}
	explainRecommendation = agent.Operation[string]{
		Name:        "explain_recommendation",
		Record:      "recommendation",
		Description: "Explain a recommendation in detail.",
		Decode:      agent.Text(),
		Fallback:    agent.Constant(Apology),
	}
	updateRecommendationFeedback = agent.Operation[Recommendation]{
		Name:        "update_recommendation_feedback",
		Description: "Revise a recommendation with customer feedback.",
		Decode:      agent.JSON[Recommendation](),
		Fallback:    agent.FromContext("recommendation", agent.Static(DefaultRecommendation)),
	}
	analyzeRecommendationPerformance = agent.Operation[PerformanceAnalysis]{
		Name:        "analyze_recommendation_performance",
		Description: "Evaluate how a batch of recommendations performed.",
		Decode:      agent.JSON[PerformanceAnalysis](),
		Fallback:    agent.Static(DefaultPerformanceAnalysis),
	}
)

// Assistant operations. The conversational ones are strict: a caller is
// told when no answer could be produced.
var (
	analyzeSentiment = agent.Operation[Sentiment]{
		Name:        "analyze_sentiment",
		Description: "Score the emotions expressed in a text.",
		Decode:      decodeSentiment,
		Fallback:    agent.Static(func() Sentiment { return Sentiment{} }),
	}
	chatReply = agent.Operation[string]{
		Name:        "chat_reply",
		Description: "Reply to a customer chat message.",
		Decode:      agent.Text(),
		Strict:      true,
	}
	answerProductQuery = agent.Operation[string]{
		Name:        "answer_product_query",
		Description: "Answer a question about one product.",
		Decode:      agent.Text(),
		Strict:      true,
	}
	answerRecommendationQuery = agent.Operation[string]{
		Name:        "answer_recommendation_query",
		Description: "Answer a question about recommendations.",
		Decode:      agent.Text(),
		Strict:      true,
	}
)

// Operations lists every operation the agents run.
func Operations() []agent.Invoker {
	return []agent.Invoker{
		generatePersona,
		updatePersona,
		updatePersonaFromBehavior,
		analyzeSeasonalBehavior,
		analyzeBehaviorPatterns,
		explainPersona,
		generateProductProfile,
		matchWithPersona,
		generateProductStory,
		analyzeSeasonalPerformance,
		generateRecommendations,
		generateMoodRecommendations,
		calculateMatchScore,
		explainMatch,
		explainRecommendation,
		updateRecommendationFeedback,
		analyzeRecommendationPerformance,
		analyzeSentiment,
		chatReply,
		answerProductQuery,
		answerRecommendationQuery,
	}
}

// Register adds every operation to r.
func Register(r *agent.Registry) error {
	return r.Register(Operations()...)
}
