package agents

import "time"

// Persona is the LLM-generated profile of a customer.
type Persona struct {
	Demographics              Demographics              `json:"demographics"`
	BehavioralPatterns        BehavioralPatterns        `json:"behavioral_patterns"`
	Psychographics            Psychographics            `json:"psychographics"`
	RecommendationPreferences RecommendationPreferences `json:"recommendation_preferences"`
}

type Demographics struct {
	AgeGroup         string         `json:"age_group"`
	CustomerSegment  string         `json:"customer_segment"`
	LocationInsights string         `json:"location_insights"`
	SpendingHabits   SpendingHabits `json:"spending_habits"`
}

type SpendingHabits struct {
	AvgOrderValue     float64 `json:"avg_order_value"`
	PurchaseFrequency string  `json:"purchase_frequency"`
	PriceSensitivity  string  `json:"price_sensitivity"`
}

type BehavioralPatterns struct {
	BrowsingPreferences     []string `json:"browsing_preferences"`
	PurchaseHistoryAnalysis []string `json:"purchase_history_analysis"`
	SeasonalBehavior        []string `json:"seasonal_behavior"`
	HolidayShoppingPatterns []string `json:"holiday_shopping_patterns"`
}

type Psychographics struct {
	PersonalityTraits   []string `json:"personality_traits"`
	ShoppingMotivations []string `json:"shopping_motivations"`
	DecisionFactors     []string `json:"decision_factors"`
	BrandPreferences    []string `json:"brand_preferences"`
}

type RecommendationPreferences struct {
	PreferredCategories  []string `json:"preferred_categories"`
	PriceRangePreference string   `json:"price_range_preference"`
	BrandPreferences     []string `json:"brand_preferences"`
	SeasonalPreferences  []string `json:"seasonal_preferences"`
}

// SeasonalBehavior describes how a customer shops across the year.
type SeasonalBehavior struct {
	SeasonalPatterns        Seasons                       `json:"seasonal_patterns"`
	HolidayPreferences      map[string]HolidayPreference  `json:"holiday_preferences" jsonschema:"keyed by holiday name"`
	SeasonalRecommendations SeasonalRecommendations       `json:"seasonal_recommendations"`
}

type Seasons struct {
	Spring []string `json:"spring"`
	Summer []string `json:"summer"`
	Fall   []string `json:"fall"`
	Winter []string `json:"winter"`
}

type HolidayPreference struct {
	PreferredCategories []string `json:"preferred_categories"`
	SpendingPattern     string   `json:"spending_pattern"`
	GiftPreferences     []string `json:"gift_preferences"`
}

type SeasonalRecommendations struct {
	CurrentSeason         string   `json:"current_season"`
	RecommendedCategories []string `json:"recommended_categories"`
	PriceRangeSuggestions string   `json:"price_range_suggestions"`
}

// Behavior is one recorded customer session.
type Behavior struct {
	ViewedProducts    []string  `json:"viewed_products"`
	TimeSpent         float64   `json:"time_spent" jsonschema:"seconds spent in the session"`
	SearchHistory     []string  `json:"search_history"`
	CategoryInterests []string  `json:"category_interests"`
	At                time.Time `json:"at"`
}

// BehaviorSummary aggregates many sessions before they are sent to the model.
type BehaviorSummary struct {
	ViewedProducts    []string       `json:"viewed_products"`
	TimeSpent         []float64      `json:"time_spent"`
	SearchHistory     []string       `json:"search_history"`
	CategoryInterests map[string]int `json:"category_interests"`
}

// BehaviorInsights is the model's reading of a BehaviorSummary.
type BehaviorInsights struct {
	ProductPreferences []string `json:"product_preferences"`
	ShoppingPatterns   []string `json:"shopping_patterns"`
	CategoryInterests  []string `json:"category_interests"`
	SearchTrends       []string `json:"search_trends"`
}

// Product is the catalog record agents reason about.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	Features     []string `json:"features,omitempty"`
	MoodTags     []string `json:"mood_tags,omitempty"`
	PricePoint   string   `json:"price_point,omitempty"`
	QualityLevel string   `json:"quality_level,omitempty"`
}

// ProductProfile is the LLM-generated marketing profile of a product.
type ProductProfile struct {
	ProductAttributes     ProductAttributes     `json:"product_attributes"`
	MarketContext         MarketContext         `json:"market_context"`
	CustomerAppeal        CustomerAppeal        `json:"customer_appeal"`
	RecommendationMetrics RecommendationMetrics `json:"recommendation_metrics"`
}

type ProductAttributes struct {
	Category          string            `json:"category"`
	BrandPositioning  string            `json:"brand_positioning"`
	PricePositioning  string            `json:"price_positioning"`
	QualityIndicators QualityIndicators `json:"quality_indicators"`
}

type QualityIndicators struct {
	ProductRating         float64 `json:"product_rating"`
	SimilarProductsRating float64 `json:"similar_products_rating"`
	SentimentScore        float64 `json:"sentiment_score"`
}

type MarketContext struct {
	GeographicalRelevance []string `json:"geographical_relevance"`
	SeasonalRelevance     []string `json:"seasonal_relevance"`
	HolidayRelevance      []string `json:"holiday_relevance"`
	CompetitivePosition   string   `json:"competitive_position"`
}

type CustomerAppeal struct {
	TargetSegments    []string `json:"target_segments"`
	ValueProposition  []string `json:"value_proposition"`
	EmotionalTriggers []string `json:"emotional_triggers"`
	PracticalBenefits []string `json:"practical_benefits"`
}

type RecommendationMetrics struct {
	ProbabilityScore float64  `json:"probability_score"`
	SimilarProducts  []string `json:"similar_products"`
	SeasonalFactors  []string `json:"seasonal_factors"`
	HolidayFactors   []string `json:"holiday_factors"`
}

// PersonaMatch is the compatibility analysis of one product for one persona.
type PersonaMatch struct {
	CompatibilityScore     float64  `json:"compatibility_score"`
	MatchFactors           []string `json:"match_factors"`
	PotentialConcerns      []string `json:"potential_concerns"`
	RecommendationStrength string   `json:"recommendation_strength"`
	SeasonalRelevance      string   `json:"seasonal_relevance"`
	GeographicalRelevance  string   `json:"geographical_relevance"`
	PriceSensitivityMatch  string   `json:"price_sensitivity_match"`
	BrandPreferenceMatch   string   `json:"brand_preference_match"`
}

// SeasonalPerformance is a product's expected performance by season, holiday and region.
type SeasonalPerformance struct {
	SeasonalPerformance     SeasonScores                  `json:"seasonal_performance"`
	HolidayPerformance      map[string]SegmentPerformance `json:"holiday_performance" jsonschema:"keyed by holiday name"`
	GeographicalPerformance map[string]MarketPerformance  `json:"geographical_performance" jsonschema:"keyed by location"`
}

type SeasonScores struct {
	Spring SeasonScore `json:"spring"`
	Summer SeasonScore `json:"summer"`
	Fall   SeasonScore `json:"fall"`
	Winter SeasonScore `json:"winter"`
}

type SeasonScore struct {
	PerformanceScore float64  `json:"performance_score"`
	KeyFactors       []string `json:"key_factors"`
}

type SegmentPerformance struct {
	PerformanceScore       float64  `json:"performance_score"`
	RecommendationStrength string   `json:"recommendation_strength"`
	TargetSegments         []string `json:"target_segments,omitempty"`
	KeyFactors             []string `json:"key_factors,omitempty"`
}

type MarketPerformance struct {
	PerformanceScore       float64 `json:"performance_score"`
	MarketFit              string  `json:"market_fit"`
	RecommendationStrength string  `json:"recommendation_strength"`
}

// Recommendation is one personalized product suggestion.
type Recommendation struct {
	ProductID               string                  `json:"product_id"`
	MatchScore              float64                 `json:"match_score"`
	Explanation             string                  `json:"explanation"`
	KeyBenefits             []string                `json:"key_benefits"`
	PotentialConcerns       []string                `json:"potential_concerns"`
	PersonalizationFactors  []string                `json:"personalization_factors"`
	SeasonalRelevance       string                  `json:"seasonal_relevance"`
	GeographicalRelevance   string                  `json:"geographical_relevance"`
	PriceSensitivityMatch   string                  `json:"price_sensitivity_match"`
	BrandPreferenceMatch    string                  `json:"brand_preference_match"`
	SentimentAnalysis       SentimentAnalysis       `json:"sentiment_analysis"`
	SimilarProductsAnalysis SimilarProductsAnalysis `json:"similar_products_analysis"`
}

type SentimentAnalysis struct {
	OverallSentiment    string   `json:"overall_sentiment"`
	KeyPositiveAspects  []string `json:"key_positive_aspects"`
	KeyNegativeAspects  []string `json:"key_negative_aspects"`
}

type SimilarProductsAnalysis struct {
	AverageRating         float64  `json:"average_rating"`
	CommonFeatures        []string `json:"common_features"`
	DifferentiatingFactors []string `json:"differentiating_factors"`
}

// PerformanceAnalysis evaluates a batch of recommendations after the fact.
type PerformanceAnalysis struct {
	OverallPerformance      OverallPerformance            `json:"overall_performance"`
	SeasonalAnalysis        map[string]SegmentPerformance `json:"seasonal_analysis" jsonschema:"keyed by season"`
	GeographicalAnalysis    map[string]MarketPerformance  `json:"geographical_analysis" jsonschema:"keyed by location"`
	CustomerSegmentAnalysis map[string]SegmentPerformance `json:"customer_segment_analysis" jsonschema:"keyed by customer segment"`
}

type OverallPerformance struct {
	AverageMatchScore  float64  `json:"average_match_score"`
	SuccessRate        float64  `json:"success_rate"`
	KeySuccessFactors  []string `json:"key_success_factors"`
	ImprovementAreas   []string `json:"improvement_areas"`
}

// Sentiment holds emotion scores in [0, 1].
type Sentiment struct {
	Happiness float64 `json:"happiness"`
	Sadness   float64 `json:"sadness"`
	Anger     float64 `json:"anger"`
	Surprise  float64 `json:"surprise"`
	Fear      float64 `json:"fear"`
}

// ScoredProduct is one entry of a Recommend result.
type ScoredProduct struct {
	ProductID   string  `json:"product_id"`
	Score       float64 `json:"psychographic_match"`
	Explanation string  `json:"explanation"`
}

// RecommendResult is the outcome of the scoring workflow.
type RecommendResult struct {
	Recommendations []ScoredProduct `json:"recommendations"`
	MoodConsidered  string          `json:"mood_considered,omitempty"`
}

// VoiceResponse pairs a transcript with the assistant's answer.
type VoiceResponse struct {
	Transcript string `json:"text"`
	Response   string `json:"response"`
}
