package agents

// Unknown marks fields a degraded result could not determine.
const Unknown = "unknown"

// Apology is returned by lenient text operations when no reply is available.
const Apology = "I apologize, but I'm having trouble generating a response at the moment."

// NeutralScore is the match score used when the model gives no usable number.
const NeutralScore = 0.5

// Every constructor below builds a fresh value with non-nil collections.

// DefaultPersona is the persona returned when none could be generated.
func DefaultPersona() Persona {
	return Persona{
		Demographics: Demographics{
			AgeGroup:         Unknown,
			CustomerSegment:  Unknown,
			LocationInsights: Unknown,
			SpendingHabits: SpendingHabits{
				PurchaseFrequency: Unknown,
				PriceSensitivity:  Unknown,
			},
		},
		BehavioralPatterns: BehavioralPatterns{
			BrowsingPreferences:     []string{},
			PurchaseHistoryAnalysis: []string{},
			SeasonalBehavior:        []string{},
			HolidayShoppingPatterns: []string{},
		},
		Psychographics: Psychographics{
			PersonalityTraits:   []string{},
			ShoppingMotivations: []string{},
			DecisionFactors:     []string{},
			BrandPreferences:    []string{},
		},
		RecommendationPreferences: RecommendationPreferences{
			PreferredCategories:  []string{},
			PriceRangePreference: Unknown,
			BrandPreferences:     []string{},
			SeasonalPreferences:  []string{},
		},
	}
}

// DefaultSeasonalBehavior has no seasons and unknown holiday habits.
func DefaultSeasonalBehavior() SeasonalBehavior {
	return SeasonalBehavior{
		SeasonalPatterns:   Seasons{Spring: []string{}, Summer: []string{}, Fall: []string{}, Winter: []string{}},
		HolidayPreferences: map[string]HolidayPreference{},
		SeasonalRecommendations: SeasonalRecommendations{
			CurrentSeason:         Unknown,
			RecommendedCategories: []string{},
			PriceRangeSuggestions: Unknown,
		},
	}
}

// DefaultBehaviorInsights has every list empty.
func DefaultBehaviorInsights() BehaviorInsights {
	return BehaviorInsights{
		ProductPreferences: []string{},
		ShoppingPatterns:   []string{},
		CategoryInterests:  []string{},
		SearchTrends:       []string{},
	}
}

// DefaultProductProfile is the profile returned when none could be generated.
func DefaultProductProfile() ProductProfile {
	return ProductProfile{
		ProductAttributes: ProductAttributes{
			Category:         Unknown,
			BrandPositioning: Unknown,
			PricePositioning: Unknown,
		},
		MarketContext: MarketContext{
			GeographicalRelevance: []string{},
			SeasonalRelevance:     []string{},
			HolidayRelevance:      []string{},
			CompetitivePosition:   Unknown,
		},
		CustomerAppeal: CustomerAppeal{
			TargetSegments:    []string{},
			ValueProposition:  []string{},
			EmotionalTriggers: []string{},
			PracticalBenefits: []string{},
		},
		RecommendationMetrics: RecommendationMetrics{
			SimilarProducts: []string{},
			SeasonalFactors: []string{},
			HolidayFactors:  []string{},
		},
	}
}

// DefaultPersonaMatch scores zero and leaves every judgement unknown.
func DefaultPersonaMatch() PersonaMatch {
	return PersonaMatch{
		MatchFactors:           []string{},
		PotentialConcerns:      []string{},
		RecommendationStrength: Unknown,
		SeasonalRelevance:      Unknown,
		GeographicalRelevance:  Unknown,
		PriceSensitivityMatch:  Unknown,
		BrandPreferenceMatch:   Unknown,
	}
}

// DefaultSeasonalPerformance scores every season zero.
func DefaultSeasonalPerformance() SeasonalPerformance {
	season := func() SeasonScore { return SeasonScore{KeyFactors: []string{}} }
	return SeasonalPerformance{
		SeasonalPerformance:     SeasonScores{Spring: season(), Summer: season(), Fall: season(), Winter: season()},
		HolidayPerformance:      map[string]SegmentPerformance{},
		GeographicalPerformance: map[string]MarketPerformance{},
	}
}

// DefaultRecommendation explains nothing and lists no factors.
func DefaultRecommendation() Recommendation {
	return Recommendation{
		Explanation:            Unknown,
		KeyBenefits:            []string{},
		PotentialConcerns:      []string{},
		PersonalizationFactors: []string{},
		SeasonalRelevance:      Unknown,
		GeographicalRelevance:  Unknown,
		PriceSensitivityMatch:  Unknown,
		BrandPreferenceMatch:   Unknown,
		SentimentAnalysis: SentimentAnalysis{
			OverallSentiment:   Unknown,
			KeyPositiveAspects: []string{},
			KeyNegativeAspects: []string{},
		},
		SimilarProductsAnalysis: SimilarProductsAnalysis{
			CommonFeatures:         []string{},
			DifferentiatingFactors: []string{},
		},
	}
}

func noRecommendations() []Recommendation { return []Recommendation{} }

// DefaultPerformanceAnalysis reports zero metrics and empty breakdowns.
func DefaultPerformanceAnalysis() PerformanceAnalysis {
	return PerformanceAnalysis{
		OverallPerformance: OverallPerformance{
			KeySuccessFactors: []string{},
			ImprovementAreas:  []string{},
		},
		SeasonalAnalysis:        map[string]SegmentPerformance{},
		GeographicalAnalysis:    map[string]MarketPerformance{},
		CustomerSegmentAnalysis: map[string]SegmentPerformance{},
	}
}
