package recommendation

import "shopPicks/domain"

// Two independent scales per interaction type. Affinity feeds ranking,
// analytics feeds reporting only. Do not collapse them.

var affinityWeights = map[string]float64{
	domain.InteractionPurchase: 1.0,
	domain.InteractionFavorite: 0.9,
	domain.InteractionRating:   0.8,
	domain.InteractionLike:     0.7,
	domain.InteractionView:     0.1,
	domain.InteractionDislike:  -0.5,
}

var analyticsScores = map[string]float64{
	domain.InteractionPurchase: 10,
	domain.InteractionFavorite: 8,
	domain.InteractionRating:   6,
	domain.InteractionLike:     5,
	domain.InteractionView:     1,
	domain.InteractionDislike:  -2,
}

// AffinityWeight returns the ranking strength of an interaction type.
// Unknown types get 0.
func AffinityWeight(interactionType string) float64 {
	return affinityWeights[interactionType]
}

// AnalyticsScore returns the reporting score of an interaction type.
// Unknown types get 0.
func AnalyticsScore(interactionType string) float64 {
	return analyticsScores[interactionType]
}

// Fusion blend weights over the three scorer outputs. These sum to 1.0 and
// are distinct from AlgorithmWeights below.
const (
	fusionWeightCollaborative = 0.4
	fusionWeightContentBased  = 0.4
	fusionWeightPopularity    = 0.2
)

// AlgorithmWeights is the four-way split exposed for reporting and
// experimentation tooling. It is NOT the fusion blend; keep the two tables
// separate.
func AlgorithmWeights() map[string]float64 {
	return map[string]float64{
		domain.AlgorithmCollaborative: 0.4,
		domain.AlgorithmContentBased:  0.3,
		domain.AlgorithmPopularity:    0.2,
		domain.AlgorithmHybrid:        0.1,
	}
}

// ConfidenceFor buckets a score into a confidence band.
func ConfidenceFor(score float64) string {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
