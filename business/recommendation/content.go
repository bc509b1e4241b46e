package recommendation

import (
	"context"
	"fmt"
	"strings"

	"shopPicks/domain"
)

// Sub-score weights for the content-based scorer.
const (
	contentWeightCategory = 0.4
	contentWeightBrand    = 0.3
	contentWeightPrice    = 0.2
	contentWeightStyle    = 0.1
)

// Style preferences are not meaningfully modeled upstream yet; every styled
// product gets this placeholder affinity.
const styleAffinityPlaceholder = 0.5

// ContentBasedOnly is the direct entry point to the content-based scorer,
// bypassing fusion.
func (s *RecommendationService) ContentBasedOnly(ctx context.Context, userID uint, limit int) ([]CandidateScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	return s.contentScores(ctx, userID, limit)
}

// contentScores compares every available catalog product against the user's
// profile. A user with no preferences still gets scores (everything ranks at
// the floor); this scorer never fails on missing data.
func (s *RecommendationService) contentScores(ctx context.Context, userID uint, limit int) ([]CandidateScore, error) {
	profile, err := s.buildProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return []CandidateScore{}, nil
	}

	own, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load target interactions: %w", err)
	}
	seen := distinctProducts(own)
	disliked := make(map[uint64]struct{})
	for _, i := range own {
		if i.Type == domain.InteractionDislike {
			disliked[i.ProductID] = struct{}{}
		}
	}

	candidates := make([]CandidateScore, 0, len(products))
	for _, p := range products {
		if _, touched := seen[p.ID]; touched {
			continue
		}
		if _, hated := disliked[p.ID]; hated {
			continue
		}

		score, reason := scoreProductForProfile(p, profile)
		candidates = append(candidates, CandidateScore{
			ProductID:  p.ID,
			Score:      score,
			Algorithm:  domain.AlgorithmContentBased,
			Reason:     reason,
			Confidence: ConfidenceFor(score),
		})
	}

	sortCandidates(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// scoreProductForProfile combines four weighted sub-scores. The style weight
// only applies when the product carries a style attribute, so the final
// score is the weighted sum over the weights actually used.
func scoreProductForProfile(p domain.Product, profile UserProfile) (float64, string) {
	categoryScore, matchedCategory := attributeMatch(p.Category, profile.CategoryWeights)
	brandScore, matchedBrand := attributeMatch(p.Brand, profile.BrandWeights)
	priceScore := priceWindowFit(p.Price, profile.PricePreference)

	weighted := categoryScore*contentWeightCategory +
		brandScore*contentWeightBrand +
		priceScore*contentWeightPrice
	totalWeight := contentWeightCategory + contentWeightBrand + contentWeightPrice

	if p.Style != "" {
		weighted += styleAffinityPlaceholder * contentWeightStyle
		totalWeight += contentWeightStyle
	}

	score := clamp01(weighted / totalWeight)

	var parts []string
	if categoryScore > 0.5 {
		parts = append(parts, fmt.Sprintf("matches your %s preferences", matchedCategory))
	}
	if brandScore > 0.5 {
		parts = append(parts, fmt.Sprintf("from your preferred brand %s", matchedBrand))
	}
	if priceScore > 0.5 {
		parts = append(parts, "within your price range")
	}

	if len(parts) == 0 {
		return score, fmt.Sprintf("%d%% match with your preferences", int(score*100))
	}

	return score, strings.Join(parts, ", ")
}

// attributeMatch scores a product attribute against a profile weight map.
// Exact case-insensitive match earns the stored weight, a substring partial
// match earns half, no match earns 0. Returns the best match and the
// preference entry that produced it.
func attributeMatch(value string, weights map[string]float64) (float64, string) {
	if value == "" || len(weights) == 0 {
		return 0, ""
	}

	lowered := strings.ToLower(value)

	best := 0.0
	matched := ""
	for pref, weight := range weights {
		prefLowered := strings.ToLower(pref)

		var score float64
		switch {
		case lowered == prefLowered:
			score = weight
		case strings.Contains(lowered, prefLowered) || strings.Contains(prefLowered, lowered):
			score = weight / 2
		}

		if score > best || (score == best && score > 0 && pref < matched) {
			best = score
			matched = pref
		}
	}

	return best, matched
}

// priceWindowFit scores 0 outside the window and decays linearly from 1.0
// at the window midpoint to 0.0 at either edge.
func priceWindowFit(price float64, window PriceRange) float64 {
	if window.Max < window.Min {
		return 0
	}
	if price < window.Min || price > window.Max {
		return 0
	}

	mid := (window.Min + window.Max) / 2
	half := (window.Max - window.Min) / 2
	if half == 0 {
		// degenerate single-price window, price is exactly on the midpoint
		return 1
	}

	fit := 1 - abs(price-mid)/half
	if fit < 0 {
		return 0
	}
	return fit
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
