package recommendation

import (
	"context"
	"fmt"

	"shopPicks/domain"
)

// buildProfile derives the transient scoring profile for one user: weight
// maps seeded from explicit preferences, plus a count of positive
// interactions. A user without stored preferences gets empty weight maps and
// the wide-open default price window; that is not an error.
func (s *RecommendationService) buildProfile(ctx context.Context, userID uint) (UserProfile, error) {
	pref, found, err := s.preferenceRepo.FindByUser(ctx, userID)
	if err != nil {
		return UserProfile{}, fmt.Errorf("load preferences: %w", err)
	}
	if !found {
		pref = domain.DefaultPreference(userID)
	}

	interactions, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return UserProfile{}, fmt.Errorf("load interactions: %w", err)
	}

	profile := UserProfile{
		UserID:          userID,
		CategoryWeights: make(map[string]float64, len(pref.Categories)),
		BrandWeights:    make(map[string]float64, len(pref.Brands)),
		PricePreference: PriceRange{
			Min: pref.PriceMin,
			Max: pref.PriceMax,
		},
	}

	// Weight maps come only from explicit preferences. Positive interactions
	// feed the counter but do not add categories or brands.
	for _, category := range pref.Categories {
		profile.CategoryWeights[category] = 1.0
	}
	for _, brand := range pref.Brands {
		profile.BrandWeights[brand] = 1.0
	}

	for _, i := range interactions {
		if isPositiveInteraction(i) {
			profile.PositiveInteractionCount++
		}
	}

	return profile, nil
}

// isPositiveInteraction reports whether an interaction signals affinity:
// like, favorite, purchase, or a rating of at least 4.
func isPositiveInteraction(i domain.Interaction) bool {
	switch i.Type {
	case domain.InteractionLike, domain.InteractionFavorite, domain.InteractionPurchase:
		return true
	case domain.InteractionRating:
		return i.RatingValue() >= 4
	}
	return false
}
