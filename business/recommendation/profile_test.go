//go:build !integration

package recommendation

import (
	"context"
	"testing"

	"shopPicks/domain"
)

func TestBuildProfileFromPreferences(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionLike),
		interactionAt(1, 11, domain.InteractionPurchase),
		ratingInteraction(1, 12, 5),
		ratingInteraction(1, 13, 2),
		interactionAt(1, 14, domain.InteractionView),
		interactionAt(1, 15, domain.InteractionDislike),
	}}
	prefs := &fakePreferenceRepo{prefs: map[uint]domain.Preference{
		1: pref(1, []string{"Electronics", "Books"}, []string{"Apple"}, 100, 2000),
	}}

	svc := newTestService(interactions, prefs, nil, nil)

	profile, err := svc.buildProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("buildProfile: %v", err)
	}

	if profile.CategoryWeights["Electronics"] != 1.0 || profile.CategoryWeights["Books"] != 1.0 {
		t.Errorf("category weights not seeded from preferences: %v", profile.CategoryWeights)
	}
	if profile.BrandWeights["Apple"] != 1.0 {
		t.Errorf("brand weights not seeded from preferences: %v", profile.BrandWeights)
	}
	if profile.PricePreference.Min != 100 || profile.PricePreference.Max != 2000 {
		t.Errorf("unexpected price window: %+v", profile.PricePreference)
	}

	// like, purchase, rating=5 are positive; rating=2, view, dislike are not
	if profile.PositiveInteractionCount != 3 {
		t.Errorf("positive interaction count = %d, want 3", profile.PositiveInteractionCount)
	}
}

func TestBuildProfileWithoutStoredPreferences(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	profile, err := svc.buildProfile(context.Background(), 42)
	if err != nil {
		t.Fatalf("buildProfile must not fail for a new user: %v", err)
	}

	if len(profile.CategoryWeights) != 0 || len(profile.BrandWeights) != 0 {
		t.Errorf("expected empty weight maps, got %v / %v", profile.CategoryWeights, profile.BrandWeights)
	}
	if profile.PricePreference.Min != 0 || profile.PricePreference.Max != 10000 {
		t.Errorf("expected wide-open default price window, got %+v", profile.PricePreference)
	}
}

func TestPositiveInteractionsDoNotSeedWeightMaps(t *testing.T) {
	// a purchase on a product must not add its category to the profile
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionPurchase),
	}}
	prefs := &fakePreferenceRepo{prefs: map[uint]domain.Preference{
		1: pref(1, []string{"Books"}, nil, 0, 10000),
	}}

	svc := newTestService(interactions, prefs, nil, nil)

	profile, err := svc.buildProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("buildProfile: %v", err)
	}

	if len(profile.CategoryWeights) != 1 {
		t.Errorf("interactions leaked into weight maps: %v", profile.CategoryWeights)
	}
	if profile.PositiveInteractionCount != 1 {
		t.Errorf("positive interaction count = %d, want 1", profile.PositiveInteractionCount)
	}
}
