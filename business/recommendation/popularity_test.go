//go:build !integration

package recommendation

import (
	"context"
	"testing"

	"shopPicks/domain"
)

func popularityCatalog() *fakeProductRepo {
	return &fakeProductRepo{products: []domain.Product{
		{ID: 10, Name: "Mug", Category: "Kitchen", Brand: "Acme", Price: 15, Availability: true},
		{ID: 20, Name: "Kettle", Category: "Kitchen", Brand: "Acme", Price: 40, Availability: true},
	}}
}

func TestPopularityNormalizesCounts(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	// 5 distinct users interacted with product 10, 30 with product 20
	for u := uint(2); u < 7; u++ {
		interactions.interactions = append(interactions.interactions, interactionAt(u, 10, domain.InteractionView))
	}
	for u := uint(2); u < 32; u++ {
		interactions.interactions = append(interactions.interactions, interactionAt(u, 20, domain.InteractionView))
	}

	svc := newTestService(interactions, nil, popularityCatalog(), nil)

	candidates, err := svc.popularityScores(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("popularityScores: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	if candidates[0].ProductID != 20 {
		t.Fatalf("busiest product must rank first, got %d", candidates[0].ProductID)
	}
	if candidates[0].Score != 1 {
		t.Errorf("30 interactions must clamp to score 1, got %v", candidates[0].Score)
	}
	if candidates[1].ProductID != 10 || candidates[1].Score != 0.5 {
		t.Errorf("5 interactions must score 0.5, got product %d score %v",
			candidates[1].ProductID, candidates[1].Score)
	}
	for _, c := range candidates {
		if c.Algorithm != domain.AlgorithmPopularity {
			t.Errorf("algorithm = %q, want %q", c.Algorithm, domain.AlgorithmPopularity)
		}
	}
}

func TestPopularityExcludesOwnProducts(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionPurchase),
		interactionAt(2, 10, domain.InteractionView),
		interactionAt(2, 20, domain.InteractionView),
		interactionAt(3, 20, domain.InteractionView),
	}}

	svc := newTestService(interactions, nil, popularityCatalog(), nil)

	candidates, err := svc.popularityScores(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("popularityScores: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].ProductID != 20 {
		t.Errorf("product 10 was purchased by the target and must be excluded")
	}
}

func TestPopularityExcludesUnavailableProducts(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(2, 10, domain.InteractionView),
		interactionAt(3, 10, domain.InteractionView),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 10, Name: "Mug", Category: "Kitchen", Brand: "Acme", Price: 15, Availability: false},
	}}

	svc := newTestService(interactions, nil, products, nil)

	candidates, err := svc.popularityScores(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("popularityScores: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("unavailable product must not surface, got %d candidates", len(candidates))
	}
}

func TestPopularityEmptyWithoutForeignInteractions(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionView),
	}}

	svc := newTestService(interactions, nil, popularityCatalog(), nil)

	candidates, err := svc.popularityScores(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("popularityScores: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}
