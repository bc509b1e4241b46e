//go:build !integration

package recommendation

import (
	"context"
	"testing"

	"shopPicks/domain"
)

func TestCollaborativeSurfacesSimilarUsersProducts(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionLike),
		interactionAt(1, 11, domain.InteractionLike),
		// user 2 shares both likes and also liked product 12
		interactionAt(2, 10, domain.InteractionLike),
		interactionAt(2, 11, domain.InteractionLike),
		interactionAt(2, 12, domain.InteractionLike),
	}}

	products := &fakeProductRepo{products: []domain.Product{
		{ID: 12, Name: "Headphones", Category: "Electronics", Brand: "Sony", Price: 200, Availability: true},
	}}
	svc := newTestService(interactions, nil, products, nil)

	candidates, err := svc.CollaborativeOnly(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("CollaborativeOnly: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.ProductID != 12 {
		t.Errorf("expected product 12, got %d", c.ProductID)
	}
	if c.Score <= 0 {
		t.Errorf("expected positive score, got %v", c.Score)
	}
	if c.Algorithm != domain.AlgorithmCollaborative {
		t.Errorf("algorithm = %q, want %q", c.Algorithm, domain.AlgorithmCollaborative)
	}
	if c.Reason == "" {
		t.Error("candidate is missing a reason")
	}
}

func TestCollaborativeEmptyWithoutSimilarUsers(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionLike),
		// user 2 shares only one product, below the threshold
		interactionAt(2, 10, domain.InteractionLike),
		interactionAt(2, 12, domain.InteractionLike),
	}}

	svc := newTestService(interactions, nil, nil, nil)

	candidates, err := svc.CollaborativeOnly(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("CollaborativeOnly: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates without similar users, got %d", len(candidates))
	}
}

func TestCollaborativeExcludesAlreadyInteracted(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionLike),
		interactionAt(1, 11, domain.InteractionLike),
		interactionAt(1, 12, domain.InteractionView),
		interactionAt(2, 10, domain.InteractionLike),
		interactionAt(2, 11, domain.InteractionLike),
		interactionAt(2, 12, domain.InteractionLike),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 12, Name: "Headphones", Category: "Electronics", Brand: "Sony", Price: 200, Availability: true},
	}}

	svc := newTestService(interactions, nil, products, nil)

	candidates, err := svc.CollaborativeOnly(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("CollaborativeOnly: %v", err)
	}
	for _, c := range candidates {
		if c.ProductID == 12 {
			t.Errorf("product 12 was already viewed by the target and must be excluded")
		}
	}
}

func TestCollaborativeDropsNetNegativeCandidates(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionLike),
		interactionAt(1, 11, domain.InteractionLike),
		interactionAt(2, 10, domain.InteractionLike),
		interactionAt(2, 11, domain.InteractionLike),
		// the only new product carries a dislike
		interactionAt(2, 12, domain.InteractionDislike),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 12, Name: "Headphones", Category: "Electronics", Brand: "Sony", Price: 200, Availability: true},
	}}

	svc := newTestService(interactions, nil, products, nil)

	candidates, err := svc.CollaborativeOnly(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("CollaborativeOnly: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("disliked-only product must not surface, got %d candidates", len(candidates))
	}
}

func TestCollaborativeScoresStayInRange(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionLike),
		interactionAt(1, 11, domain.InteractionLike),
		interactionAt(2, 10, domain.InteractionFavorite),
		interactionAt(2, 11, domain.InteractionFavorite),
		// stacked purchase + favorite + like on one product blows past 1.0 raw
		interactionAt(2, 12, domain.InteractionPurchase),
		interactionAt(2, 12, domain.InteractionFavorite),
		interactionAt(2, 12, domain.InteractionLike),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 12, Name: "Headphones", Category: "Electronics", Brand: "Sony", Price: 200, Availability: true},
	}}

	svc := newTestService(interactions, nil, products, nil)

	candidates, err := svc.CollaborativeOnly(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("CollaborativeOnly: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}
	for _, c := range candidates {
		if c.Score < 0 || c.Score > 1 {
			t.Errorf("score %v for product %d out of [0,1]", c.Score, c.ProductID)
		}
	}
}

func TestCollaborativeExcludesUnavailableProducts(t *testing.T) {
	interactions := &fakeInteractionRepo{interactions: []domain.Interaction{
		interactionAt(1, 10, domain.InteractionLike),
		interactionAt(1, 11, domain.InteractionLike),
		interactionAt(2, 10, domain.InteractionLike),
		interactionAt(2, 11, domain.InteractionLike),
		interactionAt(2, 12, domain.InteractionLike),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 12, Name: "Headphones", Category: "Electronics", Brand: "Sony", Price: 200, Availability: false},
	}}

	svc := newTestService(interactions, nil, products, nil)

	candidates, err := svc.CollaborativeOnly(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("CollaborativeOnly: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("unavailable product must not surface, got %d candidates", len(candidates))
	}
}
