//go:build !integration

package recommendation

import (
	"context"
	"strings"
	"testing"

	"shopPicks/domain"
)

func TestFuseSingleSourceScoreEqualsWeightedRaw(t *testing.T) {
	// no interactions anywhere: only the content-based scorer produces
	// candidates
	prefs := &fakePreferenceRepo{prefs: map[uint]domain.Preference{
		1: pref(1, []string{"Electronics"}, []string{"Apple"}, 500, 1500),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 20, Name: "iPhone", Category: "Electronics", Brand: "Apple", Price: 1000, Availability: true},
	}}

	svc := newTestService(nil, prefs, products, nil)

	raw, err := svc.contentScores(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("contentScores: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 raw content candidate, got %d", len(raw))
	}

	fused, err := svc.fuse(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("fuse: %v", err)
	}
	if len(fused) != 1 {
		t.Fatalf("expected 1 fused candidate, got %d", len(fused))
	}

	want := raw[0].Score * fusionWeightContentBased
	if fused[0].Score != want {
		t.Errorf("single-source fused score = %v, want raw*weight = %v", fused[0].Score, want)
	}
	if fused[0].Algorithm != domain.AlgorithmContentBased {
		t.Errorf("single-source algorithm = %q, want %q", fused[0].Algorithm, domain.AlgorithmContentBased)
	}
	if fused[0].Reason != raw[0].Reason {
		t.Errorf("single-source reason = %q, want %q", fused[0].Reason, raw[0].Reason)
	}
}

func TestFuseBlendsMultipleSources(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	for u := uint(2); u < 5; u++ {
		interactions.interactions = append(interactions.interactions, interactionAt(u, 20, domain.InteractionView))
	}
	prefs := &fakePreferenceRepo{prefs: map[uint]domain.Preference{
		1: pref(1, []string{"Electronics"}, []string{"Apple"}, 500, 1500),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 20, Name: "iPhone", Category: "Electronics", Brand: "Apple", Price: 1000, Availability: true},
	}}

	svc := newTestService(interactions, prefs, products, nil)

	content, err := svc.contentScores(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("contentScores: %v", err)
	}
	popularity, err := svc.popularityScores(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("popularityScores: %v", err)
	}
	if len(content) != 1 || len(popularity) != 1 {
		t.Fatalf("expected one candidate per source, got %d and %d", len(content), len(popularity))
	}

	fused, err := svc.fuse(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("fuse: %v", err)
	}
	if len(fused) != 1 {
		t.Fatalf("fused output must deduplicate, got %d entries", len(fused))
	}

	want := content[0].Score*fusionWeightContentBased + popularity[0].Score*fusionWeightPopularity
	if fused[0].Score != want {
		t.Errorf("blended score = %v, want %v", fused[0].Score, want)
	}
	if fused[0].Algorithm != domain.AlgorithmHybrid {
		t.Errorf("multi-source algorithm = %q, want %q", fused[0].Algorithm, domain.AlgorithmHybrid)
	}
	if !strings.Contains(fused[0].Reason, "; ") {
		t.Errorf("multi-source reason %q should join the source reasons", fused[0].Reason)
	}
}

func TestFuseConfidenceFromBlendedScore(t *testing.T) {
	// the raw content score is a near-perfect match, but the blended score
	// lands at raw*0.4 and the confidence band must reflect that
	prefs := &fakePreferenceRepo{prefs: map[uint]domain.Preference{
		1: pref(1, []string{"Electronics"}, []string{"Apple"}, 500, 1500),
	}}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 20, Name: "iPhone", Category: "Electronics", Brand: "Apple", Price: 1000, Availability: true},
	}}

	svc := newTestService(nil, prefs, products, nil)

	raw, err := svc.contentScores(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("contentScores: %v", err)
	}
	if len(raw) != 1 || raw[0].Confidence != ConfidenceHigh {
		t.Fatalf("expected one high-confidence raw candidate, got %+v", raw)
	}

	fused, err := svc.fuse(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("fuse: %v", err)
	}
	if len(fused) != 1 {
		t.Fatalf("expected 1 fused candidate, got %d", len(fused))
	}
	if fused[0].Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want %q for blended score %v",
			fused[0].Confidence, ConfidenceLow, fused[0].Score)
	}
}

func TestFuseHonorsLimit(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	products := &fakeProductRepo{}
	for pid := uint64(10); pid < 20; pid++ {
		interactions.interactions = append(interactions.interactions, interactionAt(2, pid, domain.InteractionView))
		interactions.interactions = append(interactions.interactions, interactionAt(3, pid, domain.InteractionView))
		products.products = append(products.products, domain.Product{
			ID: pid, Name: "Gadget", Category: "Electronics", Brand: "Acme", Price: 100, Availability: true,
		})
	}

	svc := newTestService(interactions, nil, products, nil)

	fused, err := svc.fuse(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("fuse: %v", err)
	}
	if len(fused) != 3 {
		t.Fatalf("expected 3 fused candidates, got %d", len(fused))
	}
}

func TestFuseDeterministicOrdering(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	products := &fakeProductRepo{}
	for pid := uint64(10); pid < 15; pid++ {
		// identical signal everywhere: ordering must fall back to product id
		interactions.interactions = append(interactions.interactions, interactionAt(2, pid, domain.InteractionView))
		products.products = append(products.products, domain.Product{
			ID: pid, Name: "Gadget", Category: "Electronics", Brand: "Acme", Price: 100, Availability: true,
		})
	}

	svc := newTestService(interactions, nil, products, nil)

	fused, err := svc.fuse(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("fuse: %v", err)
	}
	if len(fused) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(fused))
	}
	for i := 1; i < len(fused); i++ {
		if fused[i-1].ProductID >= fused[i].ProductID {
			t.Fatalf("equal-score candidates not ordered by product id: %d before %d",
				fused[i-1].ProductID, fused[i].ProductID)
		}
	}
}
