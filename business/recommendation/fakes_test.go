//go:build !integration

package recommendation

import (
	"context"
	"sort"
	"sync"
	"time"

	"shopPicks/domain"
)

// in-memory repositories backing the engine tests

type fakeInteractionRepo struct {
	interactions []domain.Interaction
}

func (f *fakeInteractionRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Interaction, error) {
	var out []domain.Interaction
	for _, i := range f.interactions {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) FindByProduct(ctx context.Context, productID uint64) ([]domain.Interaction, error) {
	var out []domain.Interaction
	for _, i := range f.interactions {
		if i.ProductID == productID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) CountByProduct(ctx context.Context, excludeUserID uint) ([]ProductInteractionCount, error) {
	counts := make(map[uint64]int64)
	for _, i := range f.interactions {
		if i.UserID == excludeUserID {
			continue
		}
		counts[i.ProductID]++
	}
	out := make([]ProductInteractionCount, 0, len(counts))
	for productID, count := range counts {
		out = append(out, ProductInteractionCount{ProductID: productID, Count: count})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out, nil
}

type fakePreferenceRepo struct {
	prefs map[uint]domain.Preference
}

func (f *fakePreferenceRepo) FindByUser(ctx context.Context, userID uint) (domain.Preference, bool, error) {
	pref, ok := f.prefs[userID]
	return pref, ok, nil
}

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) FindAvailable(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if p.Availability {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id && p.Availability {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fakeRecommendationRepo struct {
	mu   sync.Mutex
	rows []domain.Recommendation

	createCalls  int
	replaceCalls int
}

func (f *fakeRecommendationRepo) FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]domain.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Recommendation
	for _, r := range f.rows {
		if r.UserID == userID && r.ExpiresAt.After(now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out, nil
}

func (f *fakeRecommendationRepo) FindActiveByUserAndProduct(ctx context.Context, userID uint, productID uint64, now time.Time) (domain.Recommendation, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == userID && r.ProductID == productID && r.ExpiresAt.After(now) {
			return r, true, nil
		}
	}
	return domain.Recommendation{}, false, nil
}

func (f *fakeRecommendationRepo) CreateBatch(ctx context.Context, recs []domain.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.rows = append(f.rows, recs...)
	return nil
}

func (f *fakeRecommendationRepo) ReplaceForUser(ctx context.Context, userID uint, recs []domain.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.rows = append(kept, recs...)
	return nil
}

func (f *fakeRecommendationRepo) FindUserIDsWithExpired(ctx context.Context, now time.Time) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[uint]struct{})
	var out []uint
	for _, r := range f.rows {
		if !r.ExpiresAt.After(now) {
			if _, ok := seen[r.UserID]; !ok {
				seen[r.UserID] = struct{}{}
				out = append(out, r.UserID)
			}
		}
	}
	return out, nil
}

// newTestService wires a service over the fakes with the default config.
func newTestService(
	interactions *fakeInteractionRepo,
	prefs *fakePreferenceRepo,
	products *fakeProductRepo,
	recos *fakeRecommendationRepo,
) *RecommendationService {
	if interactions == nil {
		interactions = &fakeInteractionRepo{}
	}
	if prefs == nil {
		prefs = &fakePreferenceRepo{prefs: map[uint]domain.Preference{}}
	}
	if products == nil {
		products = &fakeProductRepo{}
	}
	if recos == nil {
		recos = &fakeRecommendationRepo{}
	}
	return NewRecommendationService(interactions, prefs, products, recos, nil, DefaultConfig())
}

func pref(userID uint, categories, brands []string, priceMin, priceMax float64) domain.Preference {
	p := domain.DefaultPreference(userID)
	p.Categories = categories
	p.Brands = brands
	p.PriceMin = priceMin
	p.PriceMax = priceMax
	return p
}

func interactionAt(userID uint, productID uint64, kind string) domain.Interaction {
	return domain.Interaction{
		UserID:    userID,
		ProductID: productID,
		Type:      kind,
		CreatedAt: time.Now(),
	}
}

func ratingInteraction(userID uint, productID uint64, rating float64) domain.Interaction {
	i := interactionAt(userID, productID, domain.InteractionRating)
	i.Metadata = map[string]interface{}{"rating": rating}
	return i
}
