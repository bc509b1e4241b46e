package recommendation

import (
	"context"
	"fmt"
	"sort"

	"shopPicks/domain"
)

// minimum weighted overlap before another user counts as similar
const similarityFloor = 0.2

// minimum number of shared products before overlap means anything
const minSharedProducts = 2

// findSimilarUsers computes the weighted interaction overlap between the
// target user and everyone who touched at least minSharedProducts of the
// same products. Deterministic for a fixed interaction snapshot; no side
// effects.
func (s *RecommendationService) findSimilarUsers(ctx context.Context, userID uint, limit int) ([]SimilarUser, error) {
	if limit <= 0 {
		limit = defaultSimilarUserLimit
	}

	own, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load target interactions: %w", err)
	}

	ownProducts := distinctProducts(own)
	if len(ownProducts) == 0 {
		// cold start: nothing to overlap with
		return []SimilarUser{}, nil
	}

	type overlap struct {
		weighted float64
		shared   map[uint64]struct{}
	}
	overlaps := make(map[uint]*overlap)

	for productID := range ownProducts {
		interactions, err := s.interactionRepo.FindByProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("load interactions for product %d: %w", productID, err)
		}

		for _, i := range interactions {
			if i.UserID == userID {
				continue
			}
			o, ok := overlaps[i.UserID]
			if !ok {
				o = &overlap{shared: make(map[uint64]struct{})}
				overlaps[i.UserID] = o
			}
			o.weighted += overlapWeight(i)
			o.shared[i.ProductID] = struct{}{}
		}
	}

	similar := make([]SimilarUser, 0, len(overlaps))
	for otherID, o := range overlaps {
		sharedCount := len(o.shared)
		if sharedCount < minSharedProducts {
			continue
		}
		if o.weighted <= similarityFloor {
			continue
		}

		similarity := o.weighted / float64(max(1, sharedCount))
		if similarity > 1 {
			similarity = 1
		}

		similar = append(similar, SimilarUser{
			UserID:         otherID,
			Similarity:     similarity,
			SharedProducts: sharedCount,
		})
	}

	sort.Slice(similar, func(a, b int) bool {
		if similar[a].Similarity != similar[b].Similarity {
			return similar[a].Similarity > similar[b].Similarity
		}
		if similar[a].SharedProducts != similar[b].SharedProducts {
			return similar[a].SharedProducts > similar[b].SharedProducts
		}
		return similar[a].UserID < similar[b].UserID
	})

	if len(similar) > limit {
		similar = similar[:limit]
	}

	return similar, nil
}

// overlapWeight grades one interaction's contribution to user-user overlap.
// This scale is intentionally different from the affinity weights.
func overlapWeight(i domain.Interaction) float64 {
	switch i.Type {
	case domain.InteractionLike:
		return 1.0
	case domain.InteractionFavorite:
		return 1.2
	case domain.InteractionRating:
		if i.RatingValue() >= 4 {
			return 1.0
		}
		if i.RatingValue() >= 3 {
			return 0.5
		}
		return 0.1
	}
	return 0.1
}

func distinctProducts(interactions []domain.Interaction) map[uint64]struct{} {
	products := make(map[uint64]struct{}, len(interactions))
	for _, i := range interactions {
		products[i.ProductID] = struct{}{}
	}
	return products
}
