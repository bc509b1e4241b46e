package recommendation

import (
	"context"
	"fmt"
	"sort"

	"shopPicks/domain"
)

const collaborativeReason = "recommended by users with similar preferences"

// CollaborativeOnly is the direct entry point to the collaborative scorer,
// bypassing fusion.
func (s *RecommendationService) CollaborativeOnly(ctx context.Context, userID uint, limit int) ([]CandidateScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	return s.collaborativeScores(ctx, userID, limit)
}

// collaborativeScores accumulates affinity x similarity over products that
// similar users touched but the target never has. Zero similar users means
// an empty result, not an error.
func (s *RecommendationService) collaborativeScores(ctx context.Context, userID uint, limit int) ([]CandidateScore, error) {
	similar, err := s.findSimilarUsers(ctx, userID, s.cfg.SimilarUserLimit)
	if err != nil {
		return nil, err
	}
	if len(similar) == 0 {
		return []CandidateScore{}, nil
	}

	own, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load target interactions: %w", err)
	}
	seen := distinctProducts(own)

	scores := make(map[uint64]float64)
	for _, su := range similar {
		interactions, err := s.interactionRepo.FindByUser(ctx, su.UserID)
		if err != nil {
			return nil, fmt.Errorf("load interactions for similar user %d: %w", su.UserID, err)
		}
		for _, i := range interactions {
			if _, touched := seen[i.ProductID]; touched {
				continue
			}
			scores[i.ProductID] += AffinityWeight(i.Type) * su.Similarity
		}
	}

	ids := make([]uint64, 0, len(scores))
	for productID := range scores {
		ids = append(ids, productID)
	}
	available, err := s.availableProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	candidates := make([]CandidateScore, 0, len(scores))
	for productID, score := range scores {
		if _, ok := available[productID]; !ok {
			continue
		}
		if score <= 0 {
			// net-negative signal (dislikes) is not a recommendation
			continue
		}
		score = clamp01(score)
		candidates = append(candidates, CandidateScore{
			ProductID:  productID,
			Score:      score,
			Algorithm:  domain.AlgorithmCollaborative,
			Reason:     collaborativeReason,
			Confidence: ConfidenceFor(score),
		})
	}

	sortCandidates(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// availableProducts resolves candidate ids against the catalog; anything the
// catalog no longer lists as available is dropped from the result set.
func (s *RecommendationService) availableProducts(ctx context.Context, ids []uint64) (map[uint64]struct{}, error) {
	if len(ids) == 0 {
		return map[uint64]struct{}{}, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load candidate products: %w", err)
	}

	out := make(map[uint64]struct{}, len(products))
	for _, p := range products {
		out[p.ID] = struct{}{}
	}
	return out, nil
}

// sortCandidates orders by score DESC, product id ASC on ties, so output is
// stable for a fixed snapshot.
func sortCandidates(candidates []CandidateScore) {
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].ProductID < candidates[b].ProductID
	})
}
