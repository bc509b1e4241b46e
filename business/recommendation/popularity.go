package recommendation

import (
	"context"
	"fmt"

	"shopPicks/domain"
)

const popularityReason = "popular among other users"

// interaction count that maps to a full popularity score
const popularityNormalizer = 10.0

// popularityScores is the fallback scorer: aggregate interaction counts
// from other users, normalized to [0,1], excluding products the target
// already touched and products no longer available.
func (s *RecommendationService) popularityScores(ctx context.Context, userID uint, limit int) ([]CandidateScore, error) {
	counts, err := s.interactionRepo.CountByProduct(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load popularity counts: %w", err)
	}
	if len(counts) == 0 {
		return []CandidateScore{}, nil
	}

	own, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load target interactions: %w", err)
	}
	seen := distinctProducts(own)

	ids := make([]uint64, 0, len(counts))
	for _, c := range counts {
		if _, touched := seen[c.ProductID]; !touched {
			ids = append(ids, c.ProductID)
		}
	}
	available, err := s.availableProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	candidates := make([]CandidateScore, 0, len(counts))
	for _, c := range counts {
		if _, touched := seen[c.ProductID]; touched {
			continue
		}
		if _, ok := available[c.ProductID]; !ok {
			continue
		}

		score := clamp01(float64(c.Count) / popularityNormalizer)
		candidates = append(candidates, CandidateScore{
			ProductID:  c.ProductID,
			Score:      score,
			Algorithm:  domain.AlgorithmPopularity,
			Reason:     popularityReason,
			Confidence: ConfidenceFor(score),
		})
	}

	sortCandidates(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}
