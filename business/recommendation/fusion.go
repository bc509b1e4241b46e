package recommendation

import (
	"context"
	"sort"
	"strings"
	"time"

	"shopPicks/domain"
	"shopPicks/pkg/logger"
	"shopPicks/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// fuse runs the three scorers concurrently at twice the requested limit,
// blends their outputs with the fixed fusion weights, and returns one
// deduplicated ranked list. Confidence is recomputed from the final blended
// score, not the pre-fusion ones.
func (s *RecommendationService) fuse(ctx context.Context, userID uint, limit int) ([]CandidateScore, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	fetchLimit := limit * 2

	var (
		collaborative []CandidateScore
		contentBased  []CandidateScore
		popularity    []CandidateScore
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		collaborative, err = s.timedScores(gctx, "collaborative", userID, fetchLimit, s.collaborativeScores)
		return err
	})
	g.Go(func() error {
		var err error
		contentBased, err = s.timedScores(gctx, "content_based", userID, fetchLimit, s.contentScores)
		return err
	})
	g.Go(func() error {
		var err error
		popularity, err = s.timedScores(gctx, "popularity", userID, fetchLimit, s.popularityScores)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	type blended struct {
		weighted   float64
		algorithms []string
		reasons    []string
	}
	merged := make(map[uint64]*blended)

	accumulate := func(candidates []CandidateScore, weight float64) {
		for _, c := range candidates {
			b, ok := merged[c.ProductID]
			if !ok {
				b = &blended{}
				merged[c.ProductID] = b
			}
			b.weighted += c.Score * weight
			b.algorithms = append(b.algorithms, c.Algorithm)
			b.reasons = append(b.reasons, c.Reason)
		}
	}

	accumulate(collaborative, fusionWeightCollaborative)
	accumulate(contentBased, fusionWeightContentBased)
	accumulate(popularity, fusionWeightPopularity)

	out := make([]CandidateScore, 0, len(merged))
	for productID, b := range merged {
		algorithm := b.algorithms[0]
		reason := b.reasons[0]
		if len(b.algorithms) > 1 {
			algorithm = domain.AlgorithmHybrid
			reason = strings.Join(b.reasons, "; ")
		}

		score := clamp01(b.weighted)
		out = append(out, CandidateScore{
			ProductID:  productID,
			Score:      score,
			Algorithm:  algorithm,
			Reason:     reason,
			Confidence: ConfidenceFor(score),
		})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].ProductID < out[b].ProductID
	})

	if len(out) > limit {
		out = out[:limit]
	}

	logger.Debug("reco_fusion",
		"user_id", userID,
		"collaborative", len(collaborative),
		"content_based", len(contentBased),
		"popularity", len(popularity),
		"merged", len(out),
	)

	return out, nil
}

type scorerFunc func(ctx context.Context, userID uint, limit int) ([]CandidateScore, error)

// timedScores wraps one scorer invocation with its duration and candidate
// count metrics.
func (s *RecommendationService) timedScores(ctx context.Context, name string, userID uint, limit int, fn scorerFunc) ([]CandidateScore, error) {
	start := time.Now()

	candidates, err := fn(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	metrics.ScorerDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	metrics.ScorerCandidates.WithLabelValues(name).Observe(float64(len(candidates)))

	return candidates, nil
}
