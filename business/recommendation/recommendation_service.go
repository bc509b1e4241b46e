package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopPicks/domain"
	"shopPicks/pkg/logger"
	"shopPicks/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrRefreshInProgress is returned when another refresh currently holds the
// per-user lock.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// ---- Repository interfaces ----

type InteractionRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.Interaction, error)
	FindByProduct(ctx context.Context, productID uint64) ([]domain.Interaction, error)
	CountByProduct(ctx context.Context, excludeUserID uint) ([]ProductInteractionCount, error)
}

type PreferenceRepository interface {
	FindByUser(ctx context.Context, userID uint) (domain.Preference, bool, error)
}

type ProductRepository interface {
	FindAvailable(ctx context.Context) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

type RecommendationRepository interface {
	FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]domain.Recommendation, error)
	FindActiveByUserAndProduct(ctx context.Context, userID uint, productID uint64, now time.Time) (domain.Recommendation, bool, error)
	CreateBatch(ctx context.Context, recs []domain.Recommendation) error
	ReplaceForUser(ctx context.Context, userID uint, recs []domain.Recommendation) error
	FindUserIDsWithExpired(ctx context.Context, now time.Time) ([]uint, error)
}

// RefreshLocker serializes refreshes per user. Two interleaved refreshes for
// the same user could otherwise leave duplicate or zero rows.
type RefreshLocker interface {
	Acquire(ctx context.Context, userID uint) (bool, error)
	Release(ctx context.Context, userID uint) error
}

// ---- Config ----

type Config struct {
	// freshness window for persisted recommendations
	TTL time.Duration
	// limit used when the caller does not supply one
	DefaultLimit int
	// bounded parallelism for RefreshExpired
	RefreshWorkers int
	// similar-user cap for the collaborative pass
	SimilarUserLimit int
}

const (
	defaultTTL              = 24 * time.Hour
	defaultLimit            = 10
	defaultRefreshWorkers   = 4
	defaultSimilarUserLimit = 10
)

func DefaultConfig() Config {
	return Config{
		TTL:              defaultTTL,
		DefaultLimit:     defaultLimit,
		RefreshWorkers:   defaultRefreshWorkers,
		SimilarUserLimit: defaultSimilarUserLimit,
	}
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = defaultTTL
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = defaultLimit
	}
	if c.RefreshWorkers <= 0 {
		c.RefreshWorkers = defaultRefreshWorkers
	}
	if c.SimilarUserLimit <= 0 {
		c.SimilarUserLimit = defaultSimilarUserLimit
	}
	return c
}

// ---- Usecase / Service ----

type RecommendationService struct {
	interactionRepo InteractionRepository
	preferenceRepo  PreferenceRepository
	productRepo     ProductRepository
	recoRepo        RecommendationRepository
	locker          RefreshLocker
	cfg             Config

	now func() time.Time
}

func NewRecommendationService(
	interactionRepo InteractionRepository,
	preferenceRepo PreferenceRepository,
	productRepo ProductRepository,
	recoRepo RecommendationRepository,
	locker RefreshLocker,
	cfg Config,
) *RecommendationService {
	if locker == nil {
		locker = NewLocalRefreshLocker()
	}
	return &RecommendationService{
		interactionRepo: interactionRepo,
		preferenceRepo:  preferenceRepo,
		productRepo:     productRepo,
		recoRepo:        recoRepo,
		locker:          locker,
		cfg:             cfg.withDefaults(),
		now:             time.Now,
	}
}

// Generate returns up to limit recommendations for the user. Unexpired
// persisted rows are reused as-is; only when none exist does the engine
// re-score and persist a fresh batch.
func (s *RecommendationService) Generate(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	now := s.now()

	existing, err := s.recoRepo.FindActiveByUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("load active recommendations: %w", err)
	}
	if len(existing) > 0 {
		metrics.CacheHitTotal.Inc()
		if len(existing) > limit {
			existing = existing[:limit]
		}
		return existing, nil
	}

	candidates, err := s.fuse(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	recs, err := s.toRecommendations(userID, candidates, now)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []domain.Recommendation{}, nil
	}

	if err := s.recoRepo.CreateBatch(ctx, recs); err != nil {
		return nil, fmt.Errorf("persist recommendations: %w", err)
	}
	metrics.GeneratedTotal.Add(float64(len(recs)))

	logger.Debug("reco_generate",
		"user_id", userID,
		"limit", limit,
		"generated", len(recs),
	)

	return recs, nil
}

// Refresh drops the user's recommendations and recomputes them at the
// default limit. Delete and insert run in one transaction, and refreshes
// for the same user are serialized through the locker.
func (s *RecommendationService) Refresh(ctx context.Context, userID uint) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	acquired, err := s.locker.Acquire(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("acquire refresh lock: %w", err)
	}
	if !acquired {
		return nil, ErrRefreshInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), userID); err != nil {
			logger.Warn("Failed to release refresh lock", "user_id", userID, "error", err)
		}
	}()

	candidates, err := s.fuse(ctx, userID, s.cfg.DefaultLimit)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	recs, err := s.toRecommendations(userID, candidates, s.now())
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := s.recoRepo.ReplaceForUser(ctx, userID, recs); err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("replace recommendations: %w", err)
	}

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	logger.Debug("reco_refresh", "user_id", userID, "generated", len(recs))

	return recs, nil
}

// RefreshExpired refreshes every user holding at least one expired row,
// through a bounded worker pool. Each user's refresh stays atomic. Returns
// the number of users refreshed.
func (s *RecommendationService) RefreshExpired(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	userIDs, err := s.recoRepo.FindUserIDsWithExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("find users with expired recommendations: %w", err)
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RefreshWorkers)

	for _, userID := range userIDs {
		g.Go(func() error {
			if _, err := s.Refresh(gctx, userID); err != nil {
				if errors.Is(err, ErrRefreshInProgress) {
					logger.Warn("Skipping refresh, already in progress", "user_id", userID)
					return nil
				}
				return fmt.Errorf("refresh user %d: %w", userID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	logger.Info("Refreshed expired recommendations", "users", len(userIDs))

	return len(userIDs), nil
}

// ScoreFor returns the persisted unexpired score for the pair, or 0 when
// none exists. Absence is not an error.
func (s *RecommendationService) ScoreFor(ctx context.Context, userID uint, productID uint64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	rec, found, err := s.recoRepo.FindActiveByUserAndProduct(ctx, userID, productID, s.now())
	if err != nil {
		return 0, fmt.Errorf("load recommendation score: %w", err)
	}
	if !found {
		return 0, nil
	}

	return rec.Score, nil
}

// Stats aggregates the user's unexpired recommendations.
func (s *RecommendationService) Stats(ctx context.Context, userID uint) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, fmt.Errorf("context error: %w", err)
	}

	recs, err := s.recoRepo.FindActiveByUser(ctx, userID, s.now())
	if err != nil {
		return Stats{}, fmt.Errorf("load active recommendations: %w", err)
	}

	stats := Stats{
		Count:       len(recs),
		ByAlgorithm: make(map[string]int),
	}

	total := 0.0
	for _, rec := range recs {
		total += rec.Score
		stats.ByAlgorithm[rec.Algorithm]++
	}
	if len(recs) > 0 {
		stats.AverageScore = total / float64(len(recs))
	}

	return stats, nil
}

// toRecommendations converts fused candidates into persistable rows,
// rejecting anything that violates the score or expiry invariants before it
// reaches the store.
func (s *RecommendationService) toRecommendations(userID uint, candidates []CandidateScore, now time.Time) ([]domain.Recommendation, error) {
	expiresAt := now.Add(s.cfg.TTL)

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if c.Score < 0 || c.Score > 1 {
			return nil, fmt.Errorf("invalid recommendation score %.4f for product %d", c.Score, c.ProductID)
		}
		if !expiresAt.After(now) {
			return nil, fmt.Errorf("invalid expiry window for product %d", c.ProductID)
		}

		recs = append(recs, domain.Recommendation{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: c.ProductID,
			Score:     c.Score,
			Algorithm: c.Algorithm,
			Reason:    c.Reason,
			CreatedAt: now,
			ExpiresAt: expiresAt,
		})
	}

	return recs, nil
}
