package postgres

import (
	"context"
	"errors"
	"fmt"
	"shopPicks/domain"
	"time"

	"shopPicks/business/recommendation"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

// Compile-time check that the struct implements the engine's contract.
var _ recommendation.RecommendationRepository = (*RecommendationRepository)(nil)

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

// FindActiveByUser returns the user's unexpired recommendations ordered by
// score DESC.
func (r *RecommendationRepository) FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var recs []domain.Recommendation
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("score DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active recommendations: %w", err)
	}

	return recs, nil
}

// FindActiveByUserAndProduct returns the unexpired recommendation for one
// (user, product) pair. The bool is false when none exists.
func (r *RecommendationRepository) FindActiveByUserAndProduct(ctx context.Context, userID uint, productID uint64, now time.Time) (domain.Recommendation, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, false, fmt.Errorf("context error: %w", err)
	}

	var rec domain.Recommendation
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND expires_at > ?", userID, productID, now).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recommendation{}, false, nil
		}
		return domain.Recommendation{}, false, fmt.Errorf("failed to find recommendation: %w", err)
	}

	return rec, true, nil
}

// CreateBatch bulk-inserts a generation cycle's recommendations.
func (r *RecommendationRepository) CreateBatch(ctx context.Context, recs []domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(recs) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&recs).Error; err != nil {
		return fmt.Errorf("failed to insert recommendations: %w", err)
	}

	return nil
}

// ReplaceForUser swaps out all of a user's recommendations in a single
// transaction, so a failure mid-refresh never leaves the user with zero rows.
func (r *RecommendationRepository) ReplaceForUser(ctx context.Context, userID uint, recs []domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Recommendation{}).Error; err != nil {
			return fmt.Errorf("failed to delete recommendations: %w", err)
		}
		if len(recs) == 0 {
			return nil
		}
		if err := tx.Create(&recs).Error; err != nil {
			return fmt.Errorf("failed to insert recommendations: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace recommendations: %w", err)
	}

	return nil
}

// DeleteByUser removes every recommendation row for the user.
func (r *RecommendationRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Recommendation{}).Error; err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}

	return nil
}

// FindUserIDsWithExpired lists distinct users holding at least one expired row.
func (r *RecommendationRepository) FindUserIDsWithExpired(ctx context.Context, now time.Time) ([]uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var userIDs []uint
	err := r.DB.WithContext(ctx).
		Model(&domain.Recommendation{}).
		Where("expires_at <= ?", now).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users with expired recommendations: %w", err)
	}

	return userIDs, nil
}
