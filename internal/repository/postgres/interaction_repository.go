package postgres

import (
	"context"
	"fmt"
	"shopPicks/domain"

	"shopPicks/business/recommendation"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

// Compile-time check that the struct implements the engine's contract.
var _ recommendation.InteractionRepository = (*InteractionRepository)(nil)

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

// FindByUser returns the user's interactions, newest first.
func (r *InteractionRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.Interaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions by user: %w", err)
	}

	return interactions, nil
}

// FindByProduct returns all interactions on a product, newest first.
func (r *InteractionRepository) FindByProduct(ctx context.Context, productID uint64) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.Interaction
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions by product: %w", err)
	}

	return interactions, nil
}

// CountByProduct aggregates interaction counts per product, excluding the
// given user's own interactions. Feeds the popularity scorer.
func (r *InteractionRepository) CountByProduct(ctx context.Context, excludeUserID uint) ([]recommendation.ProductInteractionCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var counts []recommendation.ProductInteractionCount
	err := r.DB.WithContext(ctx).
		Model(&domain.Interaction{}).
		Select("product_id, COUNT(*) AS count").
		Where("user_id <> ?", excludeUserID).
		Group("product_id").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions by product: %w", err)
	}

	return counts, nil
}
