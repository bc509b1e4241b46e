package interaction

import (
	"context"
	"errors"
	"fmt"

	"shopPicks/business/recommendation"
	"shopPicks/domain"
	"shopPicks/pkg/logger"
)

// InteractionRepository contract interface
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	FindByUser(ctx context.Context, userID uint) ([]domain.Interaction, error)
	FindByProduct(ctx context.Context, productID uint64) ([]domain.Interaction, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type interactionService struct {
	interactionRepo InteractionRepository
	productRepo     ProductRepository
}

func NewInteractionService(interactionRepo InteractionRepository, productRepo ProductRepository) *interactionService {
	return &interactionService{
		interactionRepo: interactionRepo,
		productRepo:     productRepo,
	}
}

// Record validates and stores one interaction.
func (s *interactionService) Record(ctx context.Context, interaction *domain.Interaction) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when recording interaction")
		return fmt.Errorf("context error: %w", err)
	}

	if !domain.IsValidInteractionType(interaction.Type) {
		return errors.New("invalid interaction type")
	}
	if interaction.Type == domain.InteractionRating {
		rating := interaction.RatingValue()
		if rating < 1 || rating > 5 {
			return errors.New("rating must be between 1 and 5")
		}
	}

	if _, err := s.productRepo.FindByID(ctx, interaction.ProductID); err != nil {
		return err
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		logger.Error("Failed to create interaction", "error", err)
		return err
	}

	return nil
}

func (s *interactionService) ListByUser(ctx context.Context, userID uint) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	interactions, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find interactions by user", "error", err)
		return nil, err
	}

	return interactions, nil
}

func (s *interactionService) ListByProduct(ctx context.Context, productID uint64) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	interactions, err := s.interactionRepo.FindByProduct(ctx, productID)
	if err != nil {
		logger.Error("Failed to find interactions by product", "error", err)
		return nil, err
	}

	return interactions, nil
}

// Summary is the per-user reporting aggregate. It uses the analytics score
// scale, which is independent from the ranking affinity weights.
type Summary struct {
	UserID         uint           `json:"user_id"`
	Total          int            `json:"total"`
	ByType         map[string]int `json:"by_type"`
	AnalyticsScore float64        `json:"analytics_score"`
}

func (s *interactionService) Summarize(ctx context.Context, userID uint) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("context error: %w", err)
	}

	interactions, err := s.interactionRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find interactions by user", "error", err)
		return Summary{}, err
	}

	summary := Summary{
		UserID: userID,
		Total:  len(interactions),
		ByType: make(map[string]int),
	}
	for _, i := range interactions {
		summary.ByType[i.Type]++
		summary.AnalyticsScore += recommendation.AnalyticsScore(i.Type)
	}

	return summary, nil
}
