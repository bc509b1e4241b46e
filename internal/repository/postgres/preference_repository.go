package postgres

import (
	"context"
	"errors"
	"fmt"
	"shopPicks/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{
		DB: db,
	}
}

// FindByUser returns the user's stored preference. The bool is false when
// the user never stored one; that is not an error.
func (r *PreferenceRepository) FindByUser(ctx context.Context, userID uint) (domain.Preference, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Preference{}, false, fmt.Errorf("context error: %w", err)
	}

	var pref domain.Preference
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Preference{}, false, nil
		}
		return domain.Preference{}, false, fmt.Errorf("failed to find preference: %w", err)
	}

	return pref, true, nil
}

// Upsert replaces the stored preference for pref.UserID.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *domain.Preference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"categories", "brands", "price_min", "price_max", "updated_at",
			}),
		}).
		Create(pref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}

	return nil
}
