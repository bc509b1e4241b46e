package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopPicks/domain"
	"shopPicks/pkg/logger"
)

// caps on the preference list sizes
const (
	maxCategories = 20
	maxBrands     = 20
)

// PreferenceRepository contract interface
type PreferenceRepository interface {
	FindByUser(ctx context.Context, userID uint) (domain.Preference, bool, error)
	Upsert(ctx context.Context, pref *domain.Preference) error
}

type preferenceService struct {
	preferenceRepo PreferenceRepository
}

func NewPreferenceService(preferenceRepo PreferenceRepository) *preferenceService {
	return &preferenceService{
		preferenceRepo: preferenceRepo,
	}
}

// Get returns the user's stored preference, or the wide-open default for a
// user who never stored one.
func (s *preferenceService) Get(ctx context.Context, userID uint) (domain.Preference, error) {
	if err := ctx.Err(); err != nil {
		return domain.Preference{}, fmt.Errorf("context error: %w", err)
	}

	pref, found, err := s.preferenceRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find preference", "error", err)
		return domain.Preference{}, err
	}
	if !found {
		return domain.DefaultPreference(userID), nil
	}

	return pref, nil
}

// Patch applies a partial update field by field. Each present field is
// validated before anything is written; absent fields stay untouched. The
// stored row is only replaced when the patch actually changes something.
func (s *preferenceService) Patch(ctx context.Context, userID uint, patch domain.PreferencePatch) (domain.Preference, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Preference{}, false, fmt.Errorf("context error: %w", err)
	}

	if err := validatePatch(patch); err != nil {
		return domain.Preference{}, false, err
	}

	current, found, err := s.preferenceRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find preference", "error", err)
		return domain.Preference{}, false, err
	}
	if !found {
		current = domain.DefaultPreference(userID)
	}

	updated, changed := current.Apply(patch)
	if !changed {
		return current, false, nil
	}

	if updated.PriceMin > updated.PriceMax {
		return domain.Preference{}, false, errors.New("price min must not exceed price max")
	}

	updated.UpdatedAt = time.Now()
	if err := s.preferenceRepo.Upsert(ctx, &updated); err != nil {
		logger.Error("Failed to upsert preference", "error", err)
		return domain.Preference{}, false, err
	}

	return updated, true, nil
}

func validatePatch(patch domain.PreferencePatch) error {
	if patch.Categories != nil {
		if len(*patch.Categories) > maxCategories {
			return fmt.Errorf("too many categories, max %d", maxCategories)
		}
		for _, c := range *patch.Categories {
			if c == "" {
				return errors.New("category must not be empty")
			}
		}
	}
	if patch.Brands != nil {
		if len(*patch.Brands) > maxBrands {
			return fmt.Errorf("too many brands, max %d", maxBrands)
		}
		for _, b := range *patch.Brands {
			if b == "" {
				return errors.New("brand must not be empty")
			}
		}
	}
	if patch.PriceMin != nil && *patch.PriceMin < 0 {
		return errors.New("price min cannot be negative")
	}
	if patch.PriceMax != nil && *patch.PriceMax < 0 {
		return errors.New("price max cannot be negative")
	}

	return nil
}
