package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.user_preferences (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL UNIQUE,
//     categories JSONB,
//     brands     JSONB,
//     price_min  NUMERIC DEFAULT 0,
//     price_max  NUMERIC DEFAULT 10000,
//     updated_at TIMESTAMPTZ DEFAULT NOW()
// );

type Preference struct {
	ID         uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint                        `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Categories datatypes.JSONSlice[string] `gorm:"column:categories" json:"categories"`
	Brands     datatypes.JSONSlice[string] `gorm:"column:brands" json:"brands"`
	PriceMin   float64                     `gorm:"column:price_min;type:numeric;default:0" json:"price_min"`
	PriceMax   float64                     `gorm:"column:price_max;type:numeric;default:10000" json:"price_max"`
	UpdatedAt  time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (Preference) TableName() string {
	return "user_preferences"
}

// DefaultPreference is the wide-open preference used for users who never
// stored one. Scoring degrades gracefully instead of failing.
func DefaultPreference(userID uint) Preference {
	return Preference{
		UserID:   userID,
		PriceMin: 0,
		PriceMax: 10000,
	}
}

// PreferencePatch is a partial preference update. Nil fields are left
// untouched; present fields are applied one by one after validation.
type PreferencePatch struct {
	Categories *[]string `json:"categories,omitempty"`
	Brands     *[]string `json:"brands,omitempty"`
	PriceMin   *float64  `json:"price_min,omitempty"`
	PriceMax   *float64  `json:"price_max,omitempty"`
}

// Apply returns a new Preference with the patch applied, plus a flag
// telling whether anything actually changed. The receiver is not mutated.
func (p Preference) Apply(patch PreferencePatch) (Preference, bool) {
	out := p
	changed := false

	if patch.Categories != nil && !equalStrings(p.Categories, *patch.Categories) {
		out.Categories = datatypes.NewJSONSlice(*patch.Categories)
		changed = true
	}
	if patch.Brands != nil && !equalStrings(p.Brands, *patch.Brands) {
		out.Brands = datatypes.NewJSONSlice(*patch.Brands)
		changed = true
	}
	if patch.PriceMin != nil && *patch.PriceMin != p.PriceMin {
		out.PriceMin = *patch.PriceMin
		changed = true
	}
	if patch.PriceMax != nil && *patch.PriceMax != p.PriceMax {
		out.PriceMax = *patch.PriceMax
		changed = true
	}

	return out, changed
}

func equalStrings(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
