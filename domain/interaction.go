package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Interaction types a user can have with a product.
const (
	InteractionView     = "view"
	InteractionLike     = "like"
	InteractionDislike  = "dislike"
	InteractionFavorite = "favorite"
	InteractionRating   = "rating"
	InteractionPurchase = "purchase"
)

// CREATE TABLE public.interactions (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     product_id BIGINT NOT NULL,
//     type       TEXT NOT NULL,
//     metadata   JSONB,
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );

type Interaction struct {
	ID        uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID uint64            `gorm:"column:product_id;not null;index" json:"product_id"`
	Type      string            `gorm:"column:type;type:text;not null" json:"type"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// RatingValue reads the numeric rating out of metadata for rating
// interactions. Returns 0 when absent or not a number.
func (i Interaction) RatingValue() float64 {
	if i.Metadata == nil {
		return 0
	}
	v, ok := i.Metadata["rating"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// IsValidInteractionType reports whether t is one of the supported
// interaction types.
func IsValidInteractionType(t string) bool {
	switch t {
	case InteractionView, InteractionLike, InteractionDislike,
		InteractionFavorite, InteractionRating, InteractionPurchase:
		return true
	}
	return false
}
