package domain

import (
	"time"
)

// Algorithms a recommendation can be attributed to.
const (
	AlgorithmCollaborative = "collaborative"
	AlgorithmContentBased  = "content-based"
	AlgorithmHybrid        = "hybrid"
	AlgorithmPopularity    = "popularity"
)

// CREATE TABLE public.recommendations (
//     id         UUID PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     product_id BIGINT NOT NULL,
//     score      NUMERIC NOT NULL,
//     algorithm  TEXT NOT NULL,
//     reason     TEXT,
//     created_at TIMESTAMPTZ DEFAULT NOW(),
//     expires_at TIMESTAMPTZ NOT NULL
// );

type Recommendation struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Score     float64   `gorm:"column:score;type:numeric;not null" json:"score"`
	Algorithm string    `gorm:"column:algorithm;type:text;not null" json:"algorithm"`
	Reason    string    `gorm:"column:reason;type:text" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// Expired reports whether the recommendation is past its freshness window.
func (r Recommendation) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
