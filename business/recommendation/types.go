package recommendation

// Confidence bands derived from a numeric score, for display purposes.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// PriceRange is the profile's acceptable price window.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserProfile is the transient scoring profile derived from stored
// preferences plus positive interaction history. Built fresh on every
// scoring pass, never persisted or cached.
type UserProfile struct {
	UserID                   uint
	CategoryWeights          map[string]float64
	BrandWeights             map[string]float64
	PricePreference          PriceRange
	PositiveInteractionCount int
}

// SimilarUser pairs a user id with its similarity to the target user.
// Valid only for the collaborative pass that produced it.
type SimilarUser struct {
	UserID     uint
	Similarity float64
	// number of products both users interacted with
	SharedProducts int
}

// CandidateScore is one scorer's verdict on a product.
type CandidateScore struct {
	ProductID  uint64  `json:"product_id"`
	Score      float64 `json:"score"`
	Algorithm  string  `json:"algorithm"`
	Reason     string  `json:"reason"`
	Confidence string  `json:"confidence"`
}

// ProductInteractionCount is the per-product interaction aggregate feeding
// the popularity scorer.
type ProductInteractionCount struct {
	ProductID uint64 `gorm:"column:product_id"`
	Count     int64  `gorm:"column:count"`
}

// Stats summarizes a user's active recommendations.
type Stats struct {
	Count        int            `json:"count"`
	AverageScore float64        `json:"average_score"`
	ByAlgorithm  map[string]int `json:"by_algorithm"`
}
