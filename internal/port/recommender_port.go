package port

import "context"

// Recommendation is a ranked product identifier returned by the external
// scoring service. Product IDs are opaque strings: the service may rank
// products this catalog no longer carries.
type Recommendation struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

// TrainResult reports the outcome of a model training run.
type TrainResult struct {
	Message   string  `json:"message"`
	Accuracy  float64 `json:"accuracy_percent"`
	TargetMet bool    `json:"target_met"`
}

// Recommender is the boundary to the external recommendation service.
// The model itself is opaque; callers only see ranked product identifiers.
type Recommender interface {
	ForUser(ctx context.Context, userID string, limit int) ([]Recommendation, error)
	SimilarProducts(ctx context.Context, productID string, limit int) ([]Recommendation, error)
	Train(ctx context.Context) (TrainResult, error)
	Accuracy(ctx context.Context) (TrainResult, error)
}
