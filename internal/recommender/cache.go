package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachingRecommender caches ranked-list responses in Redis so repeated cart
// and product-page views do not hammer the scoring service. Train and
// Accuracy always pass through.
type CachingRecommender struct {
	next   port.Recommender
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCaching(next port.Recommender, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachingRecommender {
	return &CachingRecommender{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachingRecommender) ForUser(ctx context.Context, userID string, limit int) ([]port.Recommendation, error) {
	key := fmt.Sprintf("recs:user:%s:%d", userID, limit)
	return c.cached(ctx, key, func() ([]port.Recommendation, error) {
		return c.next.ForUser(ctx, userID, limit)
	})
}

func (c *CachingRecommender) SimilarProducts(ctx context.Context, productID string, limit int) ([]port.Recommendation, error) {
	key := fmt.Sprintf("recs:product:%s:%d", productID, limit)
	return c.cached(ctx, key, func() ([]port.Recommendation, error) {
		return c.next.SimilarProducts(ctx, productID, limit)
	})
}

func (c *CachingRecommender) Train(ctx context.Context) (port.TrainResult, error) {
	return c.next.Train(ctx)
}

func (c *CachingRecommender) Accuracy(ctx context.Context) (port.TrainResult, error) {
	return c.next.Accuracy(ctx)
}

func (c *CachingRecommender) cached(ctx context.Context, key string, fetch func() ([]port.Recommendation, error)) ([]port.Recommendation, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var recs []port.Recommendation
		if err := json.Unmarshal(raw, &recs); err == nil {
			return recs, nil
		}
		// Corrupt entry: fall through and refresh it.
	} else if err != redis.Nil {
		c.logger.Warn("recommendation cache read failed", zap.String("key", key), zap.Error(err))
	}

	recs, err := fetch()
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(recs)
	if err != nil {
		return recs, nil
	}
	if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("recommendation cache write failed", zap.String("key", key), zap.Error(err))
	}

	return recs, nil
}

var _ port.Recommender = (*CachingRecommender)(nil)
