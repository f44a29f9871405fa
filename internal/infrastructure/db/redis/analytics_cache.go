package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/habitflow/habitflow-api/internal/api/metrics"
	"github.com/habitflow/habitflow-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// AnalyticsCache stores computed analytics reports per user.
// Key format: analytics:<user_id>
// Habit mutations invalidate the owner's entry; otherwise entries age out
// after cacheTTL.
type AnalyticsCache struct {
	client *redis.Client
}

// NewAnalyticsCache creates an AnalyticsCache wrapping the given Redis client.
func NewAnalyticsCache(client *redis.Client) *AnalyticsCache {
	return &AnalyticsCache{client: client}
}

// Get returns the cached report for userID, or (nil, nil) on a miss.
func (c *AnalyticsCache) Get(ctx context.Context, userID string) (*domain.AnalyticsReport, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.AnalyticsCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("analytics cache get: %w", err)
	}

	var report domain.AnalyticsReport
	if err := json.Unmarshal(raw, &report); err != nil {
		// Corrupt entry; drop it and recompute.
		_ = c.client.Del(ctx, c.key(userID)).Err()
		metrics.AnalyticsCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.AnalyticsCacheTotal.WithLabelValues("hit").Inc()
	return &report, nil
}

// Set stores the report for userID with the package TTL.
func (c *AnalyticsCache) Set(ctx context.Context, userID string, report *domain.AnalyticsReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("analytics cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), raw, cacheTTL).Err()
}

// Invalidate removes the cached report for userID.
func (c *AnalyticsCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *AnalyticsCache) key(userID string) string {
	return fmt.Sprintf("analytics:%s", userID)
}
