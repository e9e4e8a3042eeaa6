package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"prism-ads/internal/core/domain"
)

const (
	metricsKey = "service_metrics"

	// metricsTTL bounds staleness of the service-wide aggregate. Within
	// the window every read returns the identical cached value.
	metricsTTL = 5 * time.Second
)

// MetricsCache is the single time-boxed cell in front of the service-wide
// aggregate. It is best-effort memoization: concurrent misses may each
// recompute and overwrite, there is no single-flight lock.
type MetricsCache struct {
	client *redis.Client
}

// NewMetricsCache returns a cache bound to the given client.
func NewMetricsCache(client *redis.Client) *MetricsCache {
	return &MetricsCache{client: client}
}

// Get returns the cached value, or (nil, nil) on miss or after expiry.
func (c *MetricsCache) Get(ctx context.Context) (*domain.ServiceMetrics, error) {
	raw, err := c.client.Get(ctx, metricsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m domain.ServiceMetrics
	if err = json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Put stores a freshly computed value with the cache TTL.
func (c *MetricsCache) Put(ctx context.Context, m domain.ServiceMetrics) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, metricsKey, raw, metricsTTL).Err()
}
