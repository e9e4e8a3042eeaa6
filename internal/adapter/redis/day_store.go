// Package redisstore holds the Redis-backed adapters: the virtual-day
// scalar, the service metrics cache cell and the moderation verdict cache.
package redisstore

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const dayKey = "current_day"

// DayStore keeps the single monotonically advanced virtual day. The store
// itself accepts any value; ordering is enforced by the day-advance use
// case, which is the sole writer.
type DayStore struct {
	client *redis.Client
}

// NewDayStore returns a store bound to the given client.
func NewDayStore(client *redis.Client) *DayStore {
	return &DayStore{client: client}
}

// Current returns the stored day. A missing key initialises the clock to 0,
// like the first read of a fresh deployment.
func (s *DayStore) Current(ctx context.Context) (int, error) {
	res, err := s.client.Get(ctx, dayKey).Result()
	if errors.Is(err, redis.Nil) {
		if err = s.Set(ctx, 0); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(res)
}

// Set stores the day unconditionally.
func (s *DayStore) Set(ctx context.Context, day int) error {
	return s.client.Set(ctx, dayKey, strconv.Itoa(day), 0).Err()
}
