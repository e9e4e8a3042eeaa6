package redisstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	verdictsKey = "moderation:verdicts"
	enabledKey  = "moderation:enabled"
)

// VerdictStore caches moderation verdicts per exact text and holds the
// runtime on/off switch of the filter. Verdicts never expire: the same text
// always gets the same answer without another model call.
type VerdictStore struct {
	client *redis.Client
}

// NewVerdictStore returns a store bound to the given client.
func NewVerdictStore(client *redis.Client) *VerdictStore {
	return &VerdictStore{client: client}
}

// Verdict returns the cached verdict for the text; ok is false on a miss.
func (s *VerdictStore) Verdict(ctx context.Context, text string) (verdict, ok bool, err error) {
	res, err := s.client.HGet(ctx, verdictsKey, text).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return res == "1", true, nil
}

// SaveVerdict caches a verdict for the text.
func (s *VerdictStore) SaveVerdict(ctx context.Context, text string, verdict bool) error {
	val := "0"
	if verdict {
		val = "1"
	}
	return s.client.HSet(ctx, verdictsKey, text, val).Err()
}

// Enabled reports the runtime switch; ok is false when it was never toggled
// and the configured default applies.
func (s *VerdictStore) Enabled(ctx context.Context) (enabled, ok bool, err error) {
	res, err := s.client.Get(ctx, enabledKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return res == "1", true, nil
}

// SetEnabled flips the runtime switch.
func (s *VerdictStore) SetEnabled(ctx context.Context, enabled bool) error {
	val := "0"
	if enabled {
		val = "1"
	}
	return s.client.Set(ctx, enabledKey, val, 0).Err()
}
