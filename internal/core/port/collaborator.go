package port

import (
	"context"
	"io"

	"prism-ads/internal/core/domain"
)

// DayStore holds the single virtual-day scalar. Current defaults to 0 when
// the day was never set. Set accepts any value: monotonicity is enforced by
// the day-advance use case, not here.
type DayStore interface {
	Current(ctx context.Context) (int, error)
	Set(ctx context.Context, day int) error
}

// MetricsCache is the single time-boxed cell in front of the service-wide
// aggregate. Get returns (nil, nil) on a miss or after expiry. Concurrent
// misses may each recompute; that staleness trade-off is accepted.
type MetricsCache interface {
	Get(ctx context.Context) (*domain.ServiceMetrics, error)
	Put(ctx context.Context, m domain.ServiceMetrics) error
}

// ModerationFilter is the content-safety collaborator. A filter failure is a
// dependency error and is propagated, never retried.
type ModerationFilter interface {
	ContainsDisallowed(ctx context.Context, text string) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
}

// AdTextGenerator produces ad copy from the advertiser name and ad title.
type AdTextGenerator interface {
	Generate(ctx context.Context, advertiserName, adTitle string) (string, error)
}

// FileStore persists uploaded campaign images and returns a stable reference.
type FileStore interface {
	Store(ctx context.Context, r io.Reader, ext string, size int64) (string, error)
}
