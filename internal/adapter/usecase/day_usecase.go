package usecase

import (
	"context"
	"log/slog"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
)

// DayService advances the virtual clock. The store accepts any value, so
// this use case is the single owner of the monotonicity rule.
type DayService struct {
	days   port.DayStore
	logger *slog.Logger
}

// NewDayService creates the service.
func NewDayService(days port.DayStore, logger *slog.Logger) *DayService {
	return &DayService{days: days, logger: logger}
}

// Advance moves the current day to day. Moving backwards is a business-rule
// violation; setting the same day again is allowed.
func (s *DayService) Advance(ctx context.Context, day int) (int, error) {
	current, err := s.days.Current(ctx)
	if err != nil {
		return 0, err
	}
	if day < current {
		return 0, domain.ErrDayInPast
	}
	if err = s.days.Set(ctx, day); err != nil {
		return 0, err
	}
	s.logger.Info("virtual day advanced", slog.Int("day", day))
	return day, nil
}
