package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
)

// StatService produces the aggregate views over the event history. Subjects
// must exist (campaigns: exist and not be deleted) or the query fails with
// NotFound; an existing but inactive subject yields an all-zero stat.
type StatService struct {
	campaigns   port.CampaignRepository
	advertisers port.AdvertiserRepository
	stats       port.StatsRepository
	cache       port.MetricsCache
	logger      *slog.Logger
}

// NewStatService creates the service with its collaborators.
func NewStatService(
	campaigns port.CampaignRepository,
	advertisers port.AdvertiserRepository,
	stats port.StatsRepository,
	cache port.MetricsCache,
	logger *slog.Logger,
) *StatService {
	return &StatService{
		campaigns:   campaigns,
		advertisers: advertisers,
		stats:       stats,
		cache:       cache,
		logger:      logger,
	}
}

func (s *StatService) requireCampaign(ctx context.Context, id uuid.UUID) error {
	campaign, err := s.campaigns.GetLive(ctx, id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (s *StatService) requireAdvertiser(ctx context.Context, id uuid.UUID) error {
	adv, err := s.advertisers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if adv == nil {
		return domain.ErrAdvertiserNotFound
	}
	return nil
}

// CampaignStat aggregates one campaign's history.
func (s *StatService) CampaignStat(ctx context.Context, campaignID uuid.UUID) (domain.Stat, error) {
	if err := s.requireCampaign(ctx, campaignID); err != nil {
		return domain.Stat{}, err
	}
	return s.stats.CampaignStat(ctx, campaignID)
}

// CampaignStatDaily buckets one campaign's history by virtual day.
func (s *StatService) CampaignStatDaily(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStat, error) {
	if err := s.requireCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.stats.CampaignStatDaily(ctx, campaignID)
}

// AdvertiserStat aggregates across every campaign the advertiser ever
// owned, soft-deleted ones included.
func (s *StatService) AdvertiserStat(ctx context.Context, advertiserID uuid.UUID) (domain.Stat, error) {
	if err := s.requireAdvertiser(ctx, advertiserID); err != nil {
		return domain.Stat{}, err
	}
	return s.stats.AdvertiserStat(ctx, advertiserID)
}

// AdvertiserStatDaily buckets the advertiser's history by virtual day.
func (s *StatService) AdvertiserStatDaily(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStat, error) {
	if err := s.requireAdvertiser(ctx, advertiserID); err != nil {
		return nil, err
	}
	return s.stats.AdvertiserStatDaily(ctx, advertiserID)
}

// ServiceMetrics serves the service-wide aggregate through the time-boxed
// cache. A cache write failure is logged and swallowed: the fresh value is
// still correct, only the memoization is lost.
func (s *StatService) ServiceMetrics(ctx context.Context) (domain.ServiceMetrics, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		return domain.ServiceMetrics{}, err
	}
	if cached != nil {
		s.logger.Debug("service metrics served from cache")
		return *cached, nil
	}

	metrics, err := s.stats.ServiceMetrics(ctx)
	if err != nil {
		return domain.ServiceMetrics{}, err
	}
	if err = s.cache.Put(ctx, metrics); err != nil {
		s.logger.Warn("failed to cache service metrics", slog.Any("error", err))
	}
	return metrics, nil
}
