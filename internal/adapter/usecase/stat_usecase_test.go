package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prism-ads/internal/core/domain"
)

type statFixture struct {
	campaigns   *mockCampaignRepo
	advertisers *mockAdvertiserRepo
	stats       *mockStatsRepo
	cache       *mockMetricsCache
	svc         *StatService
}

func newStatFixture(t *testing.T) *statFixture {
	t.Helper()
	f := &statFixture{
		campaigns:   &mockCampaignRepo{},
		advertisers: &mockAdvertiserRepo{},
		stats:       &mockStatsRepo{},
		cache:       &mockMetricsCache{},
	}
	f.svc = NewStatService(f.campaigns, f.advertisers, f.stats, f.cache, discardLogger())
	t.Cleanup(func() {
		f.campaigns.AssertExpectations(t)
		f.advertisers.AssertExpectations(t)
		f.stats.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})
	return f
}

func TestCampaignStat(t *testing.T) {
	f := newStatFixture(t)
	campaign := domain.Campaign{ID: uuid.New()}
	want := domain.Stat{
		ImpressionsCount: 5,
		ClicksCount:      3,
		Conversion:       60,
		SpentImpressions: 10,
		SpentClicks:      3,
		SpentTotal:       13,
	}

	f.campaigns.On("GetLive", mock.Anything, campaign.ID).Return(&campaign, nil)
	f.stats.On("CampaignStat", mock.Anything, campaign.ID).Return(want, nil)

	got, err := f.svc.CampaignStat(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCampaignStatDeletedCampaign(t *testing.T) {
	f := newStatFixture(t)
	id := uuid.New()

	// GetLive filters soft-deleted campaigns, so a deleted one is NotFound here.
	f.campaigns.On("GetLive", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.CampaignStat(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestAdvertiserStatDaily(t *testing.T) {
	f := newStatFixture(t)
	adv := domain.Advertiser{ID: uuid.New(), Name: "Acme"}
	want := []domain.DailyStat{
		{Day: 1, Stat: domain.Stat{ImpressionsCount: 2, Conversion: 0, SpentImpressions: 4, SpentTotal: 4}},
		{Day: 2, Stat: domain.Stat{ImpressionsCount: 1, ClicksCount: 1, Conversion: 100, SpentImpressions: 2, SpentClicks: 3, SpentTotal: 5}},
	}

	f.advertisers.On("GetByID", mock.Anything, adv.ID).Return(&adv, nil)
	f.stats.On("AdvertiserStatDaily", mock.Anything, adv.ID).Return(want, nil)

	got, err := f.svc.AdvertiserStatDaily(context.Background(), adv.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdvertiserStatUnknownAdvertiser(t *testing.T) {
	f := newStatFixture(t)
	id := uuid.New()

	f.advertisers.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.AdvertiserStat(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrAdvertiserNotFound)
}

func TestServiceMetricsCacheHit(t *testing.T) {
	f := newStatFixture(t)
	cached := domain.ServiceMetrics{ImpressionsCount: 10, ClicksCount: 4}

	f.cache.On("Get", mock.Anything).Return(&cached, nil)

	got, err := f.svc.ServiceMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	f.stats.AssertNotCalled(t, "ServiceMetrics", mock.Anything)
}

func TestServiceMetricsCacheMiss(t *testing.T) {
	f := newStatFixture(t)
	fresh := domain.ServiceMetrics{ImpressionsCount: 10, ClicksCount: 4, IncomeTotal: 33.5}

	f.cache.On("Get", mock.Anything).Return(nil, nil)
	f.stats.On("ServiceMetrics", mock.Anything).Return(fresh, nil)
	f.cache.On("Put", mock.Anything, fresh).Return(nil)

	got, err := f.svc.ServiceMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestServiceMetricsCachePutFailureIsSwallowed(t *testing.T) {
	f := newStatFixture(t)
	fresh := domain.ServiceMetrics{ImpressionsCount: 1}

	f.cache.On("Get", mock.Anything).Return(nil, nil)
	f.stats.On("ServiceMetrics", mock.Anything).Return(fresh, nil)
	f.cache.On("Put", mock.Anything, fresh).Return(errors.New("redis down"))

	got, err := f.svc.ServiceMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}
