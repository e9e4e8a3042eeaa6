package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/selection"
)

// Hand-written testify mocks for the outbound ports used by these tests.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Upsert(ctx context.Context, clients []domain.Client) error {
	return m.Called(ctx, clients).Error(0)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*domain.Client)
	return client, args.Error(1)
}

type mockAdvertiserRepo struct{ mock.Mock }

func (m *mockAdvertiserRepo) Upsert(ctx context.Context, advertisers []domain.Advertiser) error {
	return m.Called(ctx, advertisers).Error(0)
}

func (m *mockAdvertiserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Advertiser, error) {
	args := m.Called(ctx, id)
	adv, _ := args.Get(0).(*domain.Advertiser)
	return adv, args.Error(1)
}

type mockRelevanceRepo struct{ mock.Mock }

func (m *mockRelevanceRepo) Upsert(ctx context.Context, rel domain.Relevance) error {
	return m.Called(ctx, rel).Error(0)
}

type mockCampaignRepo struct{ mock.Mock }

func (m *mockCampaignRepo) Create(ctx context.Context, c domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignRepo) Update(ctx context.Context, c domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignRepo) GetLive(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignRepo) GetAny(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignRepo) List(ctx context.Context, advertiserID uuid.UUID, limit, offset *int) ([]domain.Campaign, error) {
	args := m.Called(ctx, advertiserID, limit, offset)
	list, _ := args.Get(0).([]domain.Campaign)
	return list, args.Error(1)
}

func (m *mockCampaignRepo) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCampaignRepo) SetImagePath(ctx context.Context, id uuid.UUID, path string) error {
	return m.Called(ctx, id, path).Error(0)
}

type mockAdRepo struct{ mock.Mock }

func (m *mockAdRepo) ListCandidates(ctx context.Context, clientID uuid.UUID) ([]selection.Candidate, error) {
	args := m.Called(ctx, clientID)
	pool, _ := args.Get(0).([]selection.Candidate)
	return pool, args.Error(1)
}

func (m *mockAdRepo) CreateImpression(ctx context.Context, imp domain.Impression) error {
	return m.Called(ctx, imp).Error(0)
}

func (m *mockAdRepo) GetImpression(ctx context.Context, clientID, campaignID uuid.UUID) (*domain.Impression, error) {
	args := m.Called(ctx, clientID, campaignID)
	imp, _ := args.Get(0).(*domain.Impression)
	return imp, args.Error(1)
}

func (m *mockAdRepo) GetClick(ctx context.Context, clientID, campaignID uuid.UUID) (*domain.Click, error) {
	args := m.Called(ctx, clientID, campaignID)
	click, _ := args.Get(0).(*domain.Click)
	return click, args.Error(1)
}

func (m *mockAdRepo) CreateClick(ctx context.Context, click domain.Click) error {
	return m.Called(ctx, click).Error(0)
}

type mockStatsRepo struct{ mock.Mock }

func (m *mockStatsRepo) CampaignStat(ctx context.Context, campaignID uuid.UUID) (domain.Stat, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(domain.Stat), args.Error(1)
}

func (m *mockStatsRepo) CampaignStatDaily(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStat, error) {
	args := m.Called(ctx, campaignID)
	daily, _ := args.Get(0).([]domain.DailyStat)
	return daily, args.Error(1)
}

func (m *mockStatsRepo) AdvertiserStat(ctx context.Context, advertiserID uuid.UUID) (domain.Stat, error) {
	args := m.Called(ctx, advertiserID)
	return args.Get(0).(domain.Stat), args.Error(1)
}

func (m *mockStatsRepo) AdvertiserStatDaily(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStat, error) {
	args := m.Called(ctx, advertiserID)
	daily, _ := args.Get(0).([]domain.DailyStat)
	return daily, args.Error(1)
}

func (m *mockStatsRepo) ServiceMetrics(ctx context.Context) (domain.ServiceMetrics, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ServiceMetrics), args.Error(1)
}

type mockDayStore struct{ mock.Mock }

func (m *mockDayStore) Current(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockDayStore) Set(ctx context.Context, day int) error {
	return m.Called(ctx, day).Error(0)
}

type mockMetricsCache struct{ mock.Mock }

func (m *mockMetricsCache) Get(ctx context.Context) (*domain.ServiceMetrics, error) {
	args := m.Called(ctx)
	metrics, _ := args.Get(0).(*domain.ServiceMetrics)
	return metrics, args.Error(1)
}

func (m *mockMetricsCache) Put(ctx context.Context, metrics domain.ServiceMetrics) error {
	return m.Called(ctx, metrics).Error(0)
}

type mockModeration struct{ mock.Mock }

func (m *mockModeration) ContainsDisallowed(ctx context.Context, text string) (bool, error) {
	args := m.Called(ctx, text)
	return args.Bool(0), args.Error(1)
}

func (m *mockModeration) SetEnabled(ctx context.Context, enabled bool) error {
	return m.Called(ctx, enabled).Error(0)
}

type mockFileStore struct{ mock.Mock }

func (m *mockFileStore) Store(ctx context.Context, r io.Reader, ext string, size int64) (string, error) {
	args := m.Called(ctx, r, ext, size)
	return args.String(0), args.Error(1)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, advertiserName, adTitle string) (string, error) {
	args := m.Called(ctx, advertiserName, adTitle)
	return args.String(0), args.Error(1)
}
