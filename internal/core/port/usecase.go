package port

import (
	"context"
	"io"

	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
)

// Inbound ports. The HTTP adapter depends on these interfaces only; mock
// implementations back the handler and use case tests.

// Ad is the shown advertisement returned to a client.
type Ad struct {
	ID           uuid.UUID
	Title        string
	Text         string
	AdvertiserID uuid.UUID
}

// CampaignInput carries the writable campaign fields for create and update.
// Update replaces every field, matching the original full-body contract.
type CampaignInput struct {
	ImpressionsLimit  int64
	ClicksLimit       int64
	CostPerImpression float64
	CostPerClick      float64
	AdTitle           string
	AdText            string
	StartDay          int
	EndDay            int
	Targeting         domain.Targeting
}

// AdUseCase serves ads and records the resulting economics.
type AdUseCase interface {
	// ShowAd picks the single best eligible campaign for the client on the
	// current day and records the impression atomically with the choice.
	ShowAd(ctx context.Context, clientID uuid.UUID) (*Ad, error)
	// Click records a click on a previously shown ad. Repeating a click is
	// a defined success with no further effect.
	Click(ctx context.Context, clientID, adID uuid.UUID) error
}

// CampaignUseCase covers the advertiser-facing campaign lifecycle.
type CampaignUseCase interface {
	Create(ctx context.Context, advertiserID uuid.UUID, in CampaignInput) (*domain.Campaign, error)
	Read(ctx context.Context, campaignID, advertiserID uuid.UUID) (*domain.Campaign, error)
	Update(ctx context.Context, campaignID, advertiserID uuid.UUID, in CampaignInput) (*domain.Campaign, error)
	Delete(ctx context.Context, campaignID, advertiserID uuid.UUID) error
	List(ctx context.Context, advertiserID uuid.UUID, page, size *int) ([]domain.Campaign, error)
	AttachImage(ctx context.Context, campaignID, advertiserID uuid.UUID, file io.Reader, ext string, size int64) (string, error)
	GenerateText(ctx context.Context, advertiserID uuid.UUID, adTitle string) (string, error)
}

// StatUseCase produces the aggregate views over the event history.
type StatUseCase interface {
	CampaignStat(ctx context.Context, campaignID uuid.UUID) (domain.Stat, error)
	CampaignStatDaily(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStat, error)
	AdvertiserStat(ctx context.Context, advertiserID uuid.UUID) (domain.Stat, error)
	AdvertiserStatDaily(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStat, error)
	ServiceMetrics(ctx context.Context) (domain.ServiceMetrics, error)
}

// DayUseCase advances the virtual clock. Advance owns the monotonicity rule.
type DayUseCase interface {
	Advance(ctx context.Context, day int) (int, error)
}

// DirectoryUseCase manages clients, advertisers and relevance scores.
type DirectoryUseCase interface {
	UpsertClients(ctx context.Context, clients []domain.Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	UpsertAdvertisers(ctx context.Context, advertisers []domain.Advertiser) error
	GetAdvertiser(ctx context.Context, id uuid.UUID) (*domain.Advertiser, error)
	UpsertRelevance(ctx context.Context, rel domain.Relevance) error
}

// ModerationUseCase toggles the content-safety filter at runtime.
type ModerationUseCase interface {
	SetEnabled(ctx context.Context, enabled bool) error
}
