package port

import (
	"context"

	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/selection"
)

// Outbound persistence ports. Getters return (nil, nil) when the entity is
// absent; mapping absence to the error taxonomy is the use case's job.
// Implementations must be safe for concurrent use.

// ClientRepository stores clients with replace-on-conflict upsert semantics.
type ClientRepository interface {
	Upsert(ctx context.Context, clients []domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
}

// AdvertiserRepository stores advertisers, same upsert semantics as clients.
type AdvertiserRepository interface {
	Upsert(ctx context.Context, advertisers []domain.Advertiser) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Advertiser, error)
}

// RelevanceRepository stores (client, advertiser) affinity scores.
type RelevanceRepository interface {
	Upsert(ctx context.Context, rel domain.Relevance) error
}

// CampaignRepository stores campaigns. Soft deletion means two read modes:
// GetLive hides deleted campaigns, GetAny does not. List is live-only.
type CampaignRepository interface {
	Create(ctx context.Context, c domain.Campaign) error
	Update(ctx context.Context, c domain.Campaign) error
	GetLive(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	GetAny(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	List(ctx context.Context, advertiserID uuid.UUID, limit, offset *int) ([]domain.Campaign, error)
	MarkDeleted(ctx context.Context, id uuid.UUID) error
	SetImagePath(ctx context.Context, id uuid.UUID, path string) error
}

// AdRepository is the event side of ad serving: the candidate pool for one
// client plus the append-only impression/click facts.
//
// The (client_id, campaign_id) unique constraints in storage are the sole
// correctness backstop under concurrent requests, with two deliberately
// different conflict policies:
//   - CreateImpression surfaces a conflict as domain.ErrImpressionExists;
//   - CreateClick translates a conflict to success, so a racing duplicate
//     click reports the same outcome as if it had seen the winner's row.
type AdRepository interface {
	ListCandidates(ctx context.Context, clientID uuid.UUID) ([]selection.Candidate, error)
	CreateImpression(ctx context.Context, imp domain.Impression) error
	GetImpression(ctx context.Context, clientID, campaignID uuid.UUID) (*domain.Impression, error)
	GetClick(ctx context.Context, clientID, campaignID uuid.UUID) (*domain.Click, error)
	CreateClick(ctx context.Context, click domain.Click) error
}

// StatsRepository derives aggregates from the event history. CampaignStat
// and AdvertiserStat return a zero Stat (not an error) for subjects without
// any activity; existence checks live in the use case.
type StatsRepository interface {
	CampaignStat(ctx context.Context, campaignID uuid.UUID) (domain.Stat, error)
	CampaignStatDaily(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStat, error)
	AdvertiserStat(ctx context.Context, advertiserID uuid.UUID) (domain.Stat, error)
	AdvertiserStatDaily(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStat, error)
	ServiceMetrics(ctx context.Context) (domain.ServiceMetrics, error)
}
