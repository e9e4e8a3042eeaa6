package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
	"prism-ads/internal/core/selection"
)

// AdService orchestrates ad selection and click recording. It composes the
// virtual clock, the targeting filter and the ranking scorer, then records
// the resulting exposure/click economics.
type AdService struct {
	clients   port.ClientRepository
	campaigns port.CampaignRepository
	ads       port.AdRepository
	days      port.DayStore
	logger    *slog.Logger
}

// NewAdService creates the service with its collaborators.
func NewAdService(
	clients port.ClientRepository,
	campaigns port.CampaignRepository,
	ads port.AdRepository,
	days port.DayStore,
	logger *slog.Logger,
) *AdService {
	return &AdService{
		clients:   clients,
		campaigns: campaigns,
		ads:       ads,
		days:      days,
		logger:    logger,
	}
}

// ShowAd picks the single best eligible campaign for the client on the
// current day and records the impression. The winning campaign is re-fetched
// by id before the insert: the selection pool and the authoritative row may
// drift under concurrent edits, and the caller must never see that
// inconsistency.
func (s *AdService) ShowAd(ctx context.Context, clientID uuid.UUID) (*port.Ad, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	day, err := s.days.Current(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := s.ads.ListCandidates(ctx, clientID)
	if err != nil {
		return nil, err
	}
	winner, ok := selection.Pick(pool, *client, day)
	if !ok {
		return nil, domain.ErrNoAdAvailable
	}

	campaign, err := s.campaigns.GetLive(ctx, winner.Campaign.ID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		// Consistency anomaly: the campaign vanished between selection
		// and confirmation. Logged at the highest level, downgraded to
		// a plain "no ad" for the caller.
		s.logger.Error("selected campaign vanished before confirmation",
			slog.String("campaign_id", winner.Campaign.ID.String()),
			slog.String("client_id", clientID.String()))
		return nil, domain.ErrNoAdAvailable
	}

	imp := domain.Impression{
		ID:                uuid.New(),
		CampaignID:        campaign.ID,
		ClientID:          clientID,
		Day:               day,
		CostPerImpression: campaign.CostPerImpression,
		CreatedAt:         time.Now().UTC(),
	}
	// A racing request for the same pair loses on the unique constraint
	// and must fail hard; the client never gets two impressions for one
	// campaign.
	if err = s.ads.CreateImpression(ctx, imp); err != nil {
		return nil, err
	}

	return &port.Ad{
		ID:           campaign.ID,
		Title:        campaign.AdTitle,
		Text:         campaign.AdText,
		AdvertiserID: campaign.AdvertiserID,
	}, nil
}

// Click records a click on a previously shown ad. Deleted campaigns still
// accept clicks on their historical impressions. A repeated click is a
// defined success with no new spend.
func (s *AdService) Click(ctx context.Context, clientID, adID uuid.UUID) error {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrClientNotFound
	}

	campaign, err := s.campaigns.GetAny(ctx, adID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return domain.ErrCampaignNotFound
	}

	imp, err := s.ads.GetImpression(ctx, clientID, adID)
	if err != nil {
		return err
	}
	if imp == nil {
		return domain.ErrClickBeforeShow
	}

	prev, err := s.ads.GetClick(ctx, clientID, adID)
	if err != nil {
		return err
	}
	if prev != nil {
		return nil
	}

	day, err := s.days.Current(ctx)
	if err != nil {
		return err
	}

	// A concurrent duplicate slipping past the pre-check above resolves
	// at the insert: the repository translates the unique-constraint
	// conflict to the same idempotent success.
	return s.ads.CreateClick(ctx, domain.Click{
		ID:           uuid.New(),
		CampaignID:   campaign.ID,
		ClientID:     clientID,
		Day:          day,
		CostPerClick: campaign.CostPerClick,
		CreatedAt:    time.Now().UTC(),
	})
}
