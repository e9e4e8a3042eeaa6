package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
)

// CampaignService covers the advertiser-facing campaign lifecycle: CRUD,
// listing, image attachment and ad text generation.
type CampaignService struct {
	campaigns   port.CampaignRepository
	advertisers port.AdvertiserRepository
	days        port.DayStore
	moderation  port.ModerationFilter
	files       port.FileStore
	generator   port.AdTextGenerator
	logger      *slog.Logger
}

// NewCampaignService creates the service with its collaborators.
func NewCampaignService(
	campaigns port.CampaignRepository,
	advertisers port.AdvertiserRepository,
	days port.DayStore,
	moderation port.ModerationFilter,
	files port.FileStore,
	generator port.AdTextGenerator,
	logger *slog.Logger,
) *CampaignService {
	return &CampaignService{
		campaigns:   campaigns,
		advertisers: advertisers,
		days:        days,
		moderation:  moderation,
		files:       files,
		generator:   generator,
		logger:      logger,
	}
}

func (s *CampaignService) requireAdvertiser(ctx context.Context, id uuid.UUID) error {
	adv, err := s.advertisers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if adv == nil {
		return domain.ErrAdvertiserNotFound
	}
	return nil
}

// ownedLive fetches a live campaign and checks ownership.
func (s *CampaignService) ownedLive(ctx context.Context, campaignID, advertiserID uuid.UUID) (*domain.Campaign, error) {
	if err := s.requireAdvertiser(ctx, advertiserID); err != nil {
		return nil, err
	}
	campaign, err := s.campaigns.GetLive(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrCampaignNotFound
	}
	if campaign.AdvertiserID != advertiserID {
		return nil, domain.ErrAccessDenied
	}
	return campaign, nil
}

func (s *CampaignService) validateWindow(in port.CampaignInput, day int) error {
	if in.StartDay < day || in.EndDay < day || in.EndDay < in.StartDay {
		return domain.ErrCampaignInPast
	}
	return nil
}

func (s *CampaignService) checkContent(ctx context.Context, in port.CampaignInput) error {
	disallowed, err := s.moderation.ContainsDisallowed(ctx, in.AdTitle+" "+in.AdText)
	if err != nil {
		return err
	}
	if disallowed {
		return domain.ErrDisallowedContent
	}
	return nil
}

// Create validates and stores a new campaign for the advertiser.
func (s *CampaignService) Create(ctx context.Context, advertiserID uuid.UUID, in port.CampaignInput) (*domain.Campaign, error) {
	if err := s.requireAdvertiser(ctx, advertiserID); err != nil {
		return nil, err
	}

	day, err := s.days.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err = s.validateWindow(in, day); err != nil {
		return nil, err
	}
	if in.ClicksLimit > in.ImpressionsLimit {
		return nil, domain.ErrClickLimitTooHigh
	}
	if err = s.checkContent(ctx, in); err != nil {
		return nil, err
	}

	campaign := domain.Campaign{
		ID:                uuid.New(),
		AdvertiserID:      advertiserID,
		ImpressionsLimit:  in.ImpressionsLimit,
		ClicksLimit:       in.ClicksLimit,
		CostPerImpression: in.CostPerImpression,
		CostPerClick:      in.CostPerClick,
		AdTitle:           in.AdTitle,
		AdText:            in.AdText,
		StartDay:          in.StartDay,
		EndDay:            in.EndDay,
		Targeting:         in.Targeting,
		CreatedAt:         time.Now().UTC(),
	}
	if err = s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	s.logger.Info("campaign created", slog.String("campaign_id", campaign.ID.String()))
	return &campaign, nil
}

// Read returns the advertiser's campaign by id.
func (s *CampaignService) Read(ctx context.Context, campaignID, advertiserID uuid.UUID) (*domain.Campaign, error) {
	return s.ownedLive(ctx, campaignID, advertiserID)
}

// Update replaces every writable field. Capacity and time bounds freeze once
// the campaign has started; cost and copy stay editable throughout.
func (s *CampaignService) Update(ctx context.Context, campaignID, advertiserID uuid.UUID, in port.CampaignInput) (*domain.Campaign, error) {
	campaign, err := s.ownedLive(ctx, campaignID, advertiserID)
	if err != nil {
		return nil, err
	}

	day, err := s.days.Current(ctx)
	if err != nil {
		return nil, err
	}

	boundsChanged := in.ImpressionsLimit != campaign.ImpressionsLimit ||
		in.ClicksLimit != campaign.ClicksLimit ||
		in.StartDay != campaign.StartDay ||
		in.EndDay != campaign.EndDay
	if boundsChanged && campaign.Started(day) {
		return nil, domain.ErrCampaignStarted
	}

	if err = s.validateWindow(in, day); err != nil {
		return nil, err
	}
	if in.ClicksLimit > in.ImpressionsLimit {
		return nil, domain.ErrClickLimitTooHigh
	}
	if err = s.checkContent(ctx, in); err != nil {
		return nil, err
	}

	campaign.ImpressionsLimit = in.ImpressionsLimit
	campaign.ClicksLimit = in.ClicksLimit
	campaign.CostPerImpression = in.CostPerImpression
	campaign.CostPerClick = in.CostPerClick
	campaign.AdTitle = in.AdTitle
	campaign.AdText = in.AdText
	campaign.StartDay = in.StartDay
	campaign.EndDay = in.EndDay
	campaign.Targeting = in.Targeting

	if err = s.campaigns.Update(ctx, *campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete soft-deletes the campaign. Terminal and irreversible; historical
// impressions and clicks keep counting toward stats.
func (s *CampaignService) Delete(ctx context.Context, campaignID, advertiserID uuid.UUID) error {
	campaign, err := s.ownedLive(ctx, campaignID, advertiserID)
	if err != nil {
		return err
	}
	if err = s.campaigns.MarkDeleted(ctx, campaign.ID); err != nil {
		return err
	}
	s.logger.Info("campaign deleted", slog.String("campaign_id", campaign.ID.String()))
	return nil
}

// List returns the advertiser's live campaigns, paged.
func (s *CampaignService) List(ctx context.Context, advertiserID uuid.UUID, page, size *int) ([]domain.Campaign, error) {
	if err := s.requireAdvertiser(ctx, advertiserID); err != nil {
		return nil, err
	}

	var limit, offset *int
	if size != nil {
		limit = size
		if page != nil {
			o := *size * *page
			offset = &o
		}
	}
	return s.campaigns.List(ctx, advertiserID, limit, offset)
}

// AttachImage uploads the image and stores its reference on the campaign.
func (s *CampaignService) AttachImage(ctx context.Context, campaignID, advertiserID uuid.UUID, file io.Reader, ext string, size int64) (string, error) {
	campaign, err := s.ownedLive(ctx, campaignID, advertiserID)
	if err != nil {
		return "", err
	}

	path, err := s.files.Store(ctx, file, ext, size)
	if err != nil {
		return "", err
	}
	if err = s.campaigns.SetImagePath(ctx, campaign.ID, path); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateText produces ad copy for the advertiser from an ad title.
func (s *CampaignService) GenerateText(ctx context.Context, advertiserID uuid.UUID, adTitle string) (string, error) {
	adv, err := s.advertisers.GetByID(ctx, advertiserID)
	if err != nil {
		return "", err
	}
	if adv == nil {
		return "", domain.ErrAdvertiserNotFound
	}
	return s.generator.Generate(ctx, adv.Name, adTitle)
}
