package usecase

import (
	"context"

	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
)

// DirectoryService manages the upsert-by-id directories: clients,
// advertisers and the relevance scores between them.
type DirectoryService struct {
	clients     port.ClientRepository
	advertisers port.AdvertiserRepository
	relevance   port.RelevanceRepository
}

// NewDirectoryService creates the service.
func NewDirectoryService(
	clients port.ClientRepository,
	advertisers port.AdvertiserRepository,
	relevance port.RelevanceRepository,
) *DirectoryService {
	return &DirectoryService{
		clients:     clients,
		advertisers: advertisers,
		relevance:   relevance,
	}
}

// UpsertClients replaces the given clients by id.
func (s *DirectoryService) UpsertClients(ctx context.Context, clients []domain.Client) error {
	return s.clients.Upsert(ctx, clients)
}

// GetClient returns a client by id.
func (s *DirectoryService) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}

// UpsertAdvertisers replaces the given advertisers by id.
func (s *DirectoryService) UpsertAdvertisers(ctx context.Context, advertisers []domain.Advertiser) error {
	return s.advertisers.Upsert(ctx, advertisers)
}

// GetAdvertiser returns an advertiser by id.
func (s *DirectoryService) GetAdvertiser(ctx context.Context, id uuid.UUID) (*domain.Advertiser, error) {
	adv, err := s.advertisers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adv == nil {
		return nil, domain.ErrAdvertiserNotFound
	}
	return adv, nil
}

// UpsertRelevance replaces the score for a (client, advertiser) pair. Both
// sides must exist.
func (s *DirectoryService) UpsertRelevance(ctx context.Context, rel domain.Relevance) error {
	client, err := s.clients.GetByID(ctx, rel.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrClientNotFound
	}
	adv, err := s.advertisers.GetByID(ctx, rel.AdvertiserID)
	if err != nil {
		return err
	}
	if adv == nil {
		return domain.ErrAdvertiserNotFound
	}
	return s.relevance.Upsert(ctx, rel)
}
