package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prism-ads/internal/core/domain"
)

// AdvertiserRepository implements port.AdvertiserRepository using pgxpool.
type AdvertiserRepository struct {
	pool *pgxpool.Pool
}

// NewAdvertiserRepository returns a new repository instance.
func NewAdvertiserRepository(pool *pgxpool.Pool) *AdvertiserRepository {
	return &AdvertiserRepository{pool: pool}
}

// Upsert replaces advertisers by id in one transaction.
func (r *AdvertiserRepository) Upsert(ctx context.Context, advertisers []domain.Advertiser) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	for _, a := range advertisers {
		_, err = tx.Exec(ctx, `INSERT INTO advertisers (id, name)
VALUES ($1,$2)
ON CONFLICT (id) DO UPDATE SET name = $2`, a.ID, a.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns an advertiser by id, or (nil, nil) when absent.
func (r *AdvertiserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Advertiser, error) {
	var a domain.Advertiser
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM advertisers WHERE id = $1`, id).
		Scan(&a.ID, &a.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// RelevanceRepository implements port.RelevanceRepository using pgxpool.
type RelevanceRepository struct {
	pool *pgxpool.Pool
}

// NewRelevanceRepository returns a new repository instance.
func NewRelevanceRepository(pool *pgxpool.Pool) *RelevanceRepository {
	return &RelevanceRepository{pool: pool}
}

// Upsert replaces the score for the (client, advertiser) pair.
func (r *RelevanceRepository) Upsert(ctx context.Context, rel domain.Relevance) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO relevance (client_id, advertiser_id, score)
VALUES ($1,$2,$3)
ON CONFLICT (client_id, advertiser_id) DO UPDATE SET score = $3`,
		rel.ClientID, rel.AdvertiserID, rel.Score)
	return err
}
