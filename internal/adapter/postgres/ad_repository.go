package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/selection"
)

const uniqueViolation = "23505"

// AdRepository implements port.AdRepository using pgxpool. It owns the
// candidate listing for ad selection and the append-only impression/click
// facts with their per-pair uniqueness constraints.
type AdRepository struct {
	pool *pgxpool.Pool
}

// NewAdRepository returns a new repository instance.
func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

// ListCandidates returns every live campaign together with its delivered
// counters, the client's relevance toward its advertiser and whether the
// client was already shown it. Eligibility filtering and scoring happen in
// the selection package, not in SQL.
func (r *AdRepository) ListCandidates(ctx context.Context, clientID uuid.UUID) ([]selection.Candidate, error) {
	query := `
        SELECT
            c.id, c.advertiser_id, c.impressions_limit, c.clicks_limit,
            c.cost_per_impression, c.cost_per_click, c.ad_title, c.ad_text,
            c.start_day, c.end_day, c.age_from, c.age_to, c.location,
            c.gender, c.image_path, c.deleted, c.created_at,
            COALESCE(ic.count, 0),
            COALESCE(cc.count, 0),
            COALESCE(r.score, 0),
            EXISTS (
                SELECT 1 FROM impressions si
                WHERE si.client_id = $1 AND si.campaign_id = c.id
            )
        FROM campaigns c
        LEFT JOIN (
            SELECT campaign_id, count(*) AS count FROM impressions GROUP BY campaign_id
        ) ic ON ic.campaign_id = c.id
        LEFT JOIN (
            SELECT campaign_id, count(*) AS count FROM clicks GROUP BY campaign_id
        ) cc ON cc.campaign_id = c.id
        LEFT JOIN relevance r
            ON r.client_id = $1 AND r.advertiser_id = c.advertiser_id
        WHERE NOT c.deleted`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (selection.Candidate, error) {
		var (
			cand   selection.Candidate
			gender *string
		)
		c := &cand.Campaign
		err := row.Scan(
			&c.ID, &c.AdvertiserID, &c.ImpressionsLimit, &c.ClicksLimit,
			&c.CostPerImpression, &c.CostPerClick, &c.AdTitle, &c.AdText,
			&c.StartDay, &c.EndDay, &c.Targeting.AgeFrom, &c.Targeting.AgeTo,
			&c.Targeting.Location, &gender, &c.ImagePath, &c.Deleted,
			&c.CreatedAt,
			&cand.Impressions, &cand.Clicks, &cand.Relevance, &cand.Shown,
		)
		if gender != nil {
			g := domain.TargetGender(*gender)
			c.Targeting.Gender = &g
		}
		return cand, err
	})
}

// CreateImpression inserts the impression fact. A (client, campaign) unique
// violation means a concurrent request already recorded the exposure; that
// loser must fail loudly, so the conflict surfaces as ErrImpressionExists.
func (r *AdRepository) CreateImpression(ctx context.Context, imp domain.Impression) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO impressions
(id, campaign_id, client_id, day, cost_per_impression, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
		imp.ID, imp.CampaignID, imp.ClientID, imp.Day, imp.CostPerImpression, imp.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrImpressionExists
	}
	return err
}

// GetImpression returns the impression for the pair, or (nil, nil).
func (r *AdRepository) GetImpression(ctx context.Context, clientID, campaignID uuid.UUID) (*domain.Impression, error) {
	var imp domain.Impression
	err := r.pool.QueryRow(ctx, `SELECT id, campaign_id, client_id, day, cost_per_impression, created_at
FROM impressions WHERE client_id = $1 AND campaign_id = $2`, clientID, campaignID).
		Scan(&imp.ID, &imp.CampaignID, &imp.ClientID, &imp.Day, &imp.CostPerImpression, &imp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// GetClick returns the click for the pair, or (nil, nil).
func (r *AdRepository) GetClick(ctx context.Context, clientID, campaignID uuid.UUID) (*domain.Click, error) {
	var click domain.Click
	err := r.pool.QueryRow(ctx, `SELECT id, campaign_id, client_id, day, cost_per_click, created_at
FROM clicks WHERE client_id = $1 AND campaign_id = $2`, clientID, campaignID).
		Scan(&click.ID, &click.CampaignID, &click.ClientID, &click.Day, &click.CostPerClick, &click.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &click, nil
}

// CreateClick inserts the click fact. Unlike impressions, a unique violation
// is translated to success: the racing duplicate must report the same
// idempotent outcome as if it had observed the winner's row, and no spend is
// recorded twice.
func (r *AdRepository) CreateClick(ctx context.Context, click domain.Click) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO clicks
(id, campaign_id, client_id, day, cost_per_click, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`,
		click.ID, click.CampaignID, click.ClientID, click.Day, click.CostPerClick, click.CreatedAt)
	if isUniqueViolation(err) {
		return nil
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
