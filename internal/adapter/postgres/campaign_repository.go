package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prism-ads/internal/core/domain"
)

const campaignColumns = `id, advertiser_id, impressions_limit, clicks_limit,
cost_per_impression, cost_per_click, ad_title, ad_text, start_day, end_day,
age_from, age_to, location, gender, image_path, deleted, created_at`

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c      domain.Campaign
		gender *string
	)
	err := row.Scan(
		&c.ID,
		&c.AdvertiserID,
		&c.ImpressionsLimit,
		&c.ClicksLimit,
		&c.CostPerImpression,
		&c.CostPerClick,
		&c.AdTitle,
		&c.AdText,
		&c.StartDay,
		&c.EndDay,
		&c.Targeting.AgeFrom,
		&c.Targeting.AgeTo,
		&c.Targeting.Location,
		&gender,
		&c.ImagePath,
		&c.Deleted,
		&c.CreatedAt,
	)
	if err != nil {
		return c, err
	}
	if gender != nil {
		g := domain.TargetGender(*gender)
		c.Targeting.Gender = &g
	}
	return c, nil
}

func targetGenderArg(t domain.Targeting) *string {
	if t.Gender == nil {
		return nil
	}
	s := string(*t.Gender)
	return &s
}

// Create inserts a new campaign.
func (r *CampaignRepository) Create(ctx context.Context, c domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
(id, advertiser_id, impressions_limit, clicks_limit, cost_per_impression,
 cost_per_click, ad_title, ad_text, start_day, end_day, age_from, age_to,
 location, gender, image_path, deleted, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		c.ID, c.AdvertiserID, c.ImpressionsLimit, c.ClicksLimit,
		c.CostPerImpression, c.CostPerClick, c.AdTitle, c.AdText,
		c.StartDay, c.EndDay, c.Targeting.AgeFrom, c.Targeting.AgeTo,
		c.Targeting.Location, targetGenderArg(c.Targeting), c.ImagePath,
		c.Deleted, c.CreatedAt)
	return err
}

// Update replaces every writable field of the campaign.
func (r *CampaignRepository) Update(ctx context.Context, c domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET
impressions_limit = $2, clicks_limit = $3, cost_per_impression = $4,
cost_per_click = $5, ad_title = $6, ad_text = $7, start_day = $8,
end_day = $9, age_from = $10, age_to = $11, location = $12, gender = $13
WHERE id = $1`,
		c.ID, c.ImpressionsLimit, c.ClicksLimit, c.CostPerImpression,
		c.CostPerClick, c.AdTitle, c.AdText, c.StartDay, c.EndDay,
		c.Targeting.AgeFrom, c.Targeting.AgeTo, c.Targeting.Location,
		targetGenderArg(c.Targeting))
	return err
}

func (r *CampaignRepository) get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = $1`, campaignColumns)
	c, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetLive returns a campaign by id, hiding soft-deleted ones.
func (r *CampaignRepository) GetLive(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := r.get(ctx, id)
	if err != nil || c == nil || c.Deleted {
		return nil, err
	}
	return c, nil
}

// GetAny returns a campaign by id regardless of deletion state.
func (r *CampaignRepository) GetAny(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return r.get(ctx, id)
}

// List returns the advertiser's live campaigns ordered by ad title then id.
// Nil limit/offset mean "everything".
func (r *CampaignRepository) List(ctx context.Context, advertiserID uuid.UUID, limit, offset *int) ([]domain.Campaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaigns
WHERE advertiser_id = $1 AND NOT deleted
ORDER BY ad_title, id`, campaignColumns)
	args := []any{advertiserID}
	if limit != nil {
		args = append(args, *limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset != nil {
		args = append(args, *offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// MarkDeleted sets the terminal soft-delete flag. The row and its event
// history stay in place.
func (r *CampaignRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET deleted = TRUE WHERE id = $1`, id)
	return err
}

// SetImagePath attaches an uploaded image reference to the campaign.
func (r *CampaignRepository) SetImagePath(ctx context.Context, id uuid.UUID, path string) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET image_path = $2 WHERE id = $1`, id, path)
	return err
}
