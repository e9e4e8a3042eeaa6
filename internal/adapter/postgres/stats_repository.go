package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prism-ads/internal/core/domain"
)

// StatsRepository implements port.StatsRepository using pgxpool. All numbers
// derive from the append-only impression/click history; deleted campaigns
// keep contributing to advertiser and service scopes.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository returns a new repository instance.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Scope predicates for the two aggregate subjects. The advertiser scope
// spans every campaign ever owned, soft-deleted included.
const (
	campaignScope   = "campaign_id = $1"
	advertiserScope = "campaign_id IN (SELECT id FROM campaigns WHERE advertiser_id = $1)"
)

func (r *StatsRepository) stat(ctx context.Context, scope string, id uuid.UUID) (domain.Stat, error) {
	query := fmt.Sprintf(`SELECT
    (SELECT count(*) FROM impressions WHERE %[1]s),
    (SELECT COALESCE(sum(cost_per_impression), 0) FROM impressions WHERE %[1]s),
    (SELECT count(*) FROM clicks WHERE %[1]s),
    (SELECT COALESCE(sum(cost_per_click), 0) FROM clicks WHERE %[1]s)`, scope)

	var s domain.Stat
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ImpressionsCount, &s.SpentImpressions, &s.ClicksCount, &s.SpentClicks)
	if err != nil {
		return domain.Stat{}, err
	}
	s.Conversion = domain.ConversionRate(s.ImpressionsCount, s.ClicksCount)
	s.SpentTotal = s.SpentImpressions + s.SpentClicks
	return s, nil
}

func (r *StatsRepository) statDaily(ctx context.Context, scope string, id uuid.UUID) ([]domain.DailyStat, error) {
	// Full outer union of impression-days and click-days: a day appears as
	// soon as either side has activity, gaps are omitted.
	query := fmt.Sprintf(`WITH i AS (
    SELECT day, count(*) AS cnt, sum(cost_per_impression) AS spent
    FROM impressions WHERE %[1]s GROUP BY day
), k AS (
    SELECT day, count(*) AS cnt, sum(cost_per_click) AS spent
    FROM clicks WHERE %[1]s GROUP BY day
)
SELECT
    COALESCE(i.day, k.day),
    COALESCE(i.cnt, 0), COALESCE(i.spent, 0),
    COALESCE(k.cnt, 0), COALESCE(k.spent, 0)
FROM i
FULL OUTER JOIN k ON i.day = k.day
ORDER BY 1`, scope)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DailyStat, error) {
		var d domain.DailyStat
		err := row.Scan(&d.Day, &d.ImpressionsCount, &d.SpentImpressions,
			&d.ClicksCount, &d.SpentClicks)
		if err != nil {
			return d, err
		}
		d.Conversion = domain.ConversionRate(d.ImpressionsCount, d.ClicksCount)
		d.SpentTotal = d.SpentImpressions + d.SpentClicks
		return d, nil
	})
}

// CampaignStat aggregates the campaign's whole event history.
func (r *StatsRepository) CampaignStat(ctx context.Context, campaignID uuid.UUID) (domain.Stat, error) {
	return r.stat(ctx, campaignScope, campaignID)
}

// CampaignStatDaily buckets the campaign history by virtual day.
func (r *StatsRepository) CampaignStatDaily(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStat, error) {
	return r.statDaily(ctx, campaignScope, campaignID)
}

// AdvertiserStat aggregates across all campaigns the advertiser ever owned.
func (r *StatsRepository) AdvertiserStat(ctx context.Context, advertiserID uuid.UUID) (domain.Stat, error) {
	return r.stat(ctx, advertiserScope, advertiserID)
}

// AdvertiserStatDaily buckets the advertiser history by virtual day.
func (r *StatsRepository) AdvertiserStatDaily(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStat, error) {
	return r.statDaily(ctx, advertiserScope, advertiserID)
}

// ServiceMetrics computes the service-wide aggregate plus entity counts.
func (r *StatsRepository) ServiceMetrics(ctx context.Context) (domain.ServiceMetrics, error) {
	var m domain.ServiceMetrics
	err := r.pool.QueryRow(ctx, `SELECT
    (SELECT count(*) FROM impressions),
    (SELECT COALESCE(sum(cost_per_impression), 0) FROM impressions),
    (SELECT count(*) FROM clicks),
    (SELECT COALESCE(sum(cost_per_click), 0) FROM clicks),
    (SELECT count(*) FROM advertisers),
    (SELECT count(*) FROM clients),
    (SELECT count(*) FROM campaigns)`).
		Scan(&m.ImpressionsCount, &m.IncomeImpressions, &m.ClicksCount,
			&m.IncomeClicks, &m.AdvertisersCount, &m.ClientsCount, &m.CampaignsCount)
	if err != nil {
		return domain.ServiceMetrics{}, err
	}
	m.Conversion = domain.ConversionRate(m.ImpressionsCount, m.ClicksCount)
	m.IncomeTotal = m.IncomeImpressions + m.IncomeClicks
	return m, nil
}
