package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo clients, advertisers, campaigns and relevance scores.
// Inserts are idempotent per run only; every invocation creates a fresh set
// of entities under new ids.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	locations := []string{"Berlin", "Moscow", "Yerevan", "London"}
	genders := []string{"MALE", "FEMALE"}

	clientIDs := make([]uuid.UUID, 0, 20)
	for i := 1; i <= 20; i++ {
		id := uuid.New()
		clientIDs = append(clientIDs, id)
		_, err := pool.Exec(ctx, `INSERT INTO clients (id, login, age, location, gender)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
			id, fmt.Sprintf("user-%d", i), 18+r.Intn(50), locations[r.Intn(len(locations))], genders[r.Intn(2)])
		if err != nil {
			return err
		}
	}

	advertiserIDs := make([]uuid.UUID, 0, 5)
	for i := 1; i <= 5; i++ {
		id := uuid.New()
		advertiserIDs = append(advertiserIDs, id)
		_, err := pool.Exec(ctx, `INSERT INTO advertisers (id, name)
VALUES ($1,$2) ON CONFLICT (id) DO NOTHING`, id, fmt.Sprintf("Advertiser %d", i))
		if err != nil {
			return err
		}

		for j := 1; j <= 3; j++ {
			_, err = pool.Exec(ctx, `INSERT INTO campaigns
    (id, advertiser_id, impressions_limit, clicks_limit, cost_per_impression, cost_per_click,
     ad_title, ad_text, start_day, end_day, gender, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now()) ON CONFLICT (id) DO NOTHING`,
				uuid.New(), id,
				int64(100+r.Intn(900)), int64(10+r.Intn(90)),
				float64(r.Intn(500))/100, float64(r.Intn(800))/100,
				fmt.Sprintf("Campaign %d-%d", i, j), "Demo ad text",
				0, 30, "ALL")
			if err != nil {
				return err
			}
		}
	}

	for _, clientID := range clientIDs {
		for _, advertiserID := range advertiserIDs {
			_, err := pool.Exec(ctx, `INSERT INTO relevance (client_id, advertiser_id, score)
VALUES ($1,$2,$3)
ON CONFLICT (client_id, advertiser_id) DO UPDATE SET score = EXCLUDED.score`,
				clientID, advertiserID, r.Intn(100))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
