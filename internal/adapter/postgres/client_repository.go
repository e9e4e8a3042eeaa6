package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prism-ads/internal/core/domain"
)

// ClientRepository implements port.ClientRepository using pgxpool.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a new repository instance.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Upsert replaces clients by id. The whole batch is applied in one
// transaction so a bulk request is all-or-nothing.
func (r *ClientRepository) Upsert(ctx context.Context, clients []domain.Client) error {
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

	for _, c := range clients {
		_, err = tx.Exec(ctx, `INSERT INTO clients (id, login, age, location, gender)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET login = $2, age = $3, location = $4, gender = $5`,
			c.ID, c.Login, c.Age, c.Location, string(c.Gender))
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns a client by id, or (nil, nil) when absent.
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var (
		c      domain.Client
		gender string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, login, age, location, gender FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Login, &c.Age, &c.Location, &gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Gender = domain.Gender(gender)
	return &c, nil
}
