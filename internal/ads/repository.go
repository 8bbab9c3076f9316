package ads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edaterlove/adboard/internal/models"
)

// Querier is the part of *pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles ad persistence in PostgreSQL.
type Repository struct {
	pool Querier
}

// NewRepository creates an ads repository.
func NewRepository(pool Querier) *Repository {
	return &Repository{pool: pool}
}

// ListPaidAds returns up to limit paid ads, newest first.
func (r *Repository) ListPaidAds(ctx context.Context, limit int) ([]models.Ad, error) {
	const query = `SELECT id, message, link, email, paid, created_at
		FROM ads WHERE paid = TRUE ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list ads: %w", ErrUpstreamUnavailable, err)
	}
	list, err := pgx.CollectRows(rows, scanAd)
	if err != nil {
		return nil, fmt.Errorf("%w: scan ads: %w", ErrUpstreamUnavailable, err)
	}
	return list, nil
}

// CreateAd inserts a new ad. A nil link is stored as NULL.
func (r *Repository) CreateAd(ctx context.Context, in models.NewAd) (models.Ad, error) {
	const query = `INSERT INTO ads (id, message, link, email, paid)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, created_at`
	var (
		id        uuid.UUID
		createdAt time.Time
	)
	if err := r.pool.QueryRow(ctx, query, in.Message, in.Link, in.Email, in.Paid).Scan(&id, &createdAt); err != nil {
		return models.Ad{}, fmt.Errorf("%w: create ad: %w", ErrUpstreamUnavailable, err)
	}
	return models.Ad{
		ID:        id.String(),
		Message:   in.Message,
		Link:      in.Link,
		Email:     in.Email,
		Paid:      in.Paid,
		CreatedAt: createdAt.UTC(),
	}, nil
}

func scanAd(row pgx.CollectableRow) (models.Ad, error) {
	var (
		a  models.Ad
		id uuid.UUID
	)
	if err := row.Scan(&id, &a.Message, &a.Link, &a.Email, &a.Paid, &a.CreatedAt); err != nil {
		return models.Ad{}, err
	}
	a.ID = id.String()
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
