package news

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgetly/budgetly/internal/platform/db"
	"github.com/budgetly/budgetly/internal/shared"
)

var ErrNotFound = shared.ErrNotFound

type Repository interface {
	Create(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Item, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) Create(ctx context.Context, item Item) (Item, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO news (id, name, link, published_at) VALUES ($1, $2, $3, $4)`,
		item.ID, item.Name, item.Link, item.PublishedAt)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, link, published_at FROM news ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Item])
}
