package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/budgetly/budgetly/internal/platform/db"
	"github.com/budgetly/budgetly/internal/shared"
)

// ErrNotFound indicates the user has no verification record.
var ErrNotFound = shared.ErrNotFound

// Store persists verification records in PostgreSQL.
type Store struct {
	db db.DBTX
}

// NewStore constructs a Store.
func NewStore(conn db.DBTX) *Store {
	return &Store{db: conn}
}

// Insert writes a record, assigning an id when absent.
func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := s.db.Exec(ctx, `INSERT INTO user_verifications (id, user_id, hashed_token, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)`, rec.ID, rec.UserID, rec.HashedToken, rec.CreatedAt, rec.ExpiresAt)
	if err != nil {
		return Record{}, fmt.Errorf("verification: insert: %w", err)
	}
	return rec, nil
}

// FindLatestByUser returns the most recently created record of the user.
func (s *Store) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*Record, error) {
	var rec Record
	err := s.db.QueryRow(ctx, `SELECT id, user_id, hashed_token, created_at, expires_at
FROM user_verifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID).
		Scan(&rec.ID, &rec.UserID, &rec.HashedToken, &rec.CreatedAt, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("verification: find latest: %w", err)
	}
	return &rec, nil
}

// DeleteByUser removes every record of the user and reports how many went.
func (s *Store) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM user_verifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("verification: delete: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired removes records that lapsed before now and returns the owners
// of the removed rows.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, `DELETE FROM user_verifications WHERE expires_at < $1 RETURNING user_id`, now)
	if err != nil {
		return nil, fmt.Errorf("verification: delete expired: %w", err)
	}
	owners, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("verification: delete expired: %w", err)
	}
	return owners, nil
}
