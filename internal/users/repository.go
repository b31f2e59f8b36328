package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/budgetly/budgetly/internal/platform/db"
)

const userColumns = `id, name, email, password_hash, date_of_birth, verified, created_at, updated_at`

// Store is the PostgreSQL credential store. It runs on a pool or inside a
// transaction, whichever DBTX it was built with.
type Store struct {
	db db.DBTX
}

// NewStore constructs a Store.
func NewStore(conn db.DBTX) *Store {
	return &Store{db: conn}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.DateOfBirth, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches a user by exact email.
func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByID fetches a user by id.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Insert persists a new user. ID and timestamps are filled when zero.
func (s *Store) Insert(ctx context.Context, u User) (User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.DateOfBirth, u.Verified, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("users: insert: %w", err)
	}
	return u, nil
}

// MarkVerified flips the verified flag.
func (s *Store) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, `UPDATE users SET verified = TRUE, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
}

// UpdatePassword replaces the stored hash.
func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return s.update(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, hash, time.Now().UTC())
}

// Delete removes a user.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, `DELETE FROM users WHERE id = $1`, id)
}

// DeleteUnverified removes the given users that are still unverified and
// reports how many went.
func (s *Store) DeleteUnverified(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = ANY($1) AND verified = FALSE`, ids)
	if err != nil {
		return 0, fmt.Errorf("users: delete unverified: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) update(ctx context.Context, query string, args ...any) error {
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
