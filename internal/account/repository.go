package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgetly/budgetly/internal/passwordreset"
	"github.com/budgetly/budgetly/internal/platform/db"
	"github.com/budgetly/budgetly/internal/users"
	"github.com/budgetly/budgetly/internal/verification"
)

// Repository is the storage port of the lifecycle service.
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) (*users.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*users.User, error)
	InsertUser(ctx context.Context, u users.User) (users.User, error)
	InsertVerification(ctx context.Context, rec verification.Record) (verification.Record, error)
	LatestVerification(ctx context.Context, userID uuid.UUID) (*verification.Record, error)
	LatestReset(ctx context.Context, userID uuid.UUID) (*passwordreset.Record, error)
	DeleteResets(ctx context.Context, userID uuid.UUID) (int64, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the writes that must commit together.
type TxRepository interface {
	InsertUser(ctx context.Context, u users.User) (users.User, error)
	InsertVerification(ctx context.Context, rec verification.Record) (verification.Record, error)
	DeleteVerifications(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	DeleteResets(ctx context.Context, userID uuid.UUID) (int64, error)
	InsertReset(ctx context.Context, rec passwordreset.Record) (passwordreset.Record, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	DeleteExpiredVerifications(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	DeleteUnverifiedUsers(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeleteExpiredResets(ctx context.Context, now time.Time) (int64, error)
}

// PGRepository composes the PostgreSQL stores.
type PGRepository struct {
	pool *pgxpool.Pool
	stores
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool, stores: newStores(pool)}
}

// WithTx wraps callback in a repeatable-read transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, newStores(tx))
	})
}

type stores struct {
	users         *users.Store
	verifications *verification.Store
	resets        *passwordreset.Store
}

func newStores(conn db.DBTX) stores {
	return stores{
		users:         users.NewStore(conn),
		verifications: verification.NewStore(conn),
		resets:        passwordreset.NewStore(conn),
	}
}

func (s stores) FindUserByEmail(ctx context.Context, email string) (*users.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s stores) FindUserByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s stores) InsertUser(ctx context.Context, u users.User) (users.User, error) {
	return s.users.Insert(ctx, u)
}

func (s stores) InsertVerification(ctx context.Context, rec verification.Record) (verification.Record, error) {
	return s.verifications.Insert(ctx, rec)
}

func (s stores) LatestVerification(ctx context.Context, userID uuid.UUID) (*verification.Record, error) {
	return s.verifications.FindLatestByUser(ctx, userID)
}

func (s stores) LatestReset(ctx context.Context, userID uuid.UUID) (*passwordreset.Record, error) {
	return s.resets.FindLatestByUser(ctx, userID)
}

func (s stores) DeleteResets(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.resets.DeleteByUser(ctx, userID)
}

func (s stores) DeleteVerifications(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.verifications.DeleteByUser(ctx, userID)
}

func (s stores) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s stores) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return s.users.MarkVerified(ctx, id)
}

func (s stores) InsertReset(ctx context.Context, rec passwordreset.Record) (passwordreset.Record, error) {
	return s.resets.Insert(ctx, rec)
}

func (s stores) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return s.users.UpdatePassword(ctx, id, hash)
}

func (s stores) DeleteExpiredVerifications(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	return s.verifications.DeleteExpired(ctx, now)
}

func (s stores) DeleteUnverifiedUsers(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.users.DeleteUnverified(ctx, ids)
}

func (s stores) DeleteExpiredResets(ctx context.Context, now time.Time) (int64, error) {
	return s.resets.DeleteExpired(ctx, now)
}
