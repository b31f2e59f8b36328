package budgets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgetly/budgetly/internal/platform/db"
	"github.com/budgetly/budgetly/internal/shared"
)

var (
	ErrNotFound      = shared.ErrNotFound
	ErrAlreadyExists = errors.New("record already exists")
	ErrUnknownBudget = errors.New("budget does not exist")
)

type Repository interface {
	FindBudgetByName(ctx context.Context, userID uuid.UUID, name string) (*Budget, error)
	CreateBudget(ctx context.Context, b Budget) (Budget, error)
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	AdjustCurrent(ctx context.Context, id uuid.UUID, delta float64) (*Budget, error)
	CreateTransaction(ctx context.Context, t Transaction) (Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, budgetID uuid.UUID) ([]Transaction, error)
}

const (
	budgetColumns      = `id, user_id, name, current, amount, description, created_at`
	transactionColumns = `id, budget_id, name, amount, current_amount, description, created_at`
)

type repository struct {
	db db.DBTX
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) FindBudgetByName(ctx context.Context, userID uuid.UUID, name string) (*Budget, error) {
	rows, err := r.db.Query(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND name = $2`, userID, name)
	if err != nil {
		return nil, err
	}
	return collectOne(rows)
}

func (r *repository) CreateBudget(ctx context.Context, b Budget) (Budget, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO budgets (`+budgetColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.Name, b.Current, b.Amount, b.Description, b.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Budget{}, ErrAlreadyExists
		}
		return Budget{}, err
	}
	return b, nil
}

func (r *repository) GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error) {
	rows, err := r.db.Query(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return collectOne(rows)
}

func (r *repository) ListBudgets(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	rows, err := r.db.Query(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Budget])
}

func (r *repository) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCurrent moves current by delta in a single statement.
func (r *repository) AdjustCurrent(ctx context.Context, id uuid.UUID, delta float64) (*Budget, error) {
	rows, err := r.db.Query(ctx, `UPDATE budgets SET current = current + $2 WHERE id = $1 RETURNING `+budgetColumns, id, delta)
	if err != nil {
		return nil, err
	}
	return collectOne(rows)
}

func (r *repository) CreateTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO transactions (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.BudgetID, t.Name, t.Amount, t.CurrentAmount, t.Description, t.CreatedAt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return Transaction{}, ErrUnknownBudget
		}
		return Transaction{}, err
	}
	return t, nil
}

func (r *repository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListTransactions(ctx context.Context, budgetID uuid.UUID) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE budget_id = $1 ORDER BY created_at`, budgetID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Transaction])
}

func collectOne(rows pgx.Rows) (*Budget, error) {
	b, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Budget])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
