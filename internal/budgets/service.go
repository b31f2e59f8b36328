package budgets

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budgetly/budgetly/internal/shared"
)

// Service wraps budget and transaction rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithNow overrides the clock.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateBudget adds a budget with a zero current amount.
func (s *Service) CreateBudget(ctx context.Context, req CreateBudgetRequest) (Budget, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return Budget{}, ErrEmptyBudgetFields
	}
	if req.Amount <= 0 {
		return Budget{}, ErrBudgetAmount
	}
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		return Budget{}, ErrBudgetUserID
	}

	if _, err := s.repo.FindBudgetByName(ctx, userID, name); err == nil {
		return Budget{}, ErrBudgetExists
	} else if !errors.Is(err, ErrNotFound) {
		return Budget{}, s.fail(ctx, ErrBudgetLookup, err)
	}

	budget, err := s.repo.CreateBudget(ctx, Budget{
		UserID:      userID,
		Name:        name,
		Amount:      req.Amount,
		Description: description,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return Budget{}, ErrBudgetExists
		}
		return Budget{}, s.fail(ctx, ErrBudgetSave, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget and, through the foreign key, its transactions.
func (s *Service) DeleteBudget(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ErrDeleteBudgetID
	}
	if err := s.repo.DeleteBudget(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrDeleteBudgetAbsent
		}
		return s.fail(ctx, ErrDeleteBudget, err)
	}
	return nil
}

// GetBudget fetches one budget.
func (s *Service) GetBudget(ctx context.Context, rawID string) (Budget, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Budget{}, ErrGetBudgetID
	}
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Budget{}, ErrGetBudgetAbsent
		}
		return Budget{}, s.fail(ctx, ErrGetBudget, err)
	}
	return *b, nil
}

// ListBudgets returns the budgets of a user. An empty result is an error.
func (s *Service) ListBudgets(ctx context.Context, rawUserID string) ([]Budget, error) {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, ErrListUserID
	}
	list, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, ErrListBudgets, err)
	}
	if len(list) == 0 {
		return nil, ErrListEmpty
	}
	return list, nil
}

// Increment adds the requested value to a budget's current amount.
func (s *Service) Increment(ctx context.Context, rawID string, req AdjustRequest) (Budget, error) {
	return s.adjust(ctx, rawID, req, 1, adjustOutcomes{ErrIncrementValue, ErrIncrementID, ErrIncrementAbsent, ErrIncrement})
}

// Decrement subtracts the requested value, typically after a transaction is
// deleted.
func (s *Service) Decrement(ctx context.Context, rawID string, req AdjustRequest) (Budget, error) {
	return s.adjust(ctx, rawID, req, -1, adjustOutcomes{ErrDecrementValue, ErrDecrementID, ErrDecrementAbsent, ErrDecrement})
}

type adjustOutcomes struct {
	value, id, absent, failed *shared.Error
}

func (s *Service) adjust(ctx context.Context, rawID string, req AdjustRequest, sign float64, out adjustOutcomes) (Budget, error) {
	value, ok := req.Amount()
	if !ok {
		return Budget{}, out.value
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Budget{}, out.id
	}
	b, err := s.repo.AdjustCurrent(ctx, id, sign*value)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Budget{}, out.absent
		}
		return Budget{}, s.fail(ctx, out.failed, err)
	}
	return *b, nil
}

// CreateTransaction records an expense against a budget.
func (s *Service) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (Transaction, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Transaction{}, ErrEmptyTransactionFields
	}
	if req.Amount <= 0 {
		return Transaction{}, ErrTransactionAmount
	}
	rawBudget := strings.TrimSpace(req.BudgetID)
	if rawBudget == "" {
		return Transaction{}, ErrTransactionBudget
	}
	budgetID, err := uuid.Parse(rawBudget)
	if err != nil {
		return Transaction{}, ErrTransactionBudgetID
	}
	t, err := s.repo.CreateTransaction(ctx, Transaction{
		BudgetID:    budgetID,
		Name:        name,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrUnknownBudget) {
			return Transaction{}, ErrTransactionBudget
		}
		return Transaction{}, s.fail(ctx, ErrTransactionSave, err)
	}
	return t, nil
}

// DeleteTransaction removes one transaction. The budget's current amount is
// left for the caller to adjust.
func (s *Service) DeleteTransaction(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ErrDeleteTransactionID
	}
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrDeleteTransactionAbsent
		}
		return s.fail(ctx, ErrDeleteTransaction, err)
	}
	return nil
}

// ListTransactions returns the transactions of a budget, oldest first.
func (s *Service) ListTransactions(ctx context.Context, rawBudgetID string) ([]Transaction, error) {
	budgetID, err := uuid.Parse(rawBudgetID)
	if err != nil {
		return nil, ErrListTransactionsID
	}
	list, err := s.repo.ListTransactions(ctx, budgetID)
	if err != nil {
		return nil, s.fail(ctx, ErrListTransactions, err)
	}
	if list == nil {
		list = []Transaction{}
	}
	return list, nil
}

func (s *Service) fail(ctx context.Context, outcome *shared.Error, cause error) error {
	s.logger.ErrorContext(ctx, "budgets operation failed", slog.String("code", outcome.Code), slog.Any("error", cause))
	return outcome.WithCause(cause)
}
