package budgets

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/budgetly/budgetly/internal/platform/httpx"
)

// Handler wires HTTP endpoints for budgets and their transactions.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a budgets handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// CreateBudget stores a budget with a zero current amount.
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req CreateBudgetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, ErrEmptyBudgetFields)
		return
	}
	b, err := h.service.CreateBudget(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 6, "Creation Budget", b)
}

// DeleteBudget removes a budget by id.
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBudget(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 7, "Budget deleted successfully", nil)
}

// GetBudget returns one budget.
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBudget(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 8, "Budget found successfully", b)
}

// ListBudgets returns the budgets owned by a user.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListBudgets(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 9, "Budgets found successfully", list)
}

// Increment adds the request value to the budget's current amount.
func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, ErrIncrementValue)
		return
	}
	b, err := h.service.Increment(r.Context(), chi.URLParam(r, "budgetID"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 10, "Budget updated successfully", b)
}

// Decrement subtracts the request value from the budget's current amount.
func (h *Handler) Decrement(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, ErrDecrementValue)
		return
	}
	b, err := h.service.Decrement(r.Context(), chi.URLParam(r, "budgetID"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 11, "Budget updated successfully", b)
}

// CreateTransaction records a transaction against a budget.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, ErrEmptyTransactionFields)
		return
	}
	t, err := h.service.CreateTransaction(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 12, "Creation transaction", t)
}

// DeleteTransaction removes a transaction by id.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 13, "Transaction deleted successfully", nil)
}

// ListTransactions returns the transactions of a budget.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListTransactions(r.Context(), chi.URLParam(r, "budgetID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, 14, "trans found successfully", list)
}
