package budgets

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers budget and transaction endpoints on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/budgetAdd", h.CreateBudget)
	r.Delete("/budgetDelete/{id}", h.DeleteBudget)
	r.Get("/budgetGet/{id}", h.GetBudget)
	r.Get("/getBudgetsByUserID/{id}", h.ListBudgets)
	r.Patch("/budgetUpdate/{budgetID}", h.Increment)
	r.Patch("/budgetAfterdeleteTransUpdate/{budgetID}", h.Decrement)

	r.Post("/transactionAdd", h.CreateTransaction)
	r.Delete("/transactionDelete/{id}", h.DeleteTransaction)
	r.Get("/transactionGet/{budgetID}", h.ListTransactions)
}
