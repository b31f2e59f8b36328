// Package budgets manages budgets and the transactions recorded against them.
// A budget's current amount is moved by explicit increment and decrement
// calls; it is not derived from its transactions.
package budgets

import (
	"time"

	"github.com/google/uuid"
)

// Budget is a spending envelope owned by a user.
type Budget struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"userID" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Current     float64   `json:"current" db:"current"`
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Transaction is a single expense recorded against a budget.
type Transaction struct {
	ID            uuid.UUID `json:"id" db:"id"`
	BudgetID      uuid.UUID `json:"budgetID" db:"budget_id"`
	Name          string    `json:"name" db:"name"`
	Amount        float64   `json:"amount" db:"amount"`
	CurrentAmount float64   `json:"currentAmount" db:"current_amount"`
	Description   string    `json:"description" db:"description"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
