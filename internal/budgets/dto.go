package budgets

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CreateBudgetRequest is the body of POST /budgetAdd.
type CreateBudgetRequest struct {
	UserID      string  `json:"userID"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// CreateTransactionRequest is the body of POST /transactionAdd.
type CreateTransactionRequest struct {
	BudgetID    string  `json:"budgetID"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// AdjustRequest carries the amount to move a budget's current value by. The
// value may arrive as a JSON number or a numeric string.
type AdjustRequest struct {
	Value json.RawMessage `json:"value"`
}

// Amount parses Value. Missing, zero and non-numeric values are rejected.
func (r AdjustRequest) Amount() (float64, bool) {
	raw := bytes.TrimSpace(r.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	}
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
