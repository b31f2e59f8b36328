package budgets

import "github.com/budgetly/budgetly/internal/shared"

var (
	ErrEmptyBudgetFields = shared.NewError(shared.KindValidation, "EMPTY_FIELDS", 601, "Empty input fields")
	ErrBudgetAmount      = shared.NewError(shared.KindValidation, "INVALID_AMOUNT", 602, "Amount must be a positive value")
	ErrBudgetExists      = shared.NewError(shared.KindConflict, "DUPLICATE_BUDGET", 603, "A budget with the same name already exists")
	ErrBudgetSave        = shared.NewError(shared.KindDependency, "BUDGET_SAVE_FAILED", 604, "An error occurred while saving budget")
	ErrBudgetLookup      = shared.NewError(shared.KindDependency, "BUDGET_LOOKUP_FAILED", 605, "An error occurred while checking for an existing budget")
	ErrBudgetUserID      = shared.NewError(shared.KindValidation, "MALFORMED_USER_ID", 606, "Invalid user ID")

	ErrDeleteBudgetID     = shared.NewError(shared.KindValidation, "MALFORMED_BUDGET_ID", 701, "Invalid budget ID")
	ErrDeleteBudgetAbsent = shared.NewError(shared.KindNotFound, "BUDGET_NOT_FOUND", 702, "Budget not found")
	ErrDeleteBudget       = shared.NewError(shared.KindDependency, "BUDGET_DELETE_FAILED", 703, "An error occurred while deleting the budget")

	ErrGetBudgetID     = shared.NewError(shared.KindValidation, "MALFORMED_BUDGET_ID", 801, "Invalid budget ID")
	ErrGetBudgetAbsent = shared.NewError(shared.KindNotFound, "BUDGET_NOT_FOUND", 802, "Budget not found")
	ErrGetBudget       = shared.NewError(shared.KindDependency, "BUDGET_LOOKUP_FAILED", 803, "An error occurred while retrieving the budget")

	ErrListUserID  = shared.NewError(shared.KindValidation, "MALFORMED_USER_ID", 901, "Invalid user ID")
	ErrListEmpty   = shared.NewError(shared.KindNotFound, "BUDGETS_NOT_FOUND", 902, "Budgets not found")
	ErrListBudgets = shared.NewError(shared.KindDependency, "BUDGET_LOOKUP_FAILED", 903, "An error occurred while retrieving the budgets")

	ErrIncrementValue  = shared.NewError(shared.KindValidation, "INVALID_VALUE", 1001, "Invalid value provided")
	ErrIncrementAbsent = shared.NewError(shared.KindNotFound, "BUDGET_NOT_FOUND", 1002, "Budget not found")
	ErrIncrement       = shared.NewError(shared.KindDependency, "BUDGET_UPDATE_FAILED", 1003, "An error occurred while updating the budget")
	ErrIncrementID     = shared.NewError(shared.KindValidation, "MALFORMED_BUDGET_ID", 1005, "Invalid budget ID")

	ErrDecrementValue  = shared.NewError(shared.KindValidation, "INVALID_VALUE", 1101, "Invalid value provided")
	ErrDecrementAbsent = shared.NewError(shared.KindNotFound, "BUDGET_NOT_FOUND", 1102, "Budget not found")
	ErrDecrement       = shared.NewError(shared.KindDependency, "BUDGET_UPDATE_FAILED", 1103, "An error occurred while updating the budget")
	ErrDecrementID     = shared.NewError(shared.KindValidation, "MALFORMED_BUDGET_ID", 1105, "Invalid budget ID")

	ErrEmptyTransactionFields = shared.NewError(shared.KindValidation, "EMPTY_FIELDS", 1201, "Empty input fields")
	ErrTransactionAmount      = shared.NewError(shared.KindValidation, "INVALID_AMOUNT", 1202, "Amount must be a positive value")
	ErrTransactionBudget      = shared.NewError(shared.KindValidation, "INVALID_BUDGET", 1203, "Select a valid Budget")
	ErrTransactionSave        = shared.NewError(shared.KindDependency, "TRANSACTION_SAVE_FAILED", 1204, "An error occurred while saving transaction")
	ErrTransactionBudgetID    = shared.NewError(shared.KindValidation, "MALFORMED_BUDGET_ID", 1205, "Invalid budget ID")

	ErrDeleteTransactionID     = shared.NewError(shared.KindValidation, "MALFORMED_TRANSACTION_ID", 1301, "Invalid trans ID")
	ErrDeleteTransactionAbsent = shared.NewError(shared.KindNotFound, "TRANSACTION_NOT_FOUND", 1302, "Trans not found")
	ErrDeleteTransaction       = shared.NewError(shared.KindDependency, "TRANSACTION_DELETE_FAILED", 1303, "An error occurred while deleting the transaction")

	ErrListTransactionsID = shared.NewError(shared.KindValidation, "MALFORMED_BUDGET_ID", 1401, "Invalid budget ID")
	ErrListTransactions   = shared.NewError(shared.KindDependency, "TRANSACTION_LOOKUP_FAILED", 1403, "An error occurred while retrieving the trans")
)
