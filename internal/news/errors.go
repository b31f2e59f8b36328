package news

import "github.com/budgetly/budgetly/internal/shared"

var (
	ErrMissingFields = shared.NewError(shared.KindValidation, "EMPTY_FIELDS", 1501, "Name and link are required")
	ErrInvalidLink   = shared.NewError(shared.KindValidation, "INVALID_LINK", 1502, "Link must be an absolute http(s) URL")
	ErrCreate        = shared.NewError(shared.KindDependency, "NEWS_SAVE_FAILED", 1503, "An error occurred while saving the news item")

	ErrDeleteAbsent = shared.NewError(shared.KindNotFound, "NEWS_NOT_FOUND", 1601, "News item not found")
	ErrDeleteID     = shared.NewError(shared.KindValidation, "MALFORMED_NEWS_ID", 1602, "Invalid news ID")
	ErrDelete       = shared.NewError(shared.KindDependency, "NEWS_DELETE_FAILED", 1603, "An error occurred while deleting the news item")

	ErrList = shared.NewError(shared.KindDependency, "NEWS_LOOKUP_FAILED", 1701, "An error occurred while retrieving the news")
)
