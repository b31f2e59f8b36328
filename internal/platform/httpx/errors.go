package httpx

import (
	"errors"
	"net/http"

	"github.com/budgetly/budgetly/internal/shared"
)

// StatusFor maps an outcome kind to its HTTP status.
func StatusFor(kind shared.Kind) int {
	switch kind {
	case shared.KindValidation:
		return http.StatusBadRequest
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindConflict:
		return http.StatusConflict
	case shared.KindExpired:
		return http.StatusGone
	case shared.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes a FAILED envelope for err. Errors that are not
// shared.Error values are reported without detail.
func RespondError(w http.ResponseWriter, err error) {
	var outcome *shared.Error
	if !errors.As(err, &outcome) {
		JSON(w, http.StatusInternalServerError, Envelope{
			Status:  StatusFailed,
			Reason:  string(shared.KindDependency),
			Message: "An internal error occurred",
		})
		return
	}
	JSON(w, StatusFor(outcome.Kind), Envelope{
		Status:  StatusFailed,
		Code:    outcome.Number,
		Reason:  outcome.Code,
		Message: outcome.Message,
	})
}
