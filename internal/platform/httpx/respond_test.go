package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetly/budgetly/internal/shared"
)

func TestRespondErrorUsesKindStatus(t *testing.T) {
	cases := []struct {
		kind   shared.Kind
		status int
	}{
		{shared.KindValidation, http.StatusBadRequest},
		{shared.KindNotFound, http.StatusNotFound},
		{shared.KindConflict, http.StatusConflict},
		{shared.KindExpired, http.StatusGone},
		{shared.KindAuth, http.StatusUnauthorized},
		{shared.KindDependency, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, shared.NewError(tc.kind, "SOME_CODE", 42, "some message"))

			assert.Equal(t, tc.status, rr.Code)
			var env Envelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
			assert.Equal(t, StatusFailed, env.Status)
			assert.Equal(t, 42, env.Code)
			assert.Equal(t, "SOME_CODE", env.Reason)
			assert.Equal(t, "some message", env.Message)
		})
	}
}

func TestRespondErrorHidesUnclassifiedCause(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, errors.New("pq: password authentication failed for user app"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password authentication")
}

func TestRespondErrorHidesWrappedCause(t *testing.T) {
	rr := httptest.NewRecorder()
	sentinel := shared.NewError(shared.KindDependency, "USER_SAVE_FAILED", 106, "An error occurred while saving the user account")
	RespondError(rr, sentinel.WithCause(errors.New("duplicate key value violates")))

	assert.NotContains(t, rr.Body.String(), "duplicate key")
	assert.Contains(t, rr.Body.String(), "USER_SAVE_FAILED")
}

func TestPendingEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Pending(rr, "Verification email sent")

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"status":"PENDING","message":"Verification email sent"}`, rr.Body.String())
}
