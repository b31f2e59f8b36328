package budgets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetly/budgetly/internal/platform/httpx"
)

func newTestRouter() http.Handler {
	svc, _ := newTestService()
	r := chi.NewRouter()
	r.Route("/user", NewHandler(nil, svc).MountRoutes)
	return r
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, httpx.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr.Code, env
}

func TestBudgetRoutes(t *testing.T) {
	h := newTestRouter()
	userID := uuid.NewString()

	status, env := call(t, h, http.MethodPost, "/user/budgetAdd",
		`{"userID":"`+userID+`","name":"Travel","amount":900,"description":"summer"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 6, env.Code)
	created := env.Data.(map[string]any)
	budgetID := created["id"].(string)

	status, env = call(t, h, http.MethodPatch, "/user/budgetUpdate/"+budgetID, `{"value":"120"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 10, env.Code)
	assert.InDelta(t, 120, env.Data.(map[string]any)["current"].(float64), 1e-9)

	status, env = call(t, h, http.MethodPatch, "/user/budgetAfterdeleteTransUpdate/"+budgetID, `{"value":20}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 11, env.Code)
	assert.InDelta(t, 100, env.Data.(map[string]any)["current"].(float64), 1e-9)

	status, env = call(t, h, http.MethodGet, "/user/getBudgetsByUserID/"+userID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, env.Data, 1)

	status, env = call(t, h, http.MethodPost, "/user/transactionAdd",
		`{"budgetID":"`+budgetID+`","name":"Flight","amount":300,"description":"return"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 12, env.Code)

	status, env = call(t, h, http.MethodGet, "/user/transactionGet/"+budgetID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 14, env.Code)
	assert.Len(t, env.Data, 1)

	status, env = call(t, h, http.MethodDelete, "/user/budgetDelete/"+budgetID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 7, env.Code)

	status, env = call(t, h, http.MethodGet, "/user/budgetGet/"+budgetID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 802, env.Code)
}

func TestBudgetRoutesRejectMalformedIDs(t *testing.T) {
	h := newTestRouter()

	status, env := call(t, h, http.MethodDelete, "/user/budgetDelete/64f1c0ffee", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 701, env.Code)

	status, env = call(t, h, http.MethodDelete, "/user/transactionDelete/64f1c0ffee", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 1301, env.Code)

	status, env = call(t, h, http.MethodPatch, "/user/budgetUpdate/"+uuid.NewString(), `{"value":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 1001, env.Code)
}
