package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/budgetly/budgetly/internal/observability"
	"github.com/budgetly/budgetly/jobs"
)

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:4000"
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterOperationalEndpoints(t *testing.T) {
	metrics := observability.NewMetrics()
	router := NewRouter(RouterParams{
		Config:     &Config{RateLimitPerMinute: 100},
		Metrics:    metrics,
		JobHandler: jobs.NewHandler(nil, nil),
		Probes: map[string]Probe{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return nil },
		},
	})

	rr := serve(router, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/readyz").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/jobs/health").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/static/css/app.css").Code)

	rr = serve(router, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `budgetly_http_requests_total{code="200",route="/healthz"}`)
}

func TestReadinessFailsWhenAnyProbeFails(t *testing.T) {
	router := NewRouter(RouterParams{
		Config: &Config{RateLimitPerMinute: 100},
		Probes: map[string]Probe{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		},
	})

	rr := serve(router, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rr.Body.String())
}

func TestRateLimitReturnsEnvelope(t *testing.T) {
	router := NewRouter(RouterParams{Config: &Config{RateLimitPerMinute: 2}})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz").Code)
	}
	rr := serve(router, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "RATE_LIMITED")
}
