package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/2beens/familyfit/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRateLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	keys   []string
	err    error
}

func newTestRateLimiter() *testRateLimiter {
	return &testRateLimiter{counts: make(map[string]int)}
}

func (l *testRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}

	l.keys = append(l.keys, key)
	l.counts[key]++
	if l.counts[key] > limit.Rate {
		return &redis_rate.Result{
			Limit:      limit,
			Allowed:    0,
			RetryAfter: 30 * time.Second,
		}, nil
	}
	return &redis_rate.Result{
		Limit:     limit,
		Allowed:   1,
		Remaining: limit.Rate - l.counts[key],
	}, nil
}

func rateLimitedRouter(limiter RequestRateLimiter, metricsManager *metrics.Manager, perMin int) *mux.Router {
	r := mux.NewRouter()
	sub := r.PathPrefix("/dashboard/sessions/{sid}").Subrouter()
	sub.HandleFunc("/weight", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("POST")
	sub.Use(RateLimit(limiter, "test-mutations", perMin, metricsManager))
	return r
}

func TestRateLimit(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	limiter := newTestRateLimiter()
	r := rateLimitedRouter(limiter, metricsManager, 2)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("POST", "/dashboard/sessions/s1/weight", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/dashboard/sessions/s1/weight", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "retry after 30 seconds")
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))

	// other sessions have their own budget
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/dashboard/sessions/s2/weight", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, limiter.keys, 4)
	assert.Equal(t, "test-mutations:s1", limiter.keys[0])
	assert.Equal(t, "test-mutations:s2", limiter.keys[3])
}

func TestRateLimit_limiterError(t *testing.T) {
	limiter := newTestRateLimiter()
	limiter.err = errors.New("redis down")
	r := rateLimitedRouter(limiter, nil, 10)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/dashboard/sessions/s1/weight", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"rate limit internal error"}`, rr.Body.String())
}
