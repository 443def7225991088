package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterBlocksPerIP(t *testing.T) {
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "hits"}, []string{"path"})
	rl := NewRateLimiter(1, 1, hits)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := rl.Limit(next)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:2000"), "same host on another port shares the limiter")
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"))
	assert.Equal(t, float64(1), testutil.ToFloat64(hits.WithLabelValues("/")))
}

func TestRateLimiterCleanupRemovesIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(time.Hour)
	rl.getLimiter("b")

	removed := rl.CleanupLimiters(30 * time.Minute)

	require.Equal(t, 1, removed)
	_, stillThere := rl.limiters["b"]
	assert.True(t, stillThere)
	_, gone := rl.limiters["a"]
	assert.False(t, gone)
}
