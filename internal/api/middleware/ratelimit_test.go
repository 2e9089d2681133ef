package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func limitedHandler(rl *RateLimiter) http.Handler {
	return rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(t *testing.T, h http.Handler, userID, addr string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/prompts", nil)
	req.RemoteAddr = addr
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterExhaustsBurst(t *testing.T) {
	rl := NewRateLimiter(0, 3)
	defer rl.Stop()
	h := limitedHandler(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(t, h, "u1", "10.0.0.1:1234"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(t, h, "u1", "10.0.0.1:1234"))
}

func TestRateLimiterKeysByUser(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	defer rl.Stop()
	h := limitedHandler(rl)

	// Two users behind the same address get separate buckets.
	assert.Equal(t, http.StatusOK, hit(t, h, "u1", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, hit(t, h, "u1", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, hit(t, h, "u2", "10.0.0.1:1234"))

	// Without the header the address is the bucket key.
	assert.Equal(t, http.StatusOK, hit(t, h, "", "10.0.0.2:1234"))
	assert.Equal(t, http.StatusTooManyRequests, hit(t, h, "", "10.0.0.2:1234"))
	assert.Equal(t, http.StatusOK, hit(t, h, "", "10.0.0.3:1234"))
}

func TestRateLimiterStop(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	rl.Stop()
	// A stopped limiter still answers; only the cleanup loop is gone.
	assert.Equal(t, http.StatusOK, hit(t, limitedHandler(rl), "u1", "10.0.0.1:1234"))
}
