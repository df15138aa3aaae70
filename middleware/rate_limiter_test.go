package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, perMin int, trusted []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trusted))
	r.Use(RateLimitMiddleware(perMin))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func call(r *gin.Engine, remote, xff string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newLimitedRouter(t, 2, nil)

	assert.Equal(t, http.StatusOK, call(r, "10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusOK, call(r, "10.0.0.1:5001", ""))
	assert.Equal(t, http.StatusTooManyRequests, call(r, "10.0.0.1:5002", ""))
	assert.Equal(t, http.StatusOK, call(r, "10.0.0.2:5000", ""), "limits are per IP")
}

func TestRateLimitMiddleware_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := newLimitedRouter(t, 2, nil)

	assert.Equal(t, http.StatusOK, call(r, "203.0.113.9:5000", "1.1.1.1"))
	assert.Equal(t, http.StatusOK, call(r, "203.0.113.9:5000", "2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, call(r, "203.0.113.9:5000", "3.3.3.3"))
}

func TestRateLimitMiddleware_HonoursForwardedForFromTrustedProxy(t *testing.T) {
	r := newLimitedRouter(t, 1, []string{"10.0.0.0/8"})

	assert.Equal(t, http.StatusOK, call(r, "10.0.0.5:5000", "1.1.1.1"))
	assert.Equal(t, http.StatusOK, call(r, "10.0.0.5:5000", "2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, call(r, "10.0.0.5:5000", "1.1.1.1"))
}

func TestRateLimiterStore_EvictsIdleLimiters(t *testing.T) {
	s := newRateLimiterStore(10)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	s.lastSweep = now

	for i := 0; i < 50; i++ {
		s.getLimiter("198.51.100." + strconv.Itoa(i))
	}
	assert.Equal(t, 50, s.size())

	now = now.Add(limiterIdleTTL / 2)
	s.getLimiter("198.51.100.0")

	now = now.Add(limiterIdleTTL / 2)
	s.getLimiter("192.0.2.1")

	// Only the recently seen IP and the newcomer remain.
	assert.Equal(t, 2, s.size())
}
