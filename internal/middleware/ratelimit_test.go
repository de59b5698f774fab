package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimiterHandle_BlocksWithinWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Now()
	limiter := &rateLimiter{
		window:        10 * time.Second,
		limiters:      make(map[string]*limiterEntry),
		sweepInterval: 10 * time.Second,
		now: func() time.Time {
			return now
		},
	}

	c1, _ := gin.CreateTestContext(httptest.NewRecorder())
	c1.Request = httptest.NewRequest("POST", "/api/register", nil)
	limiter.handle(c1)
	require.False(t, c1.IsAborted())

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest("POST", "/api/register", nil)
	limiter.handle(c2)
	require.True(t, c2.IsAborted())
	require.Equal(t, http.StatusTooManyRequests, w2.Code)

	now = now.Add(11 * time.Second)
	c3, _ := gin.CreateTestContext(httptest.NewRecorder())
	c3.Request = httptest.NewRequest("POST", "/api/register", nil)
	limiter.handle(c3)
	require.False(t, c3.IsAborted())
}

func TestRateLimiterCleanupExpiredLocked_RemovesExpiredEntries(t *testing.T) {
	base := time.Now()
	limiter := &rateLimiter{
		window:        10 * time.Second,
		limiters:      make(map[string]*limiterEntry),
		sweepInterval: 10 * time.Second,
		now:           time.Now,
	}
	limiter.limiters["expired"] = &limiterEntry{limiter: rate.NewLimiter(rate.Every(10*time.Second), 1), lastSeen: base.Add(-20 * time.Second)}
	limiter.limiters["active"] = &limiterEntry{limiter: rate.NewLimiter(rate.Every(10*time.Second), 1), lastSeen: base.Add(-2 * time.Second)}

	limiter.mu.Lock()
	limiter.cleanupExpiredLocked(base)
	limiter.mu.Unlock()

	require.NotContains(t, limiter.limiters, "expired")
	require.Contains(t, limiter.limiters, "active")
	require.False(t, limiter.lastSweep.IsZero())
}

func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/login", nil)
	RateLimit(0)(c)
	require.False(t, c.IsAborted())
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	limiter := &rateLimiter{
		window:        time.Minute,
		limiters:      make(map[string]*limiterEntry),
		sweepInterval: 10 * time.Minute,
		now:           func() time.Time { return now },
	}
	require.True(t, limiter.allow("1.1.1.1|0|/api/login", now))
	require.False(t, limiter.allow("1.1.1.1|0|/api/login", now.Add(30*time.Second)))
	require.True(t, limiter.allow("1.1.1.1|0|/api/register", now.Add(30*time.Second)))
	require.True(t, limiter.allow("2.2.2.2|0|/api/login", now.Add(30*time.Second)))
	require.True(t, limiter.allow("1.1.1.1|0|/api/login", now.Add(61*time.Second)))
}
