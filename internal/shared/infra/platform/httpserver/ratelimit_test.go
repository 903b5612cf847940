package httpserver

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(l *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(3, time.Minute)
	l.now = func() time.Time { return now }
	r := newLimitedRouter(l)

	for i := 0; i < 3; i++ {
		rec := do(r, http.MethodGet, "/x", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, []string{"2", "1", "0"}[i], rec.Header().Get("X-RateLimit-Remaining"))
	}

	rec := do(r, http.MethodGet, "/x", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	// Un token cada 20s.
	assert.Equal(t, "20", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{
		"error": "Too Many Requests",
		"message": "Rate limit exceeded. Please try again in 20 seconds.",
		"statusCode": 429,
		"limit": 3,
		"remaining": 0,
		"retryAfter": 20
	}`, rec.Body.String())

	// Pasada la reposición de un token vuelve a aceptar.
	now = now.Add(20 * time.Second)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
}

func TestRateLimiter_PerClient(t *testing.T) {
	l := NewRateLimiter(1, time.Minute)
	r := newLimitedRouter(l)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", map[string]string{"X-Forwarded-For": "10.0.0.1"}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", map[string]string{"X-Forwarded-For": "10.0.0.2"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/x", map[string]string{"X-Forwarded-For": "10.0.0.1"}).Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, time.Minute)
	l.limiterFor("a", now)
	l.limiterFor("b", now.Add(2*time.Minute))

	l.evictIdle(now.Add(2 * time.Minute))

	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "b")
}

func TestRateLimiter_HardCapEvictsLeastRecentlySeen(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, time.Minute)
	l.maxClients = 3

	l.limiterFor("a", now)
	l.limiterFor("b", now.Add(time.Second))
	l.limiterFor("c", now.Add(2*time.Second))
	// "a" vuelve y pasa a ser el más reciente.
	l.limiterFor("a", now.Add(3*time.Second))

	// Todos activos: entra "d" y sale "b".
	l.limiterFor("d", now.Add(4*time.Second))

	assert.Len(t, l.clients, 3)
	assert.Equal(t, 3, l.order.Len())
	assert.NotContains(t, l.clients, "b")
	assert.Contains(t, l.clients, "a")
	assert.Contains(t, l.clients, "c")
	assert.Contains(t, l.clients, "d")
}

func TestRateLimiter_NeverExceedsCap(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(5, time.Minute)
	l.maxClients = 10

	for i := 0; i < 100; i++ {
		l.limiterFor(fmt.Sprintf("10.0.0.%d", i), now)
	}

	assert.Len(t, l.clients, 10)
	assert.Equal(t, 10, l.order.Len())
	assert.Contains(t, l.clients, "10.0.0.99")
	assert.NotContains(t, l.clients, "10.0.0.89")
}

func TestRateLimiter_EvictedClientStartsWithFullBucket(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, time.Minute)
	l.maxClients = 1

	require.True(t, l.limiterFor("a", now).AllowN(now, 1))
	require.False(t, l.limiterFor("a", now).AllowN(now, 1))

	l.limiterFor("b", now)
	assert.True(t, l.limiterFor("a", now).AllowN(now, 1))
}
