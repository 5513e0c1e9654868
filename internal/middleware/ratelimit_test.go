package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/three-level-auth/internal/config"
	"github.com/iliyamo/three-level-auth/internal/logging"
)

func limiterConfig(strategy string) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    strategy,
		Prefix:         "test:rl",
	}
}

func newLimited(t *testing.T, cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	t.Helper()
	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	mw := RateLimit(cfg, rdb, logging.Nop())
	e.POST("/login", ok, mw)
	e.POST("/SignUp", ok, mw)
	return e
}

func hit(e *echo.Echo, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_Exhausts(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := newLimited(t, limiterConfig("ip_route"), rdb)

	first := hit(e, "/login", "10.0.0.1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, hit(e, "/login", "10.0.0.1").Code)

	denied := hit(e, "/login", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, denied.Code)
	assert.NotEmpty(t, denied.Header().Get("Retry-After"))

	// other routes and other clients have their own buckets
	assert.Equal(t, http.StatusOK, hit(e, "/SignUp", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit(e, "/login", "10.0.0.2").Code)
}

func TestRateLimit_IPStrategySharesBucket(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := newLimited(t, limiterConfig("ip"), rdb)

	assert.Equal(t, http.StatusOK, hit(e, "/login", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit(e, "/SignUp", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(e, "/login", "10.0.0.1").Code)
}

func TestRateLimit_DisabledOrNoRedis(t *testing.T) {
	cfg := limiterConfig("ip")
	e := newLimited(t, cfg, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(e, "/login", "10.0.0.1").Code)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cfg.Enabled = false
	e = newLimited(t, cfg, rdb)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(e, "/login", "10.0.0.1").Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	e := newLimited(t, limiterConfig("ip"), rdb)

	mr.Close()
	for i := 0; i < 4; i++ {
		assert.Equal(t, http.StatusOK, hit(e, "/login", "10.0.0.1").Code)
	}
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/login")

	assert.Equal(t, "p:ip:10.0.0.9", rateKey(config.RateLimitConfig{Prefix: "p", KeyStrategy: "ip"}, c))
	assert.Equal(t, "p:route:POST /login", rateKey(config.RateLimitConfig{Prefix: "p", KeyStrategy: "route"}, c))
	assert.Equal(t, "p:ip:10.0.0.9:route:POST /login", rateKey(config.RateLimitConfig{Prefix: "p", KeyStrategy: "ip_route"}, c))
}
