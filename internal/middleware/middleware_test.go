package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/api/v1/health", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/v1/whoami", func(c fiber.Ctx) error { return c.SendString(Device(c)) })
	return app
}

func do(t *testing.T, app *fiber.App, path, auth string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp(AuthMiddleware("/api/v1/health", "/swagger"))

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"public path", "/api/v1/health", "", http.StatusOK},
		{"missing header", "/api/v1/whoami", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/v1/whoami", "Basic abc", http.StatusUnauthorized},
		{"empty token", "/api/v1/whoami", "Bearer   ", http.StatusUnauthorized},
		{"valid token", "/api/v1/whoami", "Bearer living-room-tv", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := do(t, app, tt.path, tt.auth)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuthStoresDeviceKey(t *testing.T) {
	app := newApp(AuthMiddleware())

	_, body := do(t, app, "/api/v1/whoami", "Bearer living-room-tv")
	assert.Equal(t, DeviceKey("living-room-tv"), body)
	assert.Len(t, body, 64)
	assert.NotEqual(t, DeviceKey("bedroom-tv"), body)
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	app := newApp(AuthMiddleware("/api/v1/health"), NewRateLimiter(rdb, 2, time.Minute).Handler())

	resp, _ := do(t, app, "/api/v1/whoami", "Bearer a")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Remaining"))

	resp, _ = do(t, app, "/api/v1/whoami", "Bearer a")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, "/api/v1/whoami", "Bearer a")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// another device has its own window
	resp, _ = do(t, app, "/api/v1/whoami", "Bearer b")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mr.FastForward(time.Minute + time.Second)
	resp, _ = do(t, app, "/api/v1/whoami", "Bearer a")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiterRestoresLostExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	key := "ratelimit:" + DeviceKey("a")
	require.NoError(t, mr.Set(key, "5"))
	require.Zero(t, mr.TTL(key))

	app := newApp(AuthMiddleware("/api/v1/health"), NewRateLimiter(rdb, 2, time.Minute).Handler())
	resp, _ := do(t, app, "/api/v1/whoami", "Bearer a")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	resp, _ = do(t, app, "/api/v1/whoami", "Bearer a")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	app := newApp(NewRateLimiter(rdb, 1, time.Minute).Handler())
	for i := 0; i < 3; i++ {
		resp, _ := do(t, app, "/api/v1/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRateLimiterWithoutRedis(t *testing.T) {
	app := newApp(NewRateLimiter(nil, 1, time.Minute).Handler())
	for i := 0; i < 3; i++ {
		resp, _ := do(t, app, "/api/v1/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
