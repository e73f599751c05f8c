package ratelimit

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, store Store, tier Tier, handler fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	limiter := New(store, zap.NewNop())
	app.Get("/limited", limiter.Handle(tier), handler)
	app.Post("/limited", limiter.Handle(tier), handler)
	return app
}

func okHandler(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	tier := Tier{Name: "general", Max: 3, Window: time.Minute, Message: "slow down"}
	app := newTestApp(t, NewMemoryStore(), tier, okHandler)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestLimiterSetsRateHeaders(t *testing.T) {
	tier := Tier{Name: "general", Max: 5, Window: time.Minute, Message: "slow down"}
	app := newTestApp(t, NewMemoryStore(), tier, okHandler)

	resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, "5", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
}

func TestLimiterSkipSuccessfulRefundsWins(t *testing.T) {
	tier := Tier{Name: "auth", Max: 2, Window: time.Minute, SkipSuccessful: true, Message: "too many attempts"}
	app := newTestApp(t, NewMemoryStore(), tier, okHandler)

	// Successful requests are refunded, so far more than Max succeed.
	for i := 0; i < 10; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestLimiterSkipSuccessfulStillCountsFailures(t *testing.T) {
	tier := Tier{Name: "auth", Max: 2, Window: time.Minute, SkipSuccessful: true, Message: "too many attempts"}
	fail := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).SendString("nope")
	}
	app := newTestApp(t, NewMemoryStore(), tier, fail)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestLimiterFailsOpenOnStoreError(t *testing.T) {
	tier := Tier{Name: "general", Max: 1, Window: time.Minute, Message: "slow down"}
	app := newTestApp(t, brokenStore{}, tier, okHandler)

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestRedisStoreWindowExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client)

	ctx := context.Background()
	count, resetAfter, err := store.Incr(ctx, "ratelimit:test:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, resetAfter)

	count, _, err = store.Incr(ctx, "ratelimit:test:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// A new window starts after the key expires.
	mr.FastForward(2 * time.Minute)
	count, _, err = store.Incr(ctx, "ratelimit:test:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreDecr(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client)

	ctx := context.Background()
	_, _, err = store.Incr(ctx, "ratelimit:auth:k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Decr(ctx, "ratelimit:auth:k"))

	count, _, err := store.Incr(ctx, "ratelimit:auth:k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStoreWindowReset(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	count, _, err := store.Incr(ctx, "k", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	time.Sleep(5 * time.Millisecond)
	count, _, err = store.Incr(ctx, "k", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

type brokenStore struct{}

func (brokenStore) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("store down")
}

func (brokenStore) Decr(context.Context, string) error {
	return errors.New("store down")
}
