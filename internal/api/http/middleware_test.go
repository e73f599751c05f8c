package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careerlaunchpad/api/internal/observability"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

func middlewareApp(t *testing.T, timeout time.Duration) (*fiber.App, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:         zap.NewNop(),
		Metrics:        metrics,
		RequestTimeout: timeout,
		CORSOrigin:     "*",
	})
	return app, metrics
}

func TestZeroRequestTimeoutMeansUnbounded(t *testing.T) {
	app, _ := middlewareApp(t, 0)
	app.Get("/ping", func(c *fiber.Ctx) error {
		if err := c.UserContext().Err(); err != nil {
			return apperrors.NewInternalError(err)
		}
		if _, bounded := c.UserContext().Deadline(); bounded {
			return apperrors.NewInternalError(nil)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPositiveRequestTimeoutSetsDeadline(t *testing.T) {
	app, _ := middlewareApp(t, 5*time.Second)
	app.Get("/ping", func(c *fiber.Ctx) error {
		if _, bounded := c.UserContext().Deadline(); !bounded {
			return apperrors.NewInternalError(nil)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerErrorsAreCounted(t *testing.T) {
	app, metrics := middlewareApp(t, time.Second)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewBadRequest("bad input")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int64(1), metrics.ErrorCount("/boom", http.MethodGet, "BAD_REQUEST"))
}

func TestPanicsAreCounted(t *testing.T) {
	app, metrics := middlewareApp(t, time.Second)
	app.Get("/kaboom", func(c *fiber.Ctx) error {
		panic("backend gone")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/kaboom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int64(1), metrics.ErrorCount("/kaboom", http.MethodGet, "INTERNAL_ERROR"))
}
