package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/careerlaunchpad/api/internal/observability"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// MiddlewareConfig carries the cross-cutting request settings.
type MiddlewareConfig struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	RequestTimeout time.Duration
	CORSOrigin     string
	ExposeErrors   bool
}

// RegisterMiddlewares attaches the global middleware chain. Order matters:
// CORS answers preflights first, the request logger observes the final
// status, and the error handler converts failures before the logger reads
// the response.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: cfg.CORSOrigin != "*",
	}))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandling(cfg.Logger, cfg.Metrics, cfg.ExposeErrors))
	if cfg.RequestTimeout > 0 {
		app.Use(requestTimeout(cfg.RequestTimeout))
	}
}

// requestTimeout bounds each request with a deadline so a stalled backend
// cannot pin the connection forever. Only registered for a positive
// timeout; zero means unbounded, not already-expired.
func requestTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandling converts handler errors and panics into the uniform
// {success:false, message} envelope. Internal details are only surfaced
// when exposeErrors is set (development).
func errorHandling(logger *zap.Logger, metrics *observability.Metrics, exposeErrors bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("path", c.Path()),
					zap.Any("panic", r),
				)
				metrics.RecordError(c.Path(), c.Method(), "INTERNAL_ERROR")
				err = writeError(c, apperrors.NewInternalError(fmt.Errorf("panic: %v", r)), exposeErrors)
			}
		}()

		if err = c.Next(); err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				err = apperrors.NewDomainError("HTTP_ERROR", fe.Message, fe.Code, nil)
			}
			domainErr := apperrors.ToDomainError(err)
			metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
				logger.Error("request failed",
					zap.String("path", c.Path()),
					zap.String("code", domainErr.Code),
					zap.Error(err),
				)
			}
			err = writeError(c, domainErr, exposeErrors)
		}
		return err
	}
}

func writeError(c *fiber.Ctx, err error, exposeErrors bool) error {
	domainErr := apperrors.ToDomainError(err)

	body := fiber.Map{
		"success": false,
		"message": domainErr.Message,
		"code":    domainErr.Code,
	}
	if len(domainErr.Details) > 0 {
		body["errors"] = domainErr.Details
	}
	if exposeErrors && domainErr.Err != nil {
		body["error"] = domainErr.Err.Error()
	}
	return c.Status(domainErr.HTTPStatus).JSON(body)
}
