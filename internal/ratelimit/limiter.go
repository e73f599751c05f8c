package ratelimit

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// Tier configures one fixed-window limit. SkipSuccessful exempts requests
// that complete below 400 from counting, so legitimate retry-after-typo
// behavior is tolerated while failed attempts still burn the budget.
type Tier struct {
	Name           string
	Max            int
	Window         time.Duration
	SkipSuccessful bool
	Message        string
}

// Limiter applies fixed-window limits keyed by tier and client address.
type Limiter struct {
	store  Store
	logger *zap.Logger
}

// New builds a limiter over the given window store.
func New(store Store, logger *zap.Logger) *Limiter {
	return &Limiter{store: store, logger: logger}
}

// Handle enforces the tier for each request. Store failures fail open: a
// broken Redis must not take the API down with it.
func (l *Limiter) Handle(tier Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ratelimit:" + tier.Name + ":" + c.IP()

		count, resetAfter, err := l.store.Incr(c.UserContext(), key, tier.Window)
		if err != nil {
			l.logger.Warn("rate limit store unavailable", zap.String("tier", tier.Name), zap.Error(err))
			return c.Next()
		}

		remaining := int64(tier.Max) - count
		if remaining < 0 {
			remaining = 0
		}
		resetSeconds := int(resetAfter.Round(time.Second).Seconds())
		c.Set("X-RateLimit-Limit", strconv.Itoa(tier.Max))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.Itoa(resetSeconds))

		if count > int64(tier.Max) {
			c.Set("Retry-After", strconv.Itoa(resetSeconds))
			return apperrors.NewRateLimited(tier.Message)
		}

		err = c.Next()
		if tier.SkipSuccessful && err == nil && c.Response().StatusCode() < fiber.StatusBadRequest {
			if decrErr := l.store.Decr(c.UserContext(), key); decrErr != nil {
				l.logger.Warn("rate limit refund failed", zap.String("tier", tier.Name), zap.Error(decrErr))
			}
		}
		return err
	}
}
