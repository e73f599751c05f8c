package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/careerlaunchpad/api/internal/domain"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// IdentityFetcher loads the full identity record for capability checks.
type IdentityFetcher interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RequireCapability fetches the caller's fresh role and checks the static
// capability table. The token payload is not trusted for role data.
func RequireCapability(users IdentityFetcher, cap domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}

		user, err := users.GetByID(c.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("account not found")
			}
			return apperrors.MapError(err)
		}

		perms, err := domain.RolePermissions(user.Role)
		if err != nil {
			return apperrors.NewForbidden("unknown role")
		}
		if !perms.Allows(cap) {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}
