package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/dashboard"
	"github.com/careerlaunchpad/api/internal/domain"
	"github.com/careerlaunchpad/api/internal/repository"
	"github.com/careerlaunchpad/api/internal/service"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// DashboardHandler composes the role-specific dashboard document. The role is
// read from storage on every request, never from the token.
type DashboardHandler struct {
	users repository.UserRepository
	stats service.StatsProvider
}

func NewDashboardHandler(users repository.UserRepository, stats service.StatsProvider) *DashboardHandler {
	return &DashboardHandler{users: users, stats: stats}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	user, err := h.users.GetByID(c.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.MapError(err)
	}

	stats, err := h.stats.StatsFor(c.Context(), user)
	if err != nil {
		return apperrors.MapError(err)
	}

	doc, err := dashboard.Compose(user, stats)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			return apperrors.NewDomainError("UNKNOWN_ROLE", "account role is not recognized", http.StatusInternalServerError, nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    doc,
	})
}
