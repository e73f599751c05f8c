package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careerlaunchpad/api/internal/api/http/handlers"
	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/domain"
	"github.com/careerlaunchpad/api/internal/ratelimit"
	"github.com/careerlaunchpad/api/internal/repository"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// RouterConfig bundles everything route registration needs.
type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	UsersHandler     *handlers.UsersHandler
	DashboardHandler *handlers.DashboardHandler
	AIHandler        *handlers.AIHandler
	HealthHandler    *handlers.HealthHandler

	AuthMiddleware *auth.Middleware
	UserRepo       repository.UserRepository

	Limiter     *ratelimit.Limiter
	GeneralTier ratelimit.Tier
	AuthTier    ratelimit.Tier
	AITier      ratelimit.Tier
}

// RegisterRoutes mounts the public surface under /api/v1. Health probes stay
// outside the rate-limited group so orchestrators are never throttled.
func RegisterRoutes(app *fiber.App, cfg RouterConfig) {
	app.Get("/health", cfg.HealthHandler.Status)
	app.Get("/health/ready", cfg.HealthHandler.Ready)

	api := app.Group("/api/v1", cfg.Limiter.Handle(cfg.GeneralTier))

	// Credential-bearing endpoints carry the strict tier on top of the
	// general one; successful requests are refunded.
	authLimit := cfg.Limiter.Handle(cfg.AuthTier)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authLimit, cfg.AuthHandler.Register)
	authGroup.Post("/login", authLimit, cfg.AuthHandler.Login)
	authGroup.Post("/refresh-token", cfg.AuthHandler.Refresh)
	authGroup.Post("/logout", cfg.AuthHandler.Logout)
	authGroup.Post("/forgot-password", authLimit, cfg.AuthHandler.ForgotPassword)
	authGroup.Post("/reset-password", authLimit, cfg.AuthHandler.ResetPassword)
	authGroup.Get("/verify-email/:token", cfg.AuthHandler.VerifyEmail)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/profile", cfg.UsersHandler.GetProfile)
	users.Put("/profile", cfg.UsersHandler.UpdateProfile)

	api.Get("/dashboard", cfg.AuthMiddleware.Handle, cfg.DashboardHandler.Get)

	aiGroup := api.Group("/ai",
		cfg.AuthMiddleware.Handle,
		auth.RequireCapability(cfg.UserRepo, domain.CapAccessAI),
		cfg.Limiter.Handle(cfg.AITier),
	)
	aiGroup.Post("/chat", cfg.AIHandler.Chat)
	aiGroup.Post("/career-advice", cfg.AIHandler.CareerAdvice)
	aiGroup.Post("/analyze-resume", cfg.AIHandler.AnalyzeResume)
	aiGroup.Post("/generate-cover-letter", cfg.AIHandler.GenerateCoverLetter)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("route", map[string]any{"path": c.Path()})
	})
}
