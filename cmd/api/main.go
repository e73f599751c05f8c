package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/careerlaunchpad/api/internal/ai"
	apihttp "github.com/careerlaunchpad/api/internal/api/http"
	"github.com/careerlaunchpad/api/internal/api/http/handlers"
	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/config"
	"github.com/careerlaunchpad/api/internal/events"
	"github.com/careerlaunchpad/api/internal/observability"
	"github.com/careerlaunchpad/api/internal/persistence"
	"github.com/careerlaunchpad/api/internal/ratelimit"
	"github.com/careerlaunchpad/api/internal/repository"
	"github.com/careerlaunchpad/api/internal/service"
	"github.com/careerlaunchpad/api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	cache := persistence.NewCache(redisStore, logger, cfg.Redis.CacheTTL())
	metrics := observability.NewMetrics()

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	actionTokenRepo := repository.NewActionTokenRepository(pg.PoolHandle())
	statsRepo := repository.NewStatsRepository(pg.PoolHandle())

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, service.NewLogMailer(logger), logger)
	worker.StartNotificationWorker(notifications)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:        userRepo,
		ActionTokenRepo: actionTokenRepo,
		Dispatcher:      dispatcher,
	})
	userService := service.NewUserService(userRepo)
	statsService := service.NewStatsService(statsRepo)
	aiService := service.NewAIService(ai.NewClient(cfg.AI), cache)

	authMiddleware := auth.NewMiddleware(authService.Tokens())

	var limiterStore ratelimit.Store
	if redisStore.Client != nil {
		limiterStore = ratelimit.NewRedisStore(redisStore.Client)
	} else {
		limiterStore = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(limiterStore, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.IsDevelopment(),
		ReadTimeout:           cfg.App.RequestTimeout(),
	})

	apihttp.RegisterMiddlewares(app, apihttp.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		CORSOrigin:     cfg.CORS.Origin,
		ExposeErrors:   cfg.App.IsDevelopment(),
	})

	apihttp.RegisterRoutes(app, apihttp.RouterConfig{
		AuthHandler:      handlers.NewAuthHandler(authService),
		UsersHandler:     handlers.NewUsersHandler(userService),
		DashboardHandler: handlers.NewDashboardHandler(userRepo, statsService),
		AIHandler:        handlers.NewAIHandler(aiService),
		HealthHandler:    handlers.NewHealthHandler(pg, redisStore),
		AuthMiddleware:   authMiddleware,
		UserRepo:         userRepo,
		Limiter:          limiter,
		GeneralTier: ratelimit.Tier{
			Name:    "general",
			Max:     cfg.RateLimit.General.Max,
			Window:  cfg.RateLimit.General.Window(),
			Message: "Too many requests, please try again later",
		},
		AuthTier: ratelimit.Tier{
			Name:           "auth",
			Max:            cfg.RateLimit.Auth.Max,
			Window:         cfg.RateLimit.Auth.Window(),
			SkipSuccessful: true,
			Message:        "Too many authentication attempts, please try again later",
		},
		AITier: ratelimit.Tier{
			Name:    "ai",
			Max:     cfg.RateLimit.AI.Max,
			Window:  cfg.RateLimit.AI.Window(),
			Message: "AI request limit reached, please try again later",
		},
	})

	go func() {
		logger.Info("starting http server",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.String("version", cfg.App.Version),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
