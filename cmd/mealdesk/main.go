package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mealdesk/mealdesk/internal/app"
	"github.com/mealdesk/mealdesk/internal/auth"
	"github.com/mealdesk/mealdesk/internal/dashboard"
	"github.com/mealdesk/mealdesk/internal/entities"
	"github.com/mealdesk/mealdesk/internal/feedback"
	"github.com/mealdesk/mealdesk/internal/meals"
	"github.com/mealdesk/mealdesk/internal/members"
	"github.com/mealdesk/mealdesk/internal/observability"
	"github.com/mealdesk/mealdesk/internal/payments"
	"github.com/mealdesk/mealdesk/internal/platform/cache"
	"github.com/mealdesk/mealdesk/internal/platform/db"
	"github.com/mealdesk/mealdesk/internal/pricing"
	"github.com/mealdesk/mealdesk/internal/rbac"
	"github.com/mealdesk/mealdesk/internal/users"
	"github.com/mealdesk/mealdesk/jobs"

	"github.com/hibiken/asynq"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens, err := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("init token service", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)

	rolesRepo := rbac.NewRepository(pool)
	rolesService := rbac.NewService(rolesRepo)
	rbacMiddleware := rbac.Middleware{Logger: logger, Denials: metrics.RecordDenial}

	entitiesRepo := entities.NewRepository(pool)
	entitiesService := entities.NewService(entitiesRepo)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Warn("init jobs client", slog.Any("error", err))
	}
	var mailer auth.WelcomeMailer
	if jobsClient != nil {
		defer func() {
			if err := jobsClient.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		mailer = jobsClient
	}

	authService := auth.NewService(usersRepo, rolesRepo, entitiesRepo, tokens, mailer)
	authMiddleware := auth.Middleware{Logger: logger, Tokens: tokens, Users: usersRepo, Roles: rolesRepo}
	authHandler := auth.NewHandler(logger, authService, authMiddleware)

	membersRepo := members.NewRepository(pool)
	membersService := members.NewService(membersRepo)

	mealsRepo := meals.NewRepository(pool)
	pricingRepo := pricing.NewRepository(pool)
	pricingService := pricing.NewService(pricingRepo)
	paymentsRepo := payments.NewRepository(pool)
	feedbackRepo := feedback.NewRepository(pool)

	dashboardRepo := dashboard.NewRepository(pool)
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardCache)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		UsersHandler:     users.NewHandler(logger, usersService, rbacMiddleware),
		RolesHandler:     rbac.NewHandler(logger, rolesService, rbacMiddleware),
		EntitiesHandler:  entities.NewHandler(logger, entitiesService, rbacMiddleware),
		MembersHandler:   members.NewHandler(logger, membersService, rbacMiddleware),
		MealsHandler:     meals.NewHandler(logger, mealsRepo, rbacMiddleware),
		PricingHandler:   pricing.NewHandler(logger, pricingService),
		PaymentsHandler:  payments.NewHandler(logger, paymentsRepo, rbacMiddleware),
		FeedbackHandler:  feedback.NewHandler(logger, feedbackRepo, rbacMiddleware),
		DashboardHandler: dashboard.NewHandler(logger, dashboardService),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
