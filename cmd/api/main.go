package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/scaffold-report-service/internal/api/http"
	"github.com/spec-kit/scaffold-report-service/internal/api/http/handlers"
	"github.com/spec-kit/scaffold-report-service/internal/auth"
	"github.com/spec-kit/scaffold-report-service/internal/config"
	"github.com/spec-kit/scaffold-report-service/internal/events"
	"github.com/spec-kit/scaffold-report-service/internal/observability"
	"github.com/spec-kit/scaffold-report-service/internal/persistence"
	"github.com/spec-kit/scaffold-report-service/internal/repository"
	"github.com/spec-kit/scaffold-report-service/internal/service"
	"github.com/spec-kit/scaffold-report-service/internal/storage"
	"github.com/spec-kit/scaffold-report-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	var registry auth.RevocationRegistry
	if redis != nil {
		registry = auth.NewRedisRegistry(redis.Client, cfg.Auth.AccessTokenTTL())
	} else {
		registry = auth.NewMemoryRegistry()
	}

	var photos storage.PhotoStore
	photos, err = storage.NewS3PhotoStore(ctx, cfg.Storage)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			logger.Fatal("failed to init photo storage", zap.Error(err))
		}
		logger.Warn("STORAGE_BUCKET not provided; scaffold photo uploads will be rejected")
		photos = storage.DisabledStore{}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	scaffoldRepo := repository.NewScaffoldRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(userRepo, tokenManager, registry, cfg.Auth.BcryptCost)
	userService := service.NewUserService(userRepo, tokenManager, cfg.Auth.BcryptCost)
	clientService := service.NewClientService(clientRepo)
	projectService := service.NewProjectService(projectRepo, dispatcher)
	scaffoldService := service.NewScaffoldService(scaffoldRepo, photos, dispatcher)
	dashboardService := service.NewDashboardService(projectRepo, scaffoldRepo)
	exportService := service.NewExportService(projectService, scaffoldRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	guard := auth.NewGuard(tokenManager, registry)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 20 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Users:     handlers.NewUsersHandler(userService),
		Clients:   handlers.NewClientsHandler(clientService),
		Projects:  handlers.NewProjectsHandler(projectService, exportService),
		Scaffolds: handlers.NewScaffoldsHandler(scaffoldService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Guard:     guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
