package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront-service/internal/api/http"
	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/persistence"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	"github.com/spec-kit/storefront-service/internal/worker"
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

	pool := pg.PoolHandle()
	principalRepo := repository.NewPrincipalRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	messageRepo := repository.NewContactMessageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessionService := service.NewSessionService(*cfg, principalRepo)
	catalogCache := persistence.NewRedisCatalogCache(redis, logger)
	var cache service.CatalogCache
	if catalogCache != nil {
		cache = catalogCache
	}
	catalogService := service.NewCatalogService(productRepo, cache, dispatcher)
	contactService := service.NewContactService(messageRepo, principalRepo, cfg.Admin.Username, dispatcher)

	authMiddleware := auth.NewMiddleware(sessionService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(sessionService),
		Products:       handlers.NewProductsHandler(catalogService),
		Contact:        handlers.NewContactHandler(contactService),
		AuthMiddleware: authMiddleware,
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
