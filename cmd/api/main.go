package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/travault/crm-service/internal/api/http"
	"github.com/travault/crm-service/internal/api/http/handlers"
	"github.com/travault/crm-service/internal/auth"
	"github.com/travault/crm-service/internal/config"
	"github.com/travault/crm-service/internal/events"
	"github.com/travault/crm-service/internal/notify"
	"github.com/travault/crm-service/internal/observability"
	"github.com/travault/crm-service/internal/persistence"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/internal/repository/memory"
	"github.com/travault/crm-service/internal/repository/postgres"
	"github.com/travault/crm-service/internal/service"
	"github.com/travault/crm-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var store repository.Store
	if pg.Pool != nil {
		store = postgres.NewStore(pg.Pool)
	} else {
		logger.Warn("running with in-memory store; data will not survive restarts")
		store = memory.NewStore()
	}

	dispatcher := events.NewRedisDispatcher(redis.Client, cfg.Notification.QueueName, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	actionService := service.NewActionService(service.ActionDependencies{
		Store:      store,
		Tickets:    ticketService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	subjectService := service.NewSubjectService(store, logger)
	authService := service.NewAuthService(*cfg, store)
	notificationService := service.NewNotificationService(
		store, notify.NewLogSender(logger), logger, cfg.Notification)

	worker.StartNotificationWorker(ctx, dispatcher, notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), store.Users())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Actions:        handlers.NewActionsHandler(actionService),
		Subjects:       handlers.NewSubjectsHandler(subjectService),
		Emails:         handlers.NewEmailsHandler(notificationService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
