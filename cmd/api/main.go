package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/rolfmarquardtjr/clickticket/internal/api/http"
	"github.com/rolfmarquardtjr/clickticket/internal/api/http/handlers"
	"github.com/rolfmarquardtjr/clickticket/internal/auth"
	"github.com/rolfmarquardtjr/clickticket/internal/config"
	"github.com/rolfmarquardtjr/clickticket/internal/events"
	"github.com/rolfmarquardtjr/clickticket/internal/observability"
	"github.com/rolfmarquardtjr/clickticket/internal/persistence"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
	"github.com/rolfmarquardtjr/clickticket/internal/service"
	"github.com/rolfmarquardtjr/clickticket/internal/worker"
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

	fileStore, err := persistence.NewLocalFileStore(cfg.Uploads.Dir, logger)
	if err != nil {
		logger.Fatal("failed to init file store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	areaRepo := repository.NewAreaRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	fieldRepo := repository.NewCustomFieldRepository(pool)
	slaRepo := repository.NewSLAPolicyRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	slaResolver := service.NewSLAResolver(slaRepo)
	fieldService := service.NewCustomFieldService(fieldRepo, redis, cfg.Uploads.FieldCacheTTL(), logger)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		HistoryRepo:    historyRepo,
		AttachmentRepo: attachmentRepo,
		AreaRepo:       areaRepo,
		ClientRepo:     clientRepo,
		ProductRepo:    productRepo,
		FieldDirectory: fieldService,
		SLAResolver:    slaResolver,
		Dispatcher:     dispatcher,
	})
	attachmentService := service.NewAttachmentService(ticketRepo, attachmentRepo, fileStore)
	authService := service.NewAuthService(*cfg, agentRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), agentRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Agents:         handlers.NewAgentsHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, attachmentService),
		Board:          handlers.NewBoardHandler(ticketService),
		CustomFields:   handlers.NewCustomFieldsHandler(fieldService),
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
