package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gearguard/maintenance-service/internal/api/http"
	"github.com/gearguard/maintenance-service/internal/api/http/handlers"
	"github.com/gearguard/maintenance-service/internal/auth"
	"github.com/gearguard/maintenance-service/internal/config"
	"github.com/gearguard/maintenance-service/internal/events"
	"github.com/gearguard/maintenance-service/internal/observability"
	"github.com/gearguard/maintenance-service/internal/persistence"
	"github.com/gearguard/maintenance-service/internal/repository"
	"github.com/gearguard/maintenance-service/internal/service"
	"github.com/gearguard/maintenance-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	sessionRepo := repository.NewSessionRepository(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo:   requestRepo,
		EquipmentRepo: equipmentRepo,
		UserRepo:      userRepo,
		TeamRepo:      teamRepo,
		ActivityRepo:  activityRepo,
		Dispatcher:    dispatcher,
	})
	kanbanService := service.NewKanbanService(requestService)
	equipmentService := service.NewEquipmentService(service.EquipmentDependencies{
		EquipmentRepo: equipmentRepo,
		TeamRepo:      teamRepo,
		UserRepo:      userRepo,
		RequestRepo:   requestRepo,
		Dispatcher:    dispatcher,
	})
	teamService := service.NewTeamService(teamRepo, userRepo)
	dashboardService := service.NewDashboardService(requestService, teamService, equipmentRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, sessionRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Kanban:         handlers.NewKanbanHandler(kanbanService),
		Equipment:      handlers.NewEquipmentHandler(equipmentService),
		Teams:          handlers.NewTeamsHandler(teamService),
		Users:          handlers.NewUsersHandler(userRepo),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
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
