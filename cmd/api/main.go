package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portfolio-backend/internal/api/http"
	"github.com/spec-kit/portfolio-backend/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/config"
	"github.com/spec-kit/portfolio-backend/internal/events"
	"github.com/spec-kit/portfolio-backend/internal/notification"
	"github.com/spec-kit/portfolio-backend/internal/observability"
	"github.com/spec-kit/portfolio-backend/internal/persistence"
	"github.com/spec-kit/portfolio-backend/internal/ratelimit"
	"github.com/spec-kit/portfolio-backend/internal/repository"
	"github.com/spec-kit/portfolio-backend/internal/service"
	"github.com/spec-kit/portfolio-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof)); err != nil {
		logger.Warn("failed to set GOMAXPROCS", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	var redisHealth handlers.Pinger
	if redis.Enabled() {
		redisHealth = redis
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	skillRepo := repository.NewSkillRepository(pool)
	messageRepo := repository.NewContactMessageRepository(pool)

	codec, err := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("failed to build token codec", zap.Error(err))
	}
	registry := auth.NewRevocationRegistry()
	authenticator := auth.NewAuthenticator(userRepo)
	metrics := observability.NewMetrics()
	limiter := ratelimit.NewLoginLimiter(redis.Cmdable(), cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)

	authService := service.NewAuthService(service.AuthDependencies{
		Authenticator: authenticator,
		Tokens:        codec,
		Revoked:       registry,
		Throttle:      limiter,
		Metrics:       metrics,
		Logger:        logger,
	})

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, buildNotifiers(cfg.Notification, logger)...)
	worker.StartNotificationWorker(ctx, notificationService)

	sweeper, err := worker.StartRevocationSweeper(cfg.Auth.RevocationSweepSpec, registry, metrics, logger)
	if err != nil {
		logger.Fatal("failed to schedule revocation sweeper", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		Timeout: cfg.App.RequestTimeout(),
		CORS:    cfg.CORS,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisHealth),
		Auth:           handlers.NewAuthHandler(authService),
		Projects:       handlers.NewProjectsHandler(service.NewProjectService(projectRepo)),
		Skills:         handlers.NewSkillsHandler(service.NewSkillService(skillRepo, projectRepo)),
		Messages:       handlers.NewMessagesHandler(service.NewMessageService(messageRepo, dispatcher, logger)),
		Users:          handlers.NewUsersHandler(service.NewUserService(userRepo, cfg.Auth.BcryptCost)),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: auth.NewAuthMiddleware(codec, registry, authenticator, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	stopped := sweeper.Stop()
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("shutdown", zap.Error(err))
	}
	<-stopped.Done()
}

func buildNotifiers(cfg config.NotificationConfig, logger *zap.Logger) []notification.Notifier {
	var notifiers []notification.Notifier
	if cfg.SMSEnabled() {
		sms, err := notification.NewSMSNotifier(cfg)
		if err != nil {
			logger.Warn("sms notifications disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, sms)
		}
	}
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, notification.NewEmailNotifier(cfg))
	}
	if len(notifiers) == 0 {
		logger.Info("no contact notifiers configured")
	}
	return notifiers
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
