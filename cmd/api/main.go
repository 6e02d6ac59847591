package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turfbook/internal/api"
	"turfbook/internal/auth"
	"turfbook/internal/config"
	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/events"
	"turfbook/internal/logging"
	"turfbook/internal/metrics"
	"turfbook/internal/repository"
	"turfbook/internal/schedule"
	"turfbook/internal/service"
	"turfbook/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger := logging.New(cfg.Logging, cfg.App)
	logger := logging.Component(&baseLogger, "api-main")

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	state := buildStateRepository(redisClient, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startBackups(ctx, cfg, &baseLogger)

	bus := events.NewEventBus()
	startNotifier(ctx, cfg, bus, &baseLogger)

	clock := schedule.NewClock()
	svc := api.Services{
		Users:    service.NewUserService(db, &logger),
		Turfs:    service.NewTurfService(db, bus, clock, &logger),
		Bookings: service.NewBookingService(db, bus, clock, cfg.Booking.CancelCutoffMinutes, &logger),
		Teams:    service.NewTeamService(db, &logger),
	}

	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	httpServer := api.NewHTTPServer(cfg.Server, svc, tokens, state, &logger)

	startMetrics(ctx, cfg, &logger)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("server stopped")
	return nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// buildStateRepository prefers redis with an in-memory fallback so a
// redis outage degrades rate limiting instead of taking the API down.
func buildStateRepository(redisClient *redis.Client, logger *zerolog.Logger) domain.StateRepository {
	memory := repository.NewMemoryStateRepository()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverStateRepository(repository.NewRedisStateRepository(redisClient), memory, logger)
}

func startBackups(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}

	backupLogger := logging.Component(logger, "backup")
	go database.NewBackupService(cfg.Database.Path, cfg.Backup, &backupLogger).Run(ctx)
}

func startNotifier(ctx context.Context, cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if cfg.Notifications.WebhookURL == "" {
		logger.Info().Msg("notifications disabled, no webhook url configured")
		return
	}

	notifierLogger := logging.Component(logger, "notifier")
	notifier := worker.NewNotifier(
		worker.NewWebhookSender(cfg.Notifications.WebhookURL),
		worker.RetryPolicy{MaxRetries: cfg.Notifications.MaxRetries},
		cfg.Notifications.QueueSize,
		&notifierLogger,
	)
	notifier.SubscribeTo(bus)
	go notifier.Run(ctx)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()

	logger.Info().Int("port", port).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
