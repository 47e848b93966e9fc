package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "project-hub-api/docs"
	"project-hub-api/internal/client"
	"project-hub-api/internal/config"
	"project-hub-api/internal/database"
	"project-hub-api/internal/events"
	"project-hub-api/internal/handler"
	"project-hub-api/internal/job"
	"project-hub-api/internal/metrics"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/router"
)

// @title Project Hub API
// @version 1.0
// @description Multi-project task management API with notification fan-out
// @BasePath /api/hub
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := initLogger(cfg.Log.Level)
	defer logger.Sync()

	m := metrics.New()

	// Database connects in the background with retry; startup blocks
	// until the first successful connection.
	dbChan := database.NewAsync(database.Config{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	db := <-dbChan

	if err := database.SafeAutoMigrateWithRetry(db, logger, 5); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("failed to register db metrics callbacks", zap.Error(err))
	}
	statsDone := database.StartDBStatsCollector(db, m, logger)
	defer close(statsDone)

	// Redis is optional; without it unread counts fall back to the
	// database and events are not mirrored across instances.
	redisClient, err := database.InitRedis(cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		defer database.CloseRedis()
	}

	s3Client, err := client.NewS3Client(cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to create s3 client", zap.Error(err))
	}

	emailClient := client.NewEmailClient(cfg.Email, logger, m)

	bus := events.NewBus(logger, m)
	if redisClient != nil {
		mirror := events.NewRedisMirror(redisClient, logger)
		mirror.Attach(bus)
		defer mirror.Detach()
	}

	hub := handler.NewHub(logger, m)
	go hub.Run()
	hub.AttachBus(bus)

	engine, notificationSvc := router.Setup(router.Config{
		DB:          db,
		Redis:       redisClient,
		Logger:      logger,
		JWTSecret:   cfg.JWT.Secret,
		BasePath:    cfg.Server.BasePath,
		Metrics:     m,
		S3Client:    s3Client,
		EmailClient: emailClient,
		Bus:         bus,
		Hub:         hub,
	})

	notificationRepo := repository.NewNotificationRepository(db)

	// The service keeps the poller on the redis-cached unread path
	poller := job.NewUnreadPoller(notificationSvc, hub, cfg.Jobs.UnreadPollInterval, m, logger)
	poller.Start()
	defer poller.Stop()

	cleanup := job.NewCleanupJob(notificationRepo, cfg.Jobs.NotificationTTLDays, logger)
	if err := cleanup.Start(cfg.Jobs.CleanupSchedule); err != nil {
		logger.Warn("failed to schedule cleanup job", zap.Error(err))
	} else {
		defer cleanup.Stop()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func initLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	return logger
}
