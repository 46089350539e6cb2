// Package main is the entry point for the partner-quadrant-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/internal/config"
	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/infra/memory"
	"partner-quadrant-service/internal/infra/postgres"
	"partner-quadrant-service/internal/infra/postgres/migrations"
	"partner-quadrant-service/internal/infra/recordstore/registry"
	rediscache "partner-quadrant-service/internal/infra/redis"
	"partner-quadrant-service/internal/job"
	"partner-quadrant-service/internal/logger"
	"partner-quadrant-service/internal/metrics"
	"partner-quadrant-service/internal/transport/httpserver"
	"partner-quadrant-service/internal/transport/httpserver/handler"
	"partner-quadrant-service/internal/transport/httpserver/middleware"
	"partner-quadrant-service/internal/validator"
	"partner-quadrant-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("APP_CONFIG_FILE"))
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:   cfg.Logger.Level,
			Format:  cfg.Logger.Format,
			Output:  cfg.Logger.Output,
			Service: cfg.App.Name,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting partner-quadrant-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	var readiness []middleware.ReadinessCheck

	// Partner store
	var repo domain.PartnerRepository
	if cfg.Database.InMemory {
		repo = memory.NewRepository(memory.DemoPortfolio()...)
		log.Warn("using in-memory partner store, data is lost on restart")
	} else {
		db := openDatabase(cfg.Database, log.Named("postgres"))
		defer func() { _ = postgres.Close(db) }()

		repo = postgres.NewRepository(db)
		readiness = append(readiness, func(context.Context) error { return postgres.HealthCheck(db) })
	}

	// Redis backs both the layout cache and the scheduler lock
	var (
		cache      domain.Cache
		distLocker locker.DistributedLocker = locker.NewLocalLocker()
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr()))

		distLocker = locker.NewRedisLocker(redisClient, log.Named("locker").Logger, cfg.Cache.KeyPrefix)

		if cfg.Cache.Enabled {
			redisCache := rediscache.NewCache(redisClient, log.Named("cache").Logger, cfg.Cache.KeyPrefix)
			cache = redisCache
			readiness = append(readiness, redisCache.HealthCheck)
			log.Info("chart cache enabled",
				zap.Duration("layout_ttl", cfg.Cache.LayoutTTL),
				zap.String("key_prefix", cfg.Cache.KeyPrefix),
			)
		}
	} else {
		log.Info("redis disabled, running uncached with an in-process sync lock")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	// Services
	sources := registry.NewSources(cfg.RecordStore, log.Named("recordstore").Logger)
	chartSvc := service.NewChartService(repo, cache, cfg.Cache.LayoutTTL, m, log.Named("chart").Logger)
	partnerSvc := service.NewPartnerService(repo, chartSvc, log.Named("partners").Logger)
	syncSvc := service.NewSyncService(repo, sources, chartSvc, m, log.Named("sync").Logger)

	chartSettings := handler.ChartSettings{
		DefaultWidth:  cfg.Chart.DefaultWidth,
		DefaultHeight: cfg.Chart.DefaultHeight,
		MaxWidth:      cfg.Chart.MaxWidth,
		MaxHeight:     cfg.Chart.MaxHeight,
	}
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Name:         cfg.App.Name,
			BodyLimit:    1024 * 1024, // 1MB
			Debug:        cfg.App.Debug,
			TemplatesDir: "./web/templates",
			StaticDir:    "./web/static",
			MetricsPath:  metricsPath,
			Chart:        chartSettings,
		},
		httpserver.Services{
			Partners: partnerSvc,
			Charts:   chartSvc,
			Sync:     syncSvc,
		},
		m,
		validator.New(),
		log.Named("http").Logger,
		readiness...,
	)

	// Background import from the record store
	var scheduler *job.SyncScheduler
	if cfg.Sync.Enabled && len(sources) > 0 {
		scheduler = job.NewSyncScheduler(
			syncSvc,
			job.SyncConfig{
				Interval:  cfg.Sync.Interval,
				Timeout:   cfg.Sync.Timeout,
				OnStartup: cfg.Sync.OnStartup,
			},
			log.Named("scheduler").Logger,
			distLocker,
		)
		scheduler.Start(cfg.Sync.OnStartup)
	} else {
		log.Info("record store sync disabled", zap.Int("sources", len(sources)))
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if scheduler != nil {
			scheduler.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// openDatabase connects to PostgreSQL and applies migrations. Any failure is fatal.
func openDatabase(cfg config.DatabaseConfig, log *logger.Logger) *gorm.DB {
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Host,
			Port:         cfg.Port,
			Name:         cfg.Name,
			User:         cfg.User,
			Password:     cfg.Password,
			SSLMode:      cfg.SSLMode,
			MaxOpenConns: cfg.MaxOpenConns,
			MaxIdleConns: cfg.MaxIdleConns,
			MaxLifetime:  cfg.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	return db
}
