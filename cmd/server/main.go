package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appservice "github.com/seclearn/analytics/internal/application/service"
	"github.com/seclearn/analytics/internal/config"
	domainservice "github.com/seclearn/analytics/internal/domain/service"
	"github.com/seclearn/analytics/internal/infrastructure/consumers"
	"github.com/seclearn/analytics/internal/infrastructure/messaging"
	"github.com/seclearn/analytics/internal/infrastructure/monitoring"
	"github.com/seclearn/analytics/internal/infrastructure/persistence/postgres"
	"github.com/seclearn/analytics/internal/infrastructure/persistence/redis"
	httpiface "github.com/seclearn/analytics/internal/interfaces/http"
	"github.com/seclearn/analytics/internal/interfaces/http/handlers"
	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/logger"
)

func main() {
	startupLogger, _ := monitoring.NewZapLogger(&config.LogConfig{Level: "info"})

	cfg, v, err := config.LoadConfig(startupLogger)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracing", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	db, err := postgres.NewDBConnection(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		appLogger.Fatal(ctx, "failed to migrate database", err)
	}

	redisConn, err := redis.NewRedisConnection(ctx, &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to redis", err)
	}
	defer redisConn.Close()

	metrics := monitoring.NewMetrics()
	clock := domainservice.NewSystemClock()

	// Live-reloadable scoring policy
	policySource := config.NewPolicySource(&cfg.Scoring, appLogger)
	config.WatchConfig(v, appLogger, func(updated *config.Config) {
		policySource.Update(&updated.Scoring)
	})

	// Repositories
	signals := postgres.NewSignalReader(db.Gorm(), appLogger)
	scores := postgres.NewRiskScoreRepository(db.Gorm(), appLogger)
	schedules := postgres.NewScheduleRepository(db.Gorm(), appLogger)
	events := postgres.NewEventRepository(db.Gorm(), appLogger)

	scoreCache := redis.NewScoreCache(redisConn, policySource.Policy().CacheTTL, appLogger)

	// Kafka is optional; without it scores stay query-only and events
	// arrive through whatever backfills the store.
	var producer *messaging.ScoreProducer
	var consumer *consumers.EventConsumer
	var publisher appservice.ScorePublisher
	var dispatcher appservice.ReportDispatcher
	if cfg.Kafka.Enabled {
		producer = messaging.NewScoreProducer(cfg.Kafka, appLogger)
		defer producer.Close()
		publisher = producer
		dispatcher = producer

		consumer = consumers.NewEventConsumer(cfg.Kafka, events, metrics, appLogger)
		go consumer.Start(ctx)
		defer consumer.Stop()
	}

	anomalyScorer := domainservice.NewStaticLoginAnomalyScorer()

	// Application services
	riskScoreSvc := appservice.NewRiskScoreService(
		signals, scores, scoreCache, publisher, anomalyScorer,
		policySource, clock, metrics, appLogger,
	)
	trendSvc := appservice.NewTrendService(scores, policySource, appLogger)
	complianceSvc := appservice.NewComplianceService(signals, appLogger)

	anomalyThreshold := cfg.Scoring.AnomalyEventsPerDay
	if anomalyThreshold <= 0 {
		anomalyThreshold = constants.DefaultAnomalyEventsPerDay
	}
	anomalySvc := appservice.NewAnomalyService(events, clock, anomalyThreshold, appLogger)

	schedulerSvc := appservice.NewSchedulerService(
		schedules, dispatcher, clock, cfg.Scheduler.Interval, metrics, appLogger,
	)
	if cfg.Scheduler.Enabled {
		go schedulerSvc.Run(ctx)
	}

	// HTTP layer
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": db,
		"redis":    redisConn,
	}, appLogger)
	riskHandler := handlers.NewRiskHandler(riskScoreSvc, trendSvc, appLogger)
	tenantHandler := handlers.NewTenantAnalyticsHandler(complianceSvc, anomalySvc, appLogger)
	scheduleHandler := handlers.NewScheduleHandler(schedulerSvc, appLogger)

	router := httpiface.NewRouter(cfg, appLogger, healthHandler, riskHandler, tenantHandler, scheduleHandler, metrics, tracing)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Error(ctx, "http server failed", err)
		}
	case sig := <-quit:
		appLogger.Info(ctx, "shutdown signal received", logger.Fields{"signal": sig.String()})
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := router.Stop(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "http server forced to stop", err)
	}
}
