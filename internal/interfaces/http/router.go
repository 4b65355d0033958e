// Package http wires the gin engine, middleware, and route table.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seclearn/analytics/internal/config"
	"github.com/seclearn/analytics/internal/infrastructure/monitoring"
	"github.com/seclearn/analytics/internal/interfaces/http/handlers"
	"github.com/seclearn/analytics/pkg/logger"
)

// Router owns the gin engine and the HTTP server lifecycle.
type Router struct {
	engine          *gin.Engine
	config          *config.Config
	log             logger.Logger
	healthHandler   *handlers.HealthHandler
	riskHandler     *handlers.RiskHandler
	tenantHandler   *handlers.TenantAnalyticsHandler
	scheduleHandler *handlers.ScheduleHandler
	metrics         handlers.HTTPRecorder
	tracing         *monitoring.TracingManager
	server          *http.Server
}

// NewRouter creates the router. Routes are registered on Start.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	healthHandler *handlers.HealthHandler,
	riskHandler *handlers.RiskHandler,
	tenantHandler *handlers.TenantAnalyticsHandler,
	scheduleHandler *handlers.ScheduleHandler,
	metrics handlers.HTTPRecorder,
	tracing *monitoring.TracingManager,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		engine:          gin.New(),
		config:          cfg,
		log:             log,
		healthHandler:   healthHandler,
		riskHandler:     riskHandler,
		tenantHandler:   tenantHandler,
		scheduleHandler: scheduleHandler,
		metrics:         metrics,
		tracing:         tracing,
	}
}

// SetupRoutes registers middleware and the route table.
func (r *Router) SetupRoutes() {
	r.engine.Use(handlers.RecoveryMiddleware(r.log))
	r.engine.Use(handlers.RequestIDMiddleware())
	if r.tracing != nil {
		r.engine.Use(handlers.TracingMiddleware(r.tracing))
	}
	r.engine.Use(handlers.LoggingMiddleware(r.log))
	r.engine.Use(handlers.MetricsMiddleware(r.metrics))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/live", r.healthHandler.LivenessCheck)
	r.engine.GET("/ready", r.healthHandler.ReadinessCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Server.PprofEnabled {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.GET("/:user_id/risk-score", r.riskHandler.GetRiskScore)
			users.GET("/:user_id/risk-trend", r.riskHandler.GetRiskTrend)
		}

		tenants := v1.Group("/tenants")
		{
			tenants.GET("/:tenant_id/compliance-forecast", r.tenantHandler.GetComplianceForecast)
			tenants.GET("/:tenant_id/anomalies", r.tenantHandler.GetAnomalies)
		}

		schedules := v1.Group("/schedules")
		{
			schedules.POST("", r.scheduleHandler.CreateSchedule)
			schedules.GET("/:schedule_id", r.scheduleHandler.GetSchedule)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "the requested resource was not found",
		})
	})
}

// Engine exposes the gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start registers routes and serves until the listener fails or Stop is
// called. Blocking.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	r.log.Info(context.Background(), "starting http server", logger.Fields{"address": addr})
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.log.Info(ctx, "stopping http server")
	return r.server.Shutdown(ctx)
}
