package handlers

import (
	"context"
	goerrors "errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/seclearn/analytics/internal/application/dto"
	"github.com/seclearn/analytics/internal/infrastructure/monitoring"
	"github.com/seclearn/analytics/pkg/constants"
	apperrors "github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// HTTPRecorder records request metrics. Satisfied by monitoring.Metrics.
type HTTPRecorder interface {
	RecordHTTPRequest(method, path, status string, duration time.Duration)
}

// RequestIDMiddleware assigns each request an ID, honoring X-Request-ID
// from trusted upstreams.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggingMiddleware logs each completed request.
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request processed", logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
	}
}

// RecoveryMiddleware converts panics into 500 responses.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "panic recovered", goerrors.New("panic"), logger.Fields{
					"panic": r,
					"path":  c.Request.URL.Path,
				})
				dto.SendError(c, apperrors.ErrInternal)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// TracingMiddleware opens a server span per request, continuing any trace
// carried in the request headers, and threads the trace ID into the context
// for the logger.
func TracingMiddleware(tm *monitoring.TracingManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		propagator := propagation.TraceContext{}
		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		ctx, span := tm.StartSpan(ctx, "HTTP "+c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		if traceID := tm.TraceID(ctx); traceID != "" {
			ctx = context.WithValue(ctx, constants.ContextKeyTraceID, traceID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Status() >= 500 {
			tm.SetSpanAttributes(ctx, map[string]interface{}{"http.status_code": c.Writer.Status()})
		}
	}
}

// MetricsMiddleware records per-route request counts and latency. The route
// template is used rather than the raw path to bound label cardinality.
func MetricsMiddleware(metrics HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if metrics == nil {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
