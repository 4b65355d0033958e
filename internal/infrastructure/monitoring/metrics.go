package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	ScoreCalculations *prometheus.CounterVec
	ScoreLatency      *prometheus.HistogramVec
	ScheduleFirings   *prometheus.CounterVec
	EventsIngested    *prometheus.CounterVec
	AnomaliesDetected *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ScoreCalculations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_score_calculations_total",
				Help: "Total number of risk score calculation requests.",
			},
			[]string{"tenant_id", "result"},
		),
		ScoreLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_score_calculation_seconds",
				Help:    "Latency of risk score calculations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tenant_id"},
		),
		ScheduleFirings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_schedule_firings_total",
				Help: "Total number of report schedule firings.",
			},
			[]string{"tenant_id", "frequency", "result"},
		),
		EventsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_events_ingested_total",
				Help: "Total number of behavioral events consumed.",
			},
			[]string{"tenant_id", "result"},
		),
		AnomaliesDetected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_anomalies_detected_total",
				Help: "Total number of anomalies detected.",
			},
			[]string{"tenant_id", "type"},
		),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_http_request_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordCalculation records a risk score calculation outcome.
func (m *Metrics) RecordCalculation(tenantID, result string, duration time.Duration) {
	m.ScoreCalculations.WithLabelValues(tenantID, result).Inc()
	m.ScoreLatency.WithLabelValues(tenantID).Observe(duration.Seconds())
}

// RecordScheduleFired records a report schedule firing.
func (m *Metrics) RecordScheduleFired(tenantID, frequency, result string) {
	m.ScheduleFirings.WithLabelValues(tenantID, frequency, result).Inc()
}

// RecordEventIngested records a consumed behavioral event.
func (m *Metrics) RecordEventIngested(tenantID, result string) {
	m.EventsIngested.WithLabelValues(tenantID, result).Inc()
}

// RecordAnomaly records a detected anomaly.
func (m *Metrics) RecordAnomaly(tenantID, anomalyType string) {
	m.AnomaliesDetected.WithLabelValues(tenantID, anomalyType).Inc()
}

// RecordHTTPRequest records an HTTP request with its latency.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}
