// Package constants defines system-wide constants for the awareness analytics service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ================================================================================
// Risk Level Constants
// ================================================================================

// RiskLevel represents the four-band classification derived from an overall score.
type RiskLevel string

const (
	// RiskLevelLow covers overall scores below 25.
	RiskLevelLow RiskLevel = "low"

	// RiskLevelMedium covers overall scores in [25, 50).
	RiskLevelMedium RiskLevel = "medium"

	// RiskLevelHigh covers overall scores in [50, 75).
	RiskLevelHigh RiskLevel = "high"

	// RiskLevelCritical covers overall scores of 75 and above.
	RiskLevelCritical RiskLevel = "critical"
)

// ================================================================================
// Behavioral Event Type Constants
// ================================================================================

// EventType identifies a behavioral event produced by upstream activity.
// The enumeration is closed; unknown types are rejected at ingestion.
type EventType string

const (
	EventTypeLogin            EventType = "login"
	EventTypeCourseStart      EventType = "course_start"
	EventTypeCourseComplete   EventType = "course_complete"
	EventTypeQuizAttempt      EventType = "quiz_attempt"
	EventTypePhishingClick    EventType = "phishing_click"
	EventTypePhishingReport   EventType = "phishing_report"
	EventTypePolicyViolation  EventType = "policy_violation"
	EventTypeSecurityIncident EventType = "security_incident"
)

// KnownEventTypes lists every accepted event type.
var KnownEventTypes = []EventType{
	EventTypeLogin,
	EventTypeCourseStart,
	EventTypeCourseComplete,
	EventTypeQuizAttempt,
	EventTypePhishingClick,
	EventTypePhishingReport,
	EventTypePolicyViolation,
	EventTypeSecurityIncident,
}

// IsKnownEventType reports whether t is part of the closed enumeration.
func IsKnownEventType(t EventType) bool {
	for _, known := range KnownEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ================================================================================
// Enrollment Status Constants
// ================================================================================

// EnrollmentStatus represents the lifecycle status of a course enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusNotStarted EnrollmentStatus = "not_started"
	EnrollmentStatusInProgress EnrollmentStatus = "in_progress"
	EnrollmentStatusCompleted  EnrollmentStatus = "completed"
	EnrollmentStatusFailed     EnrollmentStatus = "failed"
	EnrollmentStatusExpired    EnrollmentStatus = "expired"
)

// ================================================================================
// Schedule Frequency Constants
// ================================================================================

// Frequency represents how often a report schedule fires. A schedule is
// permanently one frequency; there are no transitions between them.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// ================================================================================
// Trend / Forecast Constants
// ================================================================================

// TrendStatus distinguishes a usable prediction from the insufficient-data
// variant, which is a normal outcome rather than a failure.
type TrendStatus string

const (
	TrendStatusOK               TrendStatus = "ok"
	TrendStatusInsufficientData TrendStatus = "insufficient_data"
)

// TrendDirection indicates which way a user's risk is moving.
type TrendDirection string

const (
	TrendDirectionIncreasing TrendDirection = "increasing"
	TrendDirectionDecreasing TrendDirection = "decreasing"
)

// Confidence qualifies a trend prediction by the amount of history behind it.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// ================================================================================
// Anomaly Constants
// ================================================================================

// AnomalyType identifies the kind of anomaly detected.
type AnomalyType string

// AnomalyTypeHighActivity flags an abnormally high event rate.
const AnomalyTypeHighActivity AnomalyType = "high_activity"

// AnomalySeverity grades an anomaly.
type AnomalySeverity string

// AnomalySeverityMedium is the only severity the fixed-threshold detector emits.
const AnomalySeverityMedium AnomalySeverity = "medium"

// ================================================================================
// Error Code Constants
// ================================================================================

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeInternal              ErrorCode = "internal_error"
	ErrCodeInvalidRequest        ErrorCode = "invalid_request"
	ErrCodeNotFound              ErrorCode = "not_found"
	ErrCodeDependencyUnavailable ErrorCode = "dependency_unavailable"
	ErrCodeInvalidScheduleConfig ErrorCode = "invalid_schedule_config"
	ErrCodeConflict              ErrorCode = "conflict"
)

// ================================================================================
// Context Key Constants
// ================================================================================

// ContextKey is the type for values stored on a request context.
type ContextKey string

const (
	// ContextKeyTraceID carries the request trace identifier.
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyLogger carries a request-scoped logger.
	ContextKeyLogger ContextKey = "logger"
)

// ================================================================================
// Defaults
// ================================================================================

const (
	// DefaultScoreCacheTTL is how long a computed risk score stays current.
	DefaultScoreCacheTTL = 24 * time.Hour

	// DefaultSimulationWindow is the bounded lookback for phishing outcomes.
	DefaultSimulationWindow = 10

	// DefaultQuizWindow is the bounded lookback for quiz attempts.
	DefaultQuizWindow = 10

	// DefaultTrendWindow is the bounded lookback for prior score records.
	DefaultTrendWindow = 30

	// DefaultTrendMinRecords is the minimum history for a trend prediction.
	DefaultTrendMinRecords = 5

	// DefaultTrendHighConfidence is the record count above which confidence is high.
	DefaultTrendHighConfidence = 15

	// DefaultAnomalyWindowDays is the detection window for event-rate anomalies.
	DefaultAnomalyWindowDays = 30

	// DefaultAnomalyEventsPerDay is the fixed events-per-day threshold.
	DefaultAnomalyEventsPerDay = 50.0
)
