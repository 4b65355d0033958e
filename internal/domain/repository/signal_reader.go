// Package repository defines the persistence interfaces the analytics core
// depends on. Implementations live in internal/infrastructure/persistence.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
)

// SignalReader provides read-only access to the historical behavioral data
// consumed by scoring. Whether a call is network-bound, disk-bound, or
// in-memory is irrelevant to the scoring logic; failures surface as
// retryable dependency_unavailable errors.
type SignalReader interface {
	// GetRecentSimulations returns up to limit phishing-simulation outcomes
	// for the user, newest first.
	GetRecentSimulations(ctx context.Context, userID uuid.UUID, limit int) ([]models.PhishingSimulation, error)

	// GetEnrollments returns every enrollment snapshot for the user.
	GetEnrollments(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error)

	// GetLastCompletedEnrollment returns the user's most recently completed
	// enrollment, or nil when the user has never completed training.
	GetLastCompletedEnrollment(ctx context.Context, userID uuid.UUID) (*models.Enrollment, error)

	// GetRecentQuizAttempts returns up to limit quiz attempts for the user,
	// newest first.
	GetRecentQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]models.QuizAttempt, error)

	// CountSecurityIncidents counts audit events tagged security_incident or
	// policy_violation for the user, over an unbounded lookback window.
	CountSecurityIncidents(ctx context.Context, userID uuid.UUID) (int, error)

	// GetTenantEnrollments returns every enrollment for courses belonging to
	// the tenant.
	GetTenantEnrollments(ctx context.Context, tenantID uuid.UUID) ([]models.Enrollment, error)
}
