package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// inProgressCompletionRate is the assumed share of in-progress enrollments
// that eventually complete.
const inProgressCompletionRate = 0.7

// ComplianceService extrapolates a tenant's training-completion rate.
type ComplianceService interface {
	// Forecast reports the tenant's current and predicted completion rates
	// as rounded integer percentages, plus the count of enrollments that
	// are neither completed nor progressing. A tenant with no enrollments
	// forecasts zeros.
	Forecast(ctx context.Context, tenantID uuid.UUID, daysAhead int) (*models.ComplianceForecast, error)
}

type complianceService struct {
	signals repository.SignalReader
	log     logger.Logger
}

// NewComplianceService creates a ComplianceService over the signal reader.
func NewComplianceService(signals repository.SignalReader, log logger.Logger) ComplianceService {
	return &complianceService{
		signals: signals,
		log:     log.WithComponent("ComplianceService"),
	}
}

func (s *complianceService) Forecast(ctx context.Context, tenantID uuid.UUID, daysAhead int) (*models.ComplianceForecast, error) {
	enrollments, err := s.signals.GetTenantEnrollments(ctx, tenantID)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}

	total := len(enrollments)
	if total == 0 {
		return &models.ComplianceForecast{}, nil
	}

	var completed, inProgress int
	for _, e := range enrollments {
		switch e.Status {
		case constants.EnrollmentStatusCompleted:
			completed++
		case constants.EnrollmentStatusInProgress:
			inProgress++
		}
	}

	rate := float64(completed) / float64(total)
	predicted := rate + float64(inProgress)/float64(total)*inProgressCompletionRate

	return &models.ComplianceForecast{
		CurrentRatePct:   int(math.Round(rate * 100)),
		PredictedRatePct: int(math.Round(predicted * 100)),
		AtRiskUserCount:  total - completed - inProgress,
	}, nil
}
