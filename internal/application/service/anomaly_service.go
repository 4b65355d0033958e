package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	domain "github.com/seclearn/analytics/internal/domain/service"
	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// AnomalyService flags abnormally high event rates. This is a single
// fixed-threshold heuristic, not a statistical model: a tenant averaging
// more than the configured events per day over the window raises one
// high_activity anomaly.
type AnomalyService interface {
	// Detect evaluates an already-fetched event slice against the threshold.
	Detect(events []models.BehavioralEvent, windowDays int) []models.Anomaly

	// DetectForTenant fetches the tenant's events for the window and
	// evaluates them.
	DetectForTenant(ctx context.Context, tenantID uuid.UUID, windowDays int) ([]models.Anomaly, error)
}

type anomalyService struct {
	events          repository.EventRepository
	clock           domain.Clock
	thresholdPerDay float64
	log             logger.Logger
}

// NewAnomalyService creates an AnomalyService with the given events-per-day
// threshold; pass 0 for the default.
func NewAnomalyService(events repository.EventRepository, clock domain.Clock, thresholdPerDay float64, log logger.Logger) AnomalyService {
	if thresholdPerDay <= 0 {
		thresholdPerDay = constants.DefaultAnomalyEventsPerDay
	}
	return &anomalyService{
		events:          events,
		clock:           clock,
		thresholdPerDay: thresholdPerDay,
		log:             log.WithComponent("AnomalyService"),
	}
}

func (s *anomalyService) Detect(events []models.BehavioralEvent, windowDays int) []models.Anomaly {
	if windowDays <= 0 {
		windowDays = constants.DefaultAnomalyWindowDays
	}

	avgPerDay := float64(len(events)) / float64(windowDays)
	if avgPerDay <= s.thresholdPerDay {
		return nil
	}

	return []models.Anomaly{{
		Type:     constants.AnomalyTypeHighActivity,
		Severity: constants.AnomalySeverityMedium,
		Detail:   fmt.Sprintf("average %.1f events/day over %d days exceeds threshold %.0f", avgPerDay, windowDays, s.thresholdPerDay),
	}}
}

func (s *anomalyService) DetectForTenant(ctx context.Context, tenantID uuid.UUID, windowDays int) ([]models.Anomaly, error) {
	if windowDays <= 0 {
		windowDays = constants.DefaultAnomalyWindowDays
	}

	since := s.clock.Now().AddDate(0, 0, -windowDays)
	events, err := s.events.ListSince(ctx, tenantID, since)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}
	return s.Detect(events, windowDays), nil
}
