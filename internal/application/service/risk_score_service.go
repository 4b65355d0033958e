// Package service contains the application services that orchestrate the
// domain logic: pulling signals, combining scores, predicting trends, and
// running report schedules.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	domain "github.com/seclearn/analytics/internal/domain/service"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// ScoreCache is a read-through cache for the current risk score of a user.
// Implementations may layer an in-process cache over redis; a nil cache is
// tolerated everywhere.
type ScoreCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.RiskScoreRecord, bool)
	Set(ctx context.Context, record *models.RiskScoreRecord)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// ScorePublisher pushes freshly computed records to downstream consumers
// (dashboards, notification pipelines). Publish failures are non-fatal: the
// record store remains the source of truth.
type ScorePublisher interface {
	PublishScore(ctx context.Context, record *models.RiskScoreRecord) error
}

// PolicyProvider supplies the current scoring policy. The config layer backs
// this with a live-reloadable source.
type PolicyProvider interface {
	Policy() domain.ScoringPolicy
}

// StaticPolicy is a PolicyProvider pinned to one policy. Used in tests and
// in deployments without config reload.
type StaticPolicy struct {
	P domain.ScoringPolicy
}

func (s StaticPolicy) Policy() domain.ScoringPolicy { return s.P }

// CalculationRecorder records scoring metrics. Satisfied by
// monitoring.Metrics; a nil recorder is tolerated.
type CalculationRecorder interface {
	RecordCalculation(tenantID, result string, duration time.Duration)
}

// RiskScoreService combines behavioral signals into a single bounded risk
// score per user, with a cache window and classification rules.
type RiskScoreService interface {
	// Calculate returns the user's current risk score. Unless force is set,
	// a record calculated within the policy's cache window is returned
	// unchanged and no new sub-score computation occurs. A non-cached call
	// persists exactly one new record.
	Calculate(ctx context.Context, userID, tenantID uuid.UUID, force bool) (*models.RiskScoreRecord, error)
}

type riskScoreService struct {
	signals   repository.SignalReader
	scores    repository.RiskScoreRepository
	cache     ScoreCache
	publisher ScorePublisher
	anomaly   domain.LoginAnomalyScorer
	policies  PolicyProvider
	clock     domain.Clock
	metrics   CalculationRecorder
	log       logger.Logger
}

// NewRiskScoreService wires the scoring pipeline. cache, publisher and
// metrics may be nil.
func NewRiskScoreService(
	signals repository.SignalReader,
	scores repository.RiskScoreRepository,
	cache ScoreCache,
	publisher ScorePublisher,
	anomaly domain.LoginAnomalyScorer,
	policies PolicyProvider,
	clock domain.Clock,
	metrics CalculationRecorder,
	log logger.Logger,
) RiskScoreService {
	return &riskScoreService{
		signals:   signals,
		scores:    scores,
		cache:     cache,
		publisher: publisher,
		anomaly:   anomaly,
		policies:  policies,
		clock:     clock,
		metrics:   metrics,
		log:       log.WithComponent("RiskScoreService"),
	}
}

func (s *riskScoreService) Calculate(ctx context.Context, userID, tenantID uuid.UUID, force bool) (*models.RiskScoreRecord, error) {
	started := s.clock.Now()
	policy := s.policies.Policy()

	if !force {
		if record, ok := s.cachedCurrent(ctx, userID, policy.CacheTTL); ok {
			s.record(tenantID, "cache_hit", started)
			return record, nil
		}
	}

	subs, err := s.computeSubScores(ctx, userID, policy)
	if err != nil {
		s.record(tenantID, "error", started)
		return nil, err
	}

	overall := policy.Combine(*subs)
	record := &models.RiskScoreRecord{
		UserID:       userID,
		TenantID:     tenantID,
		OverallScore: overall,
		SubScores:    *subs,
		RiskLevel:    policy.Classify(overall),
		CalculatedAt: s.clock.Now(),
	}

	saved, err := s.scores.Save(ctx, record)
	if err != nil {
		s.record(tenantID, "error", started)
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, saved)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishScore(ctx, saved); err != nil {
			s.log.Warn(ctx, "failed to publish risk score", logger.Fields{
				"user_id": userID.String(),
				"error":   err.Error(),
			})
		}
	}

	s.log.Info(ctx, "risk score calculated", logger.Fields{
		"user_id":       userID.String(),
		"tenant_id":     tenantID.String(),
		"overall_score": saved.OverallScore,
		"risk_level":    saved.RiskLevel,
	})
	s.record(tenantID, "calculated", started)
	return saved, nil
}

// cachedCurrent returns the stored current record when it is still inside
// the cache window. The in-process/redis cache is consulted first, then the
// record store; a store hit repopulates the cache.
func (s *riskScoreService) cachedCurrent(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*models.RiskScoreRecord, bool) {
	now := s.clock.Now()

	if s.cache != nil {
		if record, ok := s.cache.Get(ctx, userID); ok && record.Age(now) < ttl {
			return record, true
		}
	}

	record, err := s.scores.GetLatest(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "latest score lookup failed, recalculating", logger.Fields{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return nil, false
	}
	if record == nil || record.Age(now) >= ttl {
		return nil, false
	}
	if s.cache != nil {
		s.cache.Set(ctx, record)
	}
	return record, true
}

func (s *riskScoreService) computeSubScores(ctx context.Context, userID uuid.UUID, policy domain.ScoringPolicy) (*models.SubScores, error) {
	simulations, err := s.signals.GetRecentSimulations(ctx, userID, policy.SimulationWindow)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}
	enrollments, err := s.signals.GetEnrollments(ctx, userID)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}
	lastCompleted, err := s.signals.GetLastCompletedEnrollment(ctx, userID)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}
	attempts, err := s.signals.GetRecentQuizAttempts(ctx, userID, policy.QuizWindow)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}
	incidents, err := s.signals.CountSecurityIncidents(ctx, userID)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}

	return &models.SubScores{
		Phishing:           domain.PhishingScore(simulations),
		TrainingCompletion: domain.TrainingCompletionScore(enrollments),
		TimeSinceTraining:  domain.TimeSinceTrainingScore(lastCompleted, s.clock.Now()),
		QuizPerformance:    domain.QuizPerformanceScore(attempts),
		SecurityIncident:   domain.SecurityIncidentScore(incidents),
		LoginAnomaly:       s.anomaly.Score(userID.String(), nil),
	}, nil
}

func (s *riskScoreService) record(tenantID uuid.UUID, result string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCalculation(tenantID.String(), result, s.clock.Now().Sub(started))
}
