package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// TrendService extrapolates a user's future risk score from a bounded
// history window of prior score records.
type TrendService interface {
	// Predict projects the user's score daysAhead days out. Fewer than the
	// policy's minimum record count yields the insufficient_data variant,
	// which is a normal outcome callers must branch on, not a failure.
	Predict(ctx context.Context, userID uuid.UUID, daysAhead int) (*models.TrendPrediction, error)
}

type trendService struct {
	scores   repository.RiskScoreRepository
	policies PolicyProvider
	log      logger.Logger
}

// NewTrendService creates a TrendService over the risk-score history store.
func NewTrendService(scores repository.RiskScoreRepository, policies PolicyProvider, log logger.Logger) TrendService {
	return &trendService{
		scores:   scores,
		policies: policies,
		log:      log.WithComponent("TrendService"),
	}
}

func (s *trendService) Predict(ctx context.Context, userID uuid.UUID, daysAhead int) (*models.TrendPrediction, error) {
	policy := s.policies.Policy()

	// Records arrive newest first; the window is bounded by the policy.
	records, err := s.scores.GetRecent(ctx, userID, policy.TrendWindow)
	if err != nil {
		return nil, errors.ErrDependencyUnavailable.WithError(err)
	}

	if len(records) < policy.TrendMinRecords {
		return &models.TrendPrediction{Status: constants.TrendStatusInsufficientData}, nil
	}

	count := len(records)
	var sum float64
	for _, r := range records {
		sum += r.OverallScore
	}
	average := sum / float64(count)

	newest := records[0].OverallScore
	oldest := records[count-1].OverallScore
	delta := newest - oldest

	predicted := average + delta/float64(count)*float64(daysAhead)
	if predicted < 0 {
		predicted = 0
	}
	if predicted > 100 {
		predicted = 100
	}

	// delta == 0 classifies as decreasing, preserving the reference
	// behavior. Flagged in DESIGN.md pending product clarification.
	direction := constants.TrendDirectionDecreasing
	if delta > 0 {
		direction = constants.TrendDirectionIncreasing
	}

	confidence := constants.ConfidenceMedium
	if count > policy.TrendHighConfidence {
		confidence = constants.ConfidenceHigh
	}

	return &models.TrendPrediction{
		Status:         constants.TrendStatusOK,
		CurrentScore:   newest,
		PredictedScore: predicted,
		TrendDirection: direction,
		Confidence:     confidence,
	}, nil
}
