package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/pkg/constants"
)

// SubScores holds the six bounded [0,100] signals that make up an overall
// risk score.
type SubScores struct {
	Phishing           float64 `json:"phishing"`
	TrainingCompletion float64 `json:"training_completion"`
	TimeSinceTraining  float64 `json:"time_since_training"`
	QuizPerformance    float64 `json:"quiz_performance"`
	SecurityIncident   float64 `json:"security_incident"`
	LoginAnomaly       float64 `json:"login_anomaly"`
}

// RiskScoreRecord is one immutable scoring result for a user. Records are
// never mutated; a newer record supersedes older ones, and the "current"
// score for a user is the most recent by CalculatedAt.
type RiskScoreRecord struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	TenantID     uuid.UUID           `json:"tenant_id"`
	OverallScore float64             `json:"overall_score"`
	SubScores    SubScores           `json:"sub_scores"`
	RiskLevel    constants.RiskLevel `json:"risk_level"`
	CalculatedAt time.Time           `json:"calculated_at"`
}

// Age returns how old the record is relative to now.
func (r *RiskScoreRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.CalculatedAt)
}
