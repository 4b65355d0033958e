package service

import (
	"time"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/pkg/constants"
)

// SubScoreSet mirrors models.SubScores for use inside the scoring pipeline.
type SubScoreSet = models.SubScores

const (
	// neutralScore is returned when a calculator has no history to judge by.
	neutralScore = 50.0

	// maximalScore is returned when absence of data itself implies maximal
	// risk (e.g. training never completed).
	maximalScore = 100.0
)

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// PhishingScore scores a user's recent phishing-simulation outcomes.
// No history yields the neutral default. Clicking raises risk, reporting
// lowers it; the result is clamped to [0,100] on both ends.
func PhishingScore(simulations []models.PhishingSimulation) float64 {
	if len(simulations) == 0 {
		return neutralScore
	}
	var clicked, reported int
	for _, sim := range simulations {
		if sim.WasClicked {
			clicked++
		}
		if sim.WasReported {
			reported++
		}
	}
	return clampScore(float64(clicked)*10 - float64(reported)*5 + 50)
}

// TrainingCompletionScore scores how much assigned training a user has
// finished; higher completion lowers the score. A user with no enrollments
// scores 100: an unenrolled user has demonstrated no completed training.
func TrainingCompletionScore(enrollments []models.Enrollment) float64 {
	if len(enrollments) == 0 {
		return maximalScore
	}
	var completed int
	for _, e := range enrollments {
		if e.IsCompleted() {
			completed++
		}
	}
	fraction := float64(completed) / float64(len(enrollments))
	return clampScore(100 - fraction*100)
}

// TimeSinceTrainingScore grows linearly with training staleness, reaching
// 100 after one year without a completed course. A user who has never
// completed training scores maximal risk.
func TimeSinceTrainingScore(lastCompleted *models.Enrollment, now time.Time) float64 {
	if lastCompleted == nil || lastCompleted.CompletedAt == nil {
		return maximalScore
	}
	days := now.Sub(*lastCompleted.CompletedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return clampScore(days / 365 * 100)
}

// QuizPerformanceScore inverts the user's average quiz score: better
// performance lowers risk. No attempts yields the neutral default.
func QuizPerformanceScore(attempts []models.QuizAttempt) float64 {
	if len(attempts) == 0 {
		return neutralScore
	}
	var total float64
	for _, a := range attempts {
		total += a.Score
	}
	avg := total / float64(len(attempts))
	return clampScore(100 - avg)
}

// SecurityIncidentScore scales with the count of security_incident and
// policy_violation events for the user, 20 points each, capped at 100.
// The lookback window is unbounded.
func SecurityIncidentScore(incidentCount int) float64 {
	if incidentCount < 0 {
		incidentCount = 0
	}
	return clampScore(float64(incidentCount) * 20)
}

// LoginAnomalyScorer is a pluggable strategy for the login-anomaly signal.
// The intended algorithm is undocumented upstream, so the shipped
// implementation is an explicit placeholder rather than invented semantics.
type LoginAnomalyScorer interface {
	Score(userID string, events []models.BehavioralEvent) float64
}

// StaticLoginAnomalyScorer returns a fixed value regardless of input.
// It stands in for a future anomaly model.
type StaticLoginAnomalyScorer struct {
	Value float64
}

// NewStaticLoginAnomalyScorer returns the placeholder scorer with the
// upstream stub value of 10.
func NewStaticLoginAnomalyScorer() StaticLoginAnomalyScorer {
	return StaticLoginAnomalyScorer{Value: 10}
}

func (s StaticLoginAnomalyScorer) Score(userID string, events []models.BehavioralEvent) float64 {
	return clampScore(s.Value)
}

// CountIncidentEvents counts the events that feed SecurityIncidentScore.
func CountIncidentEvents(events []models.BehavioralEvent) int {
	var n int
	for _, e := range events {
		if e.EventType == constants.EventTypeSecurityIncident || e.EventType == constants.EventTypePolicyViolation {
			n++
		}
	}
	return n
}
