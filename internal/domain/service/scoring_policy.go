package service

import (
	"math"
	"time"

	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
)

// ScoreWeights holds the contribution of each sub-score to the overall score.
// Weights must sum to 1.0 so the weighted sum stays inside [0,100].
type ScoreWeights struct {
	Phishing           float64 `mapstructure:"phishing" json:"phishing"`
	TrainingCompletion float64 `mapstructure:"training_completion" json:"training_completion"`
	TimeSinceTraining  float64 `mapstructure:"time_since_training" json:"time_since_training"`
	QuizPerformance    float64 `mapstructure:"quiz_performance" json:"quiz_performance"`
	SecurityIncident   float64 `mapstructure:"security_incident" json:"security_incident"`
	LoginAnomaly       float64 `mapstructure:"login_anomaly" json:"login_anomaly"`
}

// Sum returns the total of all weights.
func (w ScoreWeights) Sum() float64 {
	return w.Phishing + w.TrainingCompletion + w.TimeSinceTraining +
		w.QuizPerformance + w.SecurityIncident + w.LoginAnomaly
}

// RiskThresholds are the inclusive lower bounds of the critical, high and
// medium bands. Scores below Medium classify as low.
type RiskThresholds struct {
	Critical float64 `mapstructure:"critical" json:"critical"`
	High     float64 `mapstructure:"high" json:"high"`
	Medium   float64 `mapstructure:"medium" json:"medium"`
}

// ScoringPolicy is the complete scoring configuration: weights, band
// thresholds, cache window, and signal window sizes. The weighting policy is
// data, not code; it is loaded from configuration and can be tested
// independently of the combination logic.
type ScoringPolicy struct {
	Weights    ScoreWeights   `mapstructure:"weights" json:"weights"`
	Thresholds RiskThresholds `mapstructure:"thresholds" json:"thresholds"`

	// CacheTTL is how long a computed score stays current; non-forced
	// recalculation inside this window returns the stored record unchanged.
	CacheTTL time.Duration `mapstructure:"cache_ttl" json:"cache_ttl"`

	// SimulationWindow bounds the phishing-outcome lookback.
	SimulationWindow int `mapstructure:"simulation_window" json:"simulation_window"`

	// QuizWindow bounds the quiz-attempt lookback.
	QuizWindow int `mapstructure:"quiz_window" json:"quiz_window"`

	// TrendWindow bounds the prior-score lookback for trend prediction.
	TrendWindow int `mapstructure:"trend_window" json:"trend_window"`

	// TrendMinRecords is the minimum history below which a trend prediction
	// reports insufficient data.
	TrendMinRecords int `mapstructure:"trend_min_records" json:"trend_min_records"`

	// TrendHighConfidence is the record count above which confidence is high.
	TrendHighConfidence int `mapstructure:"trend_high_confidence" json:"trend_high_confidence"`
}

// DefaultScoringPolicy returns the standard policy.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		Weights: ScoreWeights{
			Phishing:           0.30,
			TrainingCompletion: 0.25,
			TimeSinceTraining:  0.15,
			QuizPerformance:    0.15,
			SecurityIncident:   0.10,
			LoginAnomaly:       0.05,
		},
		Thresholds: RiskThresholds{
			Critical: 75,
			High:     50,
			Medium:   25,
		},
		CacheTTL:            constants.DefaultScoreCacheTTL,
		SimulationWindow:    constants.DefaultSimulationWindow,
		QuizWindow:          constants.DefaultQuizWindow,
		TrendWindow:         constants.DefaultTrendWindow,
		TrendMinRecords:     constants.DefaultTrendMinRecords,
		TrendHighConfidence: constants.DefaultTrendHighConfidence,
	}
}

// Validate rejects a policy whose weights do not sum to 1.0 or whose
// thresholds are not strictly descending.
func (p ScoringPolicy) Validate() error {
	if math.Abs(p.Weights.Sum()-1.0) > 1e-9 {
		return errors.ErrInvalidRequest("scoring weights must sum to 1.0")
	}
	if !(p.Thresholds.Critical > p.Thresholds.High && p.Thresholds.High > p.Thresholds.Medium) {
		return errors.ErrInvalidRequest("risk thresholds must be strictly descending")
	}
	if p.CacheTTL <= 0 {
		return errors.ErrInvalidRequest("cache_ttl must be positive")
	}
	return nil
}

// Classify maps an overall score to its risk level. Band lower bounds are
// inclusive: 75.0 is critical, 25.0 is medium.
func (p ScoringPolicy) Classify(score float64) constants.RiskLevel {
	switch {
	case score >= p.Thresholds.Critical:
		return constants.RiskLevelCritical
	case score >= p.Thresholds.High:
		return constants.RiskLevelHigh
	case score >= p.Thresholds.Medium:
		return constants.RiskLevelMedium
	default:
		return constants.RiskLevelLow
	}
}

// Combine computes the overall score as the weighted sum of the sub-scores.
// Every sub-score is bounded in [0,100] and the weights sum to 1, so the
// result is naturally bounded without further clamping.
func (p ScoringPolicy) Combine(s SubScoreSet) float64 {
	return s.Phishing*p.Weights.Phishing +
		s.TrainingCompletion*p.Weights.TrainingCompletion +
		s.TimeSinceTraining*p.Weights.TimeSinceTraining +
		s.QuizPerformance*p.Weights.QuizPerformance +
		s.SecurityIncident*p.Weights.SecurityIncident +
		s.LoginAnomaly*p.Weights.LoginAnomaly
}
