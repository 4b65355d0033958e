package models

import "github.com/seclearn/analytics/pkg/constants"

// TrendPrediction is the result of extrapolating a user's future risk score
// from their bounded history window. InsufficientData is a normal result
// variant, not a failure; the numeric fields are only meaningful when Status
// is TrendStatusOK.
type TrendPrediction struct {
	Status         constants.TrendStatus    `json:"status"`
	CurrentScore   float64                  `json:"current_score,omitempty"`
	PredictedScore float64                  `json:"predicted_score,omitempty"`
	TrendDirection constants.TrendDirection `json:"trend_direction,omitempty"`
	Confidence     constants.Confidence     `json:"confidence,omitempty"`
}

// ComplianceForecast estimates a tenant's training-completion rate. Rates are
// integer percentages; AtRiskUserCount counts enrollments that are neither
// completed nor progressing.
type ComplianceForecast struct {
	CurrentRatePct   int `json:"current_rate_pct"`
	PredictedRatePct int `json:"predicted_rate_pct"`
	AtRiskUserCount  int `json:"at_risk_user_count"`
}

// Anomaly flags an abnormal pattern in a tenant's event stream.
type Anomaly struct {
	Type     constants.AnomalyType     `json:"type"`
	Severity constants.AnomalySeverity `json:"severity"`
	Detail   string                    `json:"detail,omitempty"`
}
