package dto

import (
	"time"

	"github.com/seclearn/analytics/internal/domain/models"
)

// RiskScoreResponse is the wire shape of a risk score record.
type RiskScoreResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	TenantID     string           `json:"tenant_id"`
	OverallScore float64          `json:"overall_score"`
	SubScores    models.SubScores `json:"sub_scores"`
	RiskLevel    string           `json:"risk_level"`
	CalculatedAt time.Time        `json:"calculated_at"`
}

// NewRiskScoreResponse builds the response from a domain record.
func NewRiskScoreResponse(r *models.RiskScoreRecord) *RiskScoreResponse {
	return &RiskScoreResponse{
		ID:           r.ID.String(),
		UserID:       r.UserID.String(),
		TenantID:     r.TenantID.String(),
		OverallScore: r.OverallScore,
		SubScores:    r.SubScores,
		RiskLevel:    string(r.RiskLevel),
		CalculatedAt: r.CalculatedAt,
	}
}
