// Package handlers contains the gin HTTP handlers for the analytics API.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/application/dto"
	"github.com/seclearn/analytics/internal/application/service"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

const (
	defaultTrendDaysAhead = 30
	maxTrendDaysAhead     = 365
)

// RiskHandler serves per-user risk scores and trend predictions.
type RiskHandler struct {
	scores service.RiskScoreService
	trends service.TrendService
	log    logger.Logger
}

// NewRiskHandler creates the risk endpoints handler.
func NewRiskHandler(scores service.RiskScoreService, trends service.TrendService, log logger.Logger) *RiskHandler {
	return &RiskHandler{scores: scores, trends: trends, log: log}
}

// GetRiskScore handles GET /api/v1/users/:user_id/risk-score.
// ?force=true bypasses the cache window and recomputes.
func (h *RiskHandler) GetRiskScore(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("user_id must be a UUID"))
		return
	}
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("tenant_id query parameter must be a UUID"))
		return
	}
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	record, err := h.scores.Calculate(c.Request.Context(), userID, tenantID, force)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, dto.NewRiskScoreResponse(record))
}

// GetRiskTrend handles GET /api/v1/users/:user_id/risk-trend.
// ?days= controls the projection horizon, default 30.
func (h *RiskHandler) GetRiskTrend(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("user_id must be a UUID"))
		return
	}

	days, err := parseDays(c.DefaultQuery("days", ""), defaultTrendDaysAhead)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	prediction, err := h.trends.Predict(c.Request.Context(), userID, days)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, prediction)
}

func parseDays(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > maxTrendDaysAhead {
		return 0, errors.ErrInvalidRequest("days must be an integer in [1,365]")
	}
	return days, nil
}
