package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/application/dto"
	"github.com/seclearn/analytics/internal/application/service"
	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// TenantAnalyticsHandler serves tenant-level compliance forecasts and
// anomaly reports.
type TenantAnalyticsHandler struct {
	compliance service.ComplianceService
	anomalies  service.AnomalyService
	log        logger.Logger
}

// NewTenantAnalyticsHandler creates the tenant analytics handler.
func NewTenantAnalyticsHandler(compliance service.ComplianceService, anomalies service.AnomalyService, log logger.Logger) *TenantAnalyticsHandler {
	return &TenantAnalyticsHandler{compliance: compliance, anomalies: anomalies, log: log}
}

// GetComplianceForecast handles GET /api/v1/tenants/:tenant_id/compliance-forecast.
func (h *TenantAnalyticsHandler) GetComplianceForecast(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenant_id"))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("tenant_id must be a UUID"))
		return
	}

	days, err := parseDays(c.DefaultQuery("days", ""), defaultTrendDaysAhead)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	forecast, err := h.compliance.Forecast(c.Request.Context(), tenantID, days)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, forecast)
}

// GetAnomalies handles GET /api/v1/tenants/:tenant_id/anomalies.
// ?window_days= controls the lookback window, default 7.
func (h *TenantAnalyticsHandler) GetAnomalies(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenant_id"))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("tenant_id must be a UUID"))
		return
	}

	windowDays := constants.DefaultAnomalyWindowDays
	if raw := c.Query("window_days"); raw != "" {
		windowDays, err = strconv.Atoi(raw)
		if err != nil || windowDays < 1 || windowDays > 90 {
			dto.SendError(c, errors.ErrInvalidRequest("window_days must be an integer in [1,90]"))
			return
		}
	}

	anomalies, err := h.anomalies.DetectForTenant(c.Request.Context(), tenantID, windowDays)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, gin.H{"anomalies": anomalies, "window_days": windowDays})
}
