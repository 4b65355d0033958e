package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/pkg/constants"
)

// CreateScheduleRequest is the payload for registering a report schedule.
type CreateScheduleRequest struct {
	TenantID   string `json:"tenant_id" binding:"required,uuid"`
	Frequency  string `json:"frequency" binding:"required"`
	DayOfWeek  *int   `json:"day_of_week,omitempty"`
	DayOfMonth *int   `json:"day_of_month,omitempty"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
}

// ToModel converts the request to a domain schedule. Field validation beyond
// shape happens in the domain's Validate.
func (r *CreateScheduleRequest) ToModel() (*models.ReportSchedule, error) {
	tenantID, err := uuid.Parse(r.TenantID)
	if err != nil {
		return nil, err
	}

	schedule := &models.ReportSchedule{
		TenantID:   tenantID,
		Frequency:  constants.Frequency(r.Frequency),
		DayOfMonth: r.DayOfMonth,
		Hour:       r.Hour,
		Minute:     r.Minute,
		Enabled:    true,
	}
	if r.DayOfWeek != nil {
		dow := time.Weekday(*r.DayOfWeek)
		schedule.DayOfWeek = &dow
	}
	return schedule, nil
}

// ScheduleResponse is the wire shape of a stored schedule.
type ScheduleResponse struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	Frequency  string     `json:"frequency"`
	DayOfWeek  *int       `json:"day_of_week,omitempty"`
	DayOfMonth *int       `json:"day_of_month,omitempty"`
	Hour       int        `json:"hour"`
	Minute     int        `json:"minute"`
	NextRunAt  time.Time  `json:"next_run_at"`
	LastRunAt  *time.Time `json:"last_run_at,omitempty"`
	Enabled    bool       `json:"enabled"`
}

// NewScheduleResponse builds the response from a domain schedule.
func NewScheduleResponse(s *models.ReportSchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:         s.ID.String(),
		TenantID:   s.TenantID.String(),
		Frequency:  string(s.Frequency),
		DayOfMonth: s.DayOfMonth,
		Hour:       s.Hour,
		Minute:     s.Minute,
		NextRunAt:  s.NextRunAt,
		LastRunAt:  s.LastRunAt,
		Enabled:    s.Enabled,
	}
	if s.DayOfWeek != nil {
		dow := int(*s.DayOfWeek)
		resp.DayOfWeek = &dow
	}
	return resp
}
