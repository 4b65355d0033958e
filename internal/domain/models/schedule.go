package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
)

// ReportSchedule describes a recurring report job. The recurrence calculator
// mutates nothing; NextRunAt is written back by the scheduling runner after
// each firing and is always strictly later than the instant it was computed at.
type ReportSchedule struct {
	ID        uuid.UUID           `json:"id"`
	TenantID  uuid.UUID           `json:"tenant_id"`
	Frequency constants.Frequency `json:"frequency"`

	// DayOfWeek is required for weekly schedules.
	DayOfWeek *time.Weekday `json:"day_of_week,omitempty"`

	// DayOfMonth is required for monthly schedules, 1-31. Values past the end
	// of a month clamp to that month's last day.
	DayOfMonth *int `json:"day_of_month,omitempty"`

	Hour   int `json:"hour"`
	Minute int `json:"minute"`

	NextRunAt time.Time  `json:"next_run_at"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Enabled   bool       `json:"enabled"`
}

// Validate checks that the schedule carries every field its frequency
// requires. Callers are expected to validate before handing a schedule to the
// recurrence calculator; the calculator itself fails fast on incomplete input.
func (s *ReportSchedule) Validate() error {
	if s.Hour < 0 || s.Hour > 23 {
		return errors.ErrInvalidScheduleConfig("hour must be in [0,23]")
	}
	if s.Minute < 0 || s.Minute > 59 {
		return errors.ErrInvalidScheduleConfig("minute must be in [0,59]")
	}
	switch s.Frequency {
	case constants.FrequencyDaily, constants.FrequencyQuarterly, constants.FrequencyYearly:
		return nil
	case constants.FrequencyWeekly:
		if s.DayOfWeek == nil {
			return errors.ErrInvalidScheduleConfig("weekly schedule requires day_of_week")
		}
		return nil
	case constants.FrequencyMonthly:
		if s.DayOfMonth == nil {
			return errors.ErrInvalidScheduleConfig("monthly schedule requires day_of_month")
		}
		if *s.DayOfMonth < 1 || *s.DayOfMonth > 31 {
			return errors.ErrInvalidScheduleConfig("day_of_month must be in [1,31]")
		}
		return nil
	default:
		return errors.ErrInvalidScheduleConfig("unknown frequency: " + string(s.Frequency))
	}
}
