package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
)

// ScheduleRepository persists report schedules for the scheduling runner.
type ScheduleRepository interface {
	// Create stores a new schedule.
	Create(ctx context.Context, schedule *models.ReportSchedule) error

	// GetByID returns the schedule, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReportSchedule, error)

	// ListDue returns every enabled schedule whose NextRunAt is not after now.
	ListDue(ctx context.Context, now time.Time) ([]models.ReportSchedule, error)

	// Save writes back a schedule's run bookkeeping (NextRunAt, LastRunAt).
	Save(ctx context.Context, schedule *models.ReportSchedule) error
}
