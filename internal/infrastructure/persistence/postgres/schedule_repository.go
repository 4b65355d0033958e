package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	apperrors "github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

type scheduleRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewScheduleRepository creates the PostgreSQL-backed report schedule store.
func NewScheduleRepository(db *gorm.DB, log logger.Logger) repository.ScheduleRepository {
	return &scheduleRepository{db: db, log: log}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *models.ReportSchedule) error {
	if err := r.db.WithContext(ctx).Create(reportScheduleFromDomain(schedule)).Error; err != nil {
		r.log.Error(ctx, "failed to create report schedule", err, logger.Fields{
			"tenant_id": schedule.TenantID,
		})
		return apperrors.Wrapf(err, "create schedule")
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportSchedule, error) {
	var dbm reportScheduleDBM
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrapf(err, "get schedule")
	}
	return dbm.toDomain(), nil
}

func (r *scheduleRepository) ListDue(ctx context.Context, now time.Time) ([]models.ReportSchedule, error) {
	var dbms []reportScheduleDBM
	err := r.db.WithContext(ctx).
		Where("enabled = ? AND next_run_at <= ?", true, now).
		Order("next_run_at ASC").
		Find(&dbms).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, "list due schedules")
	}

	schedules := make([]models.ReportSchedule, 0, len(dbms))
	for i := range dbms {
		schedules = append(schedules, *dbms[i].toDomain())
	}
	return schedules, nil
}

func (r *scheduleRepository) Save(ctx context.Context, schedule *models.ReportSchedule) error {
	if err := r.db.WithContext(ctx).Save(reportScheduleFromDomain(schedule)).Error; err != nil {
		return apperrors.Wrapf(err, "save schedule")
	}
	return nil
}
