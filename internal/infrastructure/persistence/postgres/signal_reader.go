package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	"github.com/seclearn/analytics/pkg/constants"
	apperrors "github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

type signalReader struct {
	db  *gorm.DB
	log logger.Logger
}

// NewSignalReader creates the PostgreSQL-backed reader for the behavioral
// data scoring consumes.
func NewSignalReader(db *gorm.DB, log logger.Logger) repository.SignalReader {
	return &signalReader{db: db, log: log}
}

func (r *signalReader) GetRecentSimulations(ctx context.Context, userID uuid.UUID, limit int) ([]models.PhishingSimulation, error) {
	var dbms []phishingSimulationDBM
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&dbms).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, "get recent simulations")
	}

	sims := make([]models.PhishingSimulation, 0, len(dbms))
	for i := range dbms {
		sims = append(sims, dbms[i].toDomain())
	}
	return sims, nil
}

func (r *signalReader) GetEnrollments(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	var dbms []enrollmentDBM
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&dbms).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, "get enrollments")
	}
	return enrollmentsToDomain(dbms), nil
}

func (r *signalReader) GetLastCompletedEnrollment(ctx context.Context, userID uuid.UUID) (*models.Enrollment, error) {
	var dbm enrollmentDBM
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(constants.EnrollmentStatusCompleted)).
		Order("completed_at DESC").
		First(&dbm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, apperrors.Wrapf(err, "get last completed enrollment")
	}
	enrollment := dbm.toDomain()
	return &enrollment, nil
}

func (r *signalReader) GetRecentQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]models.QuizAttempt, error) {
	var dbms []quizAttemptDBM
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("attempted_at DESC").
		Limit(limit).
		Find(&dbms).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, "get recent quiz attempts")
	}

	attempts := make([]models.QuizAttempt, 0, len(dbms))
	for i := range dbms {
		attempts = append(attempts, dbms[i].toDomain())
	}
	return attempts, nil
}

func (r *signalReader) CountSecurityIncidents(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&behavioralEventDBM{}).
		Where("user_id = ? AND event_type IN ?", userID, []string{
			string(constants.EventTypeSecurityIncident),
			string(constants.EventTypePolicyViolation),
		}).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrapf(err, "count security incidents")
	}
	return int(count), nil
}

func (r *signalReader) GetTenantEnrollments(ctx context.Context, tenantID uuid.UUID) ([]models.Enrollment, error) {
	var dbms []enrollmentDBM
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&dbms).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, "get tenant enrollments")
	}
	return enrollmentsToDomain(dbms), nil
}

func enrollmentsToDomain(dbms []enrollmentDBM) []models.Enrollment {
	enrollments := make([]models.Enrollment, 0, len(dbms))
	for i := range dbms {
		enrollments = append(enrollments, dbms[i].toDomain())
	}
	return enrollments
}
