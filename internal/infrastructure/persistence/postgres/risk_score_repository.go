package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	apperrors "github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

type riskScoreRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewRiskScoreRepository creates the PostgreSQL-backed risk score store.
func NewRiskScoreRepository(db *gorm.DB, log logger.Logger) repository.RiskScoreRepository {
	return &riskScoreRepository{db: db, log: log}
}

func (r *riskScoreRepository) Save(ctx context.Context, record *models.RiskScoreRecord) (*models.RiskScoreRecord, error) {
	dbm := riskScoreFromDomain(record)
	if dbm.ID == uuid.Nil {
		dbm.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(dbm).Error; err != nil {
		r.log.Error(ctx, "failed to save risk score", err, logger.Fields{
			"user_id":   record.UserID,
			"tenant_id": record.TenantID,
		})
		return nil, apperrors.Wrapf(err, "save risk score")
	}
	return dbm.toDomain(), nil
}

func (r *riskScoreRepository) GetLatest(ctx context.Context, userID uuid.UUID) (*models.RiskScoreRecord, error) {
	var dbm riskScoreDBM
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("calculated_at DESC").
		First(&dbm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, apperrors.Wrapf(err, "get latest risk score")
	}
	return dbm.toDomain(), nil
}

func (r *riskScoreRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.RiskScoreRecord, error) {
	var dbms []riskScoreDBM
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("calculated_at DESC").
		Limit(limit).
		Find(&dbms).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, "get recent risk scores")
	}

	records := make([]models.RiskScoreRecord, 0, len(dbms))
	for i := range dbms {
		records = append(records, *dbms[i].toDomain())
	}
	return records, nil
}
