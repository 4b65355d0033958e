package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	apperrors "github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

type eventRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewEventRepository creates the PostgreSQL-backed behavioral event store.
func NewEventRepository(db *gorm.DB, log logger.Logger) repository.EventRepository {
	return &eventRepository{db: db, log: log}
}

func (r *eventRepository) Append(ctx context.Context, event *models.BehavioralEvent) error {
	dbm, err := behavioralEventFromDomain(event)
	if err != nil {
		return apperrors.Wrapf(err, "encode event metadata")
	}
	if dbm.ID == uuid.Nil {
		dbm.ID = uuid.New()
	}

	// Redelivered events carry the same ID; re-appending them is a no-op.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(dbm).Error
	if err != nil {
		r.log.Error(ctx, "failed to append behavioral event", err, logger.Fields{
			"event_id":  dbm.ID,
			"tenant_id": event.TenantID,
		})
		return apperrors.Wrapf(err, "append event")
	}
	return nil
}

func (r *eventRepository) ListSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]models.BehavioralEvent, error) {
	var dbms []behavioralEventDBM
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND timestamp >= ?", tenantID, since).
		Order("timestamp DESC").
		Find(&dbms).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, "list events")
	}

	events := make([]models.BehavioralEvent, 0, len(dbms))
	for i := range dbms {
		event, err := dbms[i].toDomain()
		if err != nil {
			return nil, apperrors.Wrapf(err, "decode event metadata")
		}
		events = append(events, *event)
	}
	return events, nil
}
