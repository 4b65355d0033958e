package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
)

// EventRepository is the append-only store for behavioral events.
type EventRepository interface {
	// Append stores one event. Events are never updated or deleted.
	Append(ctx context.Context, event *models.BehavioralEvent) error

	// ListSince returns the tenant's events with Timestamp >= since,
	// newest first.
	ListSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]models.BehavioralEvent, error)
}
