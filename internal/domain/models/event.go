package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/pkg/constants"
)

// BehavioralEvent is one unit of user activity. Events are append-only:
// produced by upstream systems, consumed read-only by scoring and anomaly
// detection.
type BehavioralEvent struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	TenantID  uuid.UUID           `json:"tenant_id"`
	EventType constants.EventType `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	Metadata  map[string]string   `json:"metadata,omitempty"`
}

// Validate checks the event against the closed type enumeration.
func (e *BehavioralEvent) Validate() error {
	if e.UserID == uuid.Nil {
		return errMissing("user_id")
	}
	if e.TenantID == uuid.Nil {
		return errMissing("tenant_id")
	}
	if !constants.IsKnownEventType(e.EventType) {
		return errUnknownEventType(string(e.EventType))
	}
	return nil
}
