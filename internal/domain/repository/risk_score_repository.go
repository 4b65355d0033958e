package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
)

// RiskScoreRepository is the write path of the record store for risk scores.
// Records are append-only: Save never overwrites, and prior records are never
// mutated. Concurrent writers are safe under the store's own transactional
// semantics.
type RiskScoreRepository interface {
	// Save persists a new record and returns it with its assigned ID.
	Save(ctx context.Context, record *models.RiskScoreRecord) (*models.RiskScoreRecord, error)

	// GetLatest returns the most recent record for the user by CalculatedAt,
	// or nil when the user has never been scored.
	GetLatest(ctx context.Context, userID uuid.UUID) (*models.RiskScoreRecord, error)

	// GetRecent returns up to limit records for the user, newest first.
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.RiskScoreRecord, error)
}
