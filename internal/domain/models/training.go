package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/pkg/constants"
)

// PhishingSimulation is the outcome of one simulated phishing message sent
// to a user. Append-only.
type PhishingSimulation struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	SentAt      time.Time `json:"sent_at"`
	WasClicked  bool      `json:"was_clicked"`
	WasReported bool      `json:"was_reported"`
}

// Enrollment is a snapshot of one user's enrollment in a course.
// Read-only input to training-completion scoring and compliance forecasting.
type Enrollment struct {
	ID          uuid.UUID                  `json:"id"`
	UserID      uuid.UUID                  `json:"user_id"`
	CourseID    uuid.UUID                  `json:"course_id"`
	TenantID    uuid.UUID                  `json:"tenant_id"`
	Status      constants.EnrollmentStatus `json:"status"`
	CompletedAt *time.Time                 `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the enrollment finished successfully.
func (e *Enrollment) IsCompleted() bool {
	return e.Status == constants.EnrollmentStatusCompleted
}

// QuizAttempt is one scored quiz attempt by a user.
type QuizAttempt struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Score       float64   `json:"score"`
	AttemptedAt time.Time `json:"attempted_at"`
}
