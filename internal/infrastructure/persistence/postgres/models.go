package postgres

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/pkg/constants"
)

// Database mapping structs. Kept separate from the domain models so schema
// concerns never leak into the scoring logic.

type riskScoreDBM struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                  uuid.UUID `gorm:"type:uuid;index:idx_risk_scores_user_calculated,priority:1"`
	TenantID                uuid.UUID `gorm:"type:uuid;index"`
	OverallScore            float64
	PhishingScore           float64
	TrainingCompletionScore float64
	TimeSinceTrainingScore  float64
	QuizPerformanceScore    float64
	SecurityIncidentScore   float64
	LoginAnomalyScore       float64
	RiskLevel               string
	CalculatedAt            time.Time `gorm:"index:idx_risk_scores_user_calculated,priority:2,sort:desc"`
}

func (riskScoreDBM) TableName() string { return "risk_scores" }

func (m *riskScoreDBM) toDomain() *models.RiskScoreRecord {
	return &models.RiskScoreRecord{
		ID:           m.ID,
		UserID:       m.UserID,
		TenantID:     m.TenantID,
		OverallScore: m.OverallScore,
		SubScores: models.SubScores{
			Phishing:           m.PhishingScore,
			TrainingCompletion: m.TrainingCompletionScore,
			TimeSinceTraining:  m.TimeSinceTrainingScore,
			QuizPerformance:    m.QuizPerformanceScore,
			SecurityIncident:   m.SecurityIncidentScore,
			LoginAnomaly:       m.LoginAnomalyScore,
		},
		RiskLevel:    constants.RiskLevel(m.RiskLevel),
		CalculatedAt: m.CalculatedAt,
	}
}

func riskScoreFromDomain(r *models.RiskScoreRecord) *riskScoreDBM {
	return &riskScoreDBM{
		ID:                      r.ID,
		UserID:                  r.UserID,
		TenantID:                r.TenantID,
		OverallScore:            r.OverallScore,
		PhishingScore:           r.SubScores.Phishing,
		TrainingCompletionScore: r.SubScores.TrainingCompletion,
		TimeSinceTrainingScore:  r.SubScores.TimeSinceTraining,
		QuizPerformanceScore:    r.SubScores.QuizPerformance,
		SecurityIncidentScore:   r.SubScores.SecurityIncident,
		LoginAnomalyScore:       r.SubScores.LoginAnomaly,
		RiskLevel:               string(r.RiskLevel),
		CalculatedAt:            r.CalculatedAt,
	}
}

type behavioralEventDBM struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	TenantID  uuid.UUID `gorm:"type:uuid;index:idx_events_tenant_timestamp,priority:1"`
	EventType string
	Timestamp time.Time `gorm:"index:idx_events_tenant_timestamp,priority:2,sort:desc"`
	Metadata  string
}

func (behavioralEventDBM) TableName() string { return "behavioral_events" }

func (m *behavioralEventDBM) toDomain() (*models.BehavioralEvent, error) {
	event := &models.BehavioralEvent{
		ID:        m.ID,
		UserID:    m.UserID,
		TenantID:  m.TenantID,
		EventType: constants.EventType(m.EventType),
		Timestamp: m.Timestamp,
	}
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &event.Metadata); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func behavioralEventFromDomain(e *models.BehavioralEvent) (*behavioralEventDBM, error) {
	dbm := &behavioralEventDBM{
		ID:        e.ID,
		UserID:    e.UserID,
		TenantID:  e.TenantID,
		EventType: string(e.EventType),
		Timestamp: e.Timestamp,
	}
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, err
		}
		dbm.Metadata = string(raw)
	}
	return dbm, nil
}

type reportScheduleDBM struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;index"`
	Frequency  string
	DayOfWeek  *int
	DayOfMonth *int
	Hour       int
	Minute     int
	NextRunAt  time.Time `gorm:"index"`
	LastRunAt  *time.Time
	Enabled    bool
}

func (reportScheduleDBM) TableName() string { return "report_schedules" }

func (m *reportScheduleDBM) toDomain() *models.ReportSchedule {
	schedule := &models.ReportSchedule{
		ID:         m.ID,
		TenantID:   m.TenantID,
		Frequency:  constants.Frequency(m.Frequency),
		DayOfMonth: m.DayOfMonth,
		Hour:       m.Hour,
		Minute:     m.Minute,
		NextRunAt:  m.NextRunAt,
		LastRunAt:  m.LastRunAt,
		Enabled:    m.Enabled,
	}
	if m.DayOfWeek != nil {
		dow := time.Weekday(*m.DayOfWeek)
		schedule.DayOfWeek = &dow
	}
	return schedule
}

func reportScheduleFromDomain(s *models.ReportSchedule) *reportScheduleDBM {
	dbm := &reportScheduleDBM{
		ID:         s.ID,
		TenantID:   s.TenantID,
		Frequency:  string(s.Frequency),
		DayOfMonth: s.DayOfMonth,
		Hour:       s.Hour,
		Minute:     s.Minute,
		NextRunAt:  s.NextRunAt,
		LastRunAt:  s.LastRunAt,
		Enabled:    s.Enabled,
	}
	if s.DayOfWeek != nil {
		dow := int(*s.DayOfWeek)
		dbm.DayOfWeek = &dow
	}
	return dbm
}

type phishingSimulationDBM struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_simulations_user_sent,priority:1"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	SentAt      time.Time `gorm:"index:idx_simulations_user_sent,priority:2,sort:desc"`
	WasClicked  bool
	WasReported bool
}

func (phishingSimulationDBM) TableName() string { return "phishing_simulations" }

func (m *phishingSimulationDBM) toDomain() models.PhishingSimulation {
	return models.PhishingSimulation{
		ID:          m.ID,
		UserID:      m.UserID,
		TenantID:    m.TenantID,
		SentAt:      m.SentAt,
		WasClicked:  m.WasClicked,
		WasReported: m.WasReported,
	}
}

type enrollmentDBM struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	CourseID    uuid.UUID `gorm:"type:uuid"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	Status      string
	CompletedAt *time.Time
}

func (enrollmentDBM) TableName() string { return "enrollments" }

func (m *enrollmentDBM) toDomain() models.Enrollment {
	return models.Enrollment{
		ID:          m.ID,
		UserID:      m.UserID,
		CourseID:    m.CourseID,
		TenantID:    m.TenantID,
		Status:      constants.EnrollmentStatus(m.Status),
		CompletedAt: m.CompletedAt,
	}
}

type quizAttemptDBM struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_quiz_attempts_user_attempted,priority:1"`
	TenantID    uuid.UUID `gorm:"type:uuid;index"`
	Score       float64
	AttemptedAt time.Time `gorm:"index:idx_quiz_attempts_user_attempted,priority:2,sort:desc"`
}

func (quizAttemptDBM) TableName() string { return "quiz_attempts" }

func (m *quizAttemptDBM) toDomain() models.QuizAttempt {
	return models.QuizAttempt{
		ID:          m.ID,
		UserID:      m.UserID,
		TenantID:    m.TenantID,
		Score:       m.Score,
		AttemptedAt: m.AttemptedAt,
	}
}
