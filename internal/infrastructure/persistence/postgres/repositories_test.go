package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/pkg/constants"
	apperrors "github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&riskScoreDBM{},
		&behavioralEventDBM{},
		&reportScheduleDBM{},
		&phishingSimulationDBM{},
		&enrollmentDBM{},
		&quizAttemptDBM{},
	)
	require.NoError(t, err)
	return db
}

func TestRiskScoreRepository_SaveAndGetLatest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRiskScoreRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	userID := uuid.New()
	tenantID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, score := range []float64{40, 55, 70} {
		saved, err := repo.Save(ctx, &models.RiskScoreRecord{
			UserID:       userID,
			TenantID:     tenantID,
			OverallScore: score,
			RiskLevel:    constants.RiskLevelHigh,
			CalculatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, saved.ID)
	}

	latest, err := repo.GetLatest(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 70.0, latest.OverallScore)

	recent, err := repo.GetRecent(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 70.0, recent[0].OverallScore)
	assert.Equal(t, 55.0, recent[1].OverallScore)
}

func TestRiskScoreRepository_GetLatest_NeverScored(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRiskScoreRepository(db, logger.NewNoopLogger())

	latest, err := repo.GetLatest(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRiskScoreRepository_SaveRoundTripsSubScores(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRiskScoreRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	userID := uuid.New()
	subScores := models.SubScores{
		Phishing:           80,
		TrainingCompletion: 60,
		TimeSinceTraining:  40,
		QuizPerformance:    30,
		SecurityIncident:   20,
		LoginAnomaly:       10,
	}
	_, err := repo.Save(ctx, &models.RiskScoreRecord{
		UserID:       userID,
		TenantID:     uuid.New(),
		OverallScore: 57.5,
		SubScores:    subScores,
		RiskLevel:    constants.RiskLevelHigh,
		CalculatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	latest, err := repo.GetLatest(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, subScores, latest.SubScores)
}

func TestEventRepository_AppendIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	event := &models.BehavioralEvent{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TenantID:  uuid.New(),
		EventType: constants.EventTypeLogin,
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Metadata:  map[string]string{"source": "sso"},
	}

	require.NoError(t, repo.Append(ctx, event))
	require.NoError(t, repo.Append(ctx, event))

	events, err := repo.ListSince(ctx, event.TenantID, event.Timestamp.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, map[string]string{"source": "sso"}, events[0].Metadata)
}

func TestEventRepository_ListSinceFiltersAndOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	tenantID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		err := repo.Append(ctx, &models.BehavioralEvent{
			UserID:    uuid.New(),
			TenantID:  tenantID,
			EventType: constants.EventTypeLogin,
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}
	// Different tenant, never returned.
	err := repo.Append(ctx, &models.BehavioralEvent{
		UserID:    uuid.New(),
		TenantID:  uuid.New(),
		EventType: constants.EventTypeLogin,
		Timestamp: base.Add(48 * time.Hour),
	})
	require.NoError(t, err)

	events, err := repo.ListSince(ctx, tenantID, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].Timestamp.After(events[1].Timestamp))
	assert.True(t, events[1].Timestamp.After(events[2].Timestamp))
}

func TestScheduleRepository_ListDue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduleRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	dow := time.Monday

	due := &models.ReportSchedule{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Frequency: constants.FrequencyDaily,
		Hour:      7,
		NextRunAt: now.Add(-time.Hour),
		Enabled:   true,
	}
	notYet := &models.ReportSchedule{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Frequency: constants.FrequencyWeekly,
		DayOfWeek: &dow,
		Hour:      9,
		NextRunAt: now.Add(time.Hour),
		Enabled:   true,
	}
	disabled := &models.ReportSchedule{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Frequency: constants.FrequencyDaily,
		NextRunAt: now.Add(-time.Hour),
		Enabled:   false,
	}
	for _, s := range []*models.ReportSchedule{due, notYet, disabled} {
		require.NoError(t, repo.Create(ctx, s))
	}

	dueList, err := repo.ListDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, dueList, 1)
	assert.Equal(t, due.ID, dueList[0].ID)
}

func TestScheduleRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduleRepository(db, logger.NewNoopLogger())

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, apperrors.IsCode(err, constants.ErrCodeNotFound))
}

func TestScheduleRepository_SaveRoundTripsWeekday(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduleRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	dow := time.Friday
	schedule := &models.ReportSchedule{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Frequency: constants.FrequencyWeekly,
		DayOfWeek: &dow,
		Hour:      14,
		Minute:    30,
		NextRunAt: time.Date(2026, 3, 13, 14, 30, 0, 0, time.UTC),
		Enabled:   true,
	}
	require.NoError(t, repo.Create(ctx, schedule))

	fired := time.Date(2026, 3, 13, 14, 30, 5, 0, time.UTC)
	schedule.LastRunAt = &fired
	schedule.NextRunAt = schedule.NextRunAt.AddDate(0, 0, 7)
	require.NoError(t, repo.Save(ctx, schedule))

	got, err := repo.GetByID(ctx, schedule.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DayOfWeek)
	assert.Equal(t, time.Friday, *got.DayOfWeek)
	require.NotNil(t, got.LastRunAt)
	assert.Equal(t, schedule.NextRunAt, got.NextRunAt.UTC())
}

func TestSignalReader_CountSecurityIncidents(t *testing.T) {
	db := setupTestDB(t)
	events := NewEventRepository(db, logger.NewNoopLogger())
	reader := NewSignalReader(db, logger.NewNoopLogger())
	ctx := context.Background()

	userID := uuid.New()
	tenantID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, eventType := range []constants.EventType{
		constants.EventTypeSecurityIncident,
		constants.EventTypePolicyViolation,
		constants.EventTypeLogin,
	} {
		err := events.Append(ctx, &models.BehavioralEvent{
			UserID:    userID,
			TenantID:  tenantID,
			EventType: eventType,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	count, err := reader.CountSecurityIncidents(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSignalReader_Enrollments(t *testing.T) {
	db := setupTestDB(t)
	reader := NewSignalReader(db, logger.NewNoopLogger())
	ctx := context.Background()

	userID := uuid.New()
	tenantID := uuid.New()
	first := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	rows := []*enrollmentDBM{
		{ID: uuid.New(), UserID: userID, TenantID: tenantID, Status: string(constants.EnrollmentStatusCompleted), CompletedAt: &first},
		{ID: uuid.New(), UserID: userID, TenantID: tenantID, Status: string(constants.EnrollmentStatusCompleted), CompletedAt: &second},
		{ID: uuid.New(), UserID: userID, TenantID: tenantID, Status: string(constants.EnrollmentStatusInProgress)},
		{ID: uuid.New(), UserID: uuid.New(), TenantID: tenantID, Status: string(constants.EnrollmentStatusNotStarted)},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}

	enrollments, err := reader.GetEnrollments(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 3)

	last, err := reader.GetLastCompletedEnrollment(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, second, last.CompletedAt.UTC())

	tenantWide, err := reader.GetTenantEnrollments(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, tenantWide, 4)
}

func TestSignalReader_GetLastCompletedEnrollment_None(t *testing.T) {
	db := setupTestDB(t)
	reader := NewSignalReader(db, logger.NewNoopLogger())

	last, err := reader.GetLastCompletedEnrollment(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestSignalReader_RecentSimulationsAndQuizAttempts(t *testing.T) {
	db := setupTestDB(t)
	reader := NewSignalReader(db, logger.NewNoopLogger())
	ctx := context.Background()

	userID := uuid.New()
	tenantID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&phishingSimulationDBM{
			ID:         uuid.New(),
			UserID:     userID,
			TenantID:   tenantID,
			SentAt:     base.Add(time.Duration(i) * 24 * time.Hour),
			WasClicked: i%2 == 0,
		}).Error)
		require.NoError(t, db.Create(&quizAttemptDBM{
			ID:          uuid.New(),
			UserID:      userID,
			TenantID:    tenantID,
			Score:       float64(50 + i),
			AttemptedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}).Error)
	}

	sims, err := reader.GetRecentSimulations(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, sims, 10)
	assert.True(t, sims[0].SentAt.After(sims[9].SentAt))

	attempts, err := reader.GetRecentQuizAttempts(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 10)
	assert.Equal(t, 61.0, attempts[0].Score)
}
