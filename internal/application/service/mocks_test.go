package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/seclearn/analytics/internal/domain/models"
)

// MockSignalReader is a mock implementation of repository.SignalReader.
type MockSignalReader struct {
	mock.Mock
}

func (m *MockSignalReader) GetRecentSimulations(ctx context.Context, userID uuid.UUID, limit int) ([]models.PhishingSimulation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PhishingSimulation), args.Error(1)
}

func (m *MockSignalReader) GetEnrollments(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Enrollment), args.Error(1)
}

func (m *MockSignalReader) GetLastCompletedEnrollment(ctx context.Context, userID uuid.UUID) (*models.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockSignalReader) GetRecentQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]models.QuizAttempt, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizAttempt), args.Error(1)
}

func (m *MockSignalReader) CountSecurityIncidents(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockSignalReader) GetTenantEnrollments(ctx context.Context, tenantID uuid.UUID) ([]models.Enrollment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Enrollment), args.Error(1)
}

// MockRiskScoreRepository is a mock implementation of repository.RiskScoreRepository.
type MockRiskScoreRepository struct {
	mock.Mock
}

func (m *MockRiskScoreRepository) Save(ctx context.Context, record *models.RiskScoreRecord) (*models.RiskScoreRecord, error) {
	args := m.Called(ctx, record)
	if rf, ok := args.Get(0).(func(context.Context, *models.RiskScoreRecord) *models.RiskScoreRecord); ok {
		return rf(ctx, record), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskScoreRecord), args.Error(1)
}

func (m *MockRiskScoreRepository) GetLatest(ctx context.Context, userID uuid.UUID) (*models.RiskScoreRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskScoreRecord), args.Error(1)
}

func (m *MockRiskScoreRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.RiskScoreRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RiskScoreRecord), args.Error(1)
}

// MockScheduleRepository is a mock implementation of repository.ScheduleRepository.
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *models.ReportSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportSchedule), args.Error(1)
}

func (m *MockScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]models.ReportSchedule, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportSchedule), args.Error(1)
}

func (m *MockScheduleRepository) Save(ctx context.Context, schedule *models.ReportSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

// MockEventRepository is a mock implementation of repository.EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Append(ctx context.Context, event *models.BehavioralEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) ListSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]models.BehavioralEvent, error) {
	args := m.Called(ctx, tenantID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BehavioralEvent), args.Error(1)
}

// memoryCache is a minimal in-memory ScoreCache for tests.
type memoryCache struct {
	records map[uuid.UUID]*models.RiskScoreRecord
}

func newMemoryCache() *memoryCache {
	return &memoryCache{records: make(map[uuid.UUID]*models.RiskScoreRecord)}
}

func (c *memoryCache) Get(ctx context.Context, userID uuid.UUID) (*models.RiskScoreRecord, bool) {
	record, ok := c.records[userID]
	return record, ok
}

func (c *memoryCache) Set(ctx context.Context, record *models.RiskScoreRecord) {
	c.records[record.UserID] = record
}

func (c *memoryCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	delete(c.records, userID)
}

// recordingDispatcher captures dispatched schedules.
type recordingDispatcher struct {
	dispatched []uuid.UUID
}

func (d *recordingDispatcher) DispatchReport(ctx context.Context, schedule *models.ReportSchedule) error {
	d.dispatched = append(d.dispatched, schedule.ID)
	return nil
}
