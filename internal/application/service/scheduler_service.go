package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	domain "github.com/seclearn/analytics/internal/domain/service"
	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// defaultSchedulerConcurrency bounds how many due schedules fire in parallel
// within one tick. Schedules have no data dependency on each other.
const defaultSchedulerConcurrency = 8

// ScheduleFiredRecorder records scheduler metrics. Satisfied by
// monitoring.Metrics; a nil recorder is tolerated.
type ScheduleFiredRecorder interface {
	RecordScheduleFired(tenantID, frequency, result string)
}

// ReportDispatcher hands a fired schedule to whatever produces the actual
// report (mailer, export pipeline, broker). Dispatch failures do not block
// the schedule's bookkeeping; the run is retried at the next occurrence.
type ReportDispatcher interface {
	DispatchReport(ctx context.Context, schedule *models.ReportSchedule) error
}

// SchedulerService is the scheduling runner: it periodically finds due
// report schedules, dispatches them, and persists each schedule's next
// execution instant as computed by the recurrence calculator.
type SchedulerService interface {
	// Run blocks, ticking at the configured interval until ctx is done.
	Run(ctx context.Context)

	// Tick processes one pass over the due schedules. Exposed for the
	// runner loop and for deterministic tests.
	Tick(ctx context.Context) error

	// CreateSchedule validates a new schedule, computes its first NextRunAt,
	// and stores it.
	CreateSchedule(ctx context.Context, schedule *models.ReportSchedule) error

	// GetSchedule returns a stored schedule by ID.
	GetSchedule(ctx context.Context, id uuid.UUID) (*models.ReportSchedule, error)
}

type schedulerService struct {
	schedules  repository.ScheduleRepository
	dispatcher ReportDispatcher
	clock      domain.Clock
	interval   time.Duration
	metrics    ScheduleFiredRecorder
	log        logger.Logger
}

// NewSchedulerService creates the scheduling runner. dispatcher and metrics
// may be nil; interval <= 0 defaults to one minute.
func NewSchedulerService(
	schedules repository.ScheduleRepository,
	dispatcher ReportDispatcher,
	clock domain.Clock,
	interval time.Duration,
	metrics ScheduleFiredRecorder,
	log logger.Logger,
) SchedulerService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &schedulerService{
		schedules:  schedules,
		dispatcher: dispatcher,
		clock:      clock,
		interval:   interval,
		metrics:    metrics,
		log:        log.WithComponent("SchedulerService"),
	}
}

func (s *schedulerService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info(ctx, "scheduling runner started", logger.Fields{"interval": s.interval.String()})
	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, "scheduling runner stopped")
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error(ctx, "scheduler tick failed", err)
			}
		}
	}
}

func (s *schedulerService) Tick(ctx context.Context) error {
	now := s.clock.Now()
	due, err := s.schedules.ListDue(ctx, now)
	if err != nil {
		return errors.ErrDependencyUnavailable.WithError(err)
	}
	if len(due) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultSchedulerConcurrency)
	for i := range due {
		schedule := due[i]
		g.Go(func() error {
			s.fire(gctx, &schedule, now)
			return nil
		})
	}
	return g.Wait()
}

// fire dispatches one due schedule and writes back its bookkeeping. The
// recomputed NextRunAt is always strictly after now, so a schedule cannot
// fire twice within one tick.
func (s *schedulerService) fire(ctx context.Context, schedule *models.ReportSchedule, now time.Time) {
	next, err := domain.NextRun(now, schedule)
	if err != nil {
		// An incomplete schedule should have been rejected at creation;
		// disable it rather than retrying forever.
		s.log.Error(ctx, "schedule has invalid configuration, disabling", err, logger.Fields{
			"schedule_id": schedule.ID.String(),
		})
		schedule.Enabled = false
		if saveErr := s.schedules.Save(ctx, schedule); saveErr != nil {
			s.log.Error(ctx, "failed to disable invalid schedule", saveErr, logger.Fields{
				"schedule_id": schedule.ID.String(),
			})
		}
		s.recordFired(schedule, "invalid")
		return
	}

	result := "fired"
	if s.dispatcher != nil {
		if err := s.dispatcher.DispatchReport(ctx, schedule); err != nil {
			result = "dispatch_failed"
			s.log.Error(ctx, "report dispatch failed", err, logger.Fields{
				"schedule_id": schedule.ID.String(),
				"tenant_id":   schedule.TenantID.String(),
			})
		}
	}

	firedAt := now
	schedule.LastRunAt = &firedAt
	schedule.NextRunAt = next
	if err := s.schedules.Save(ctx, schedule); err != nil {
		s.log.Error(ctx, "failed to persist schedule run", err, logger.Fields{
			"schedule_id": schedule.ID.String(),
		})
		s.recordFired(schedule, "save_failed")
		return
	}

	s.log.Info(ctx, "report schedule fired", logger.Fields{
		"schedule_id": schedule.ID.String(),
		"tenant_id":   schedule.TenantID.String(),
		"frequency":   schedule.Frequency,
		"next_run_at": next.Format(time.RFC3339),
	})
	s.recordFired(schedule, result)
}

func (s *schedulerService) CreateSchedule(ctx context.Context, schedule *models.ReportSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	now := s.clock.Now()
	next, err := domain.NextRun(now, schedule)
	if err != nil {
		return err
	}

	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	schedule.NextRunAt = next
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return errors.ErrDependencyUnavailable.WithError(err)
	}

	s.log.Info(ctx, "report schedule created", logger.Fields{
		"schedule_id": schedule.ID.String(),
		"tenant_id":   schedule.TenantID.String(),
		"frequency":   schedule.Frequency,
		"next_run_at": next.Format(time.RFC3339),
	})
	return nil
}

func (s *schedulerService) GetSchedule(ctx context.Context, id uuid.UUID) (*models.ReportSchedule, error) {
	return s.schedules.GetByID(ctx, id)
}

func (s *schedulerService) recordFired(schedule *models.ReportSchedule, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordScheduleFired(schedule.TenantID.String(), string(schedule.Frequency), result)
}
