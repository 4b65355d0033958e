package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/service"
	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
)

func schedule(freq constants.Frequency, hour, minute int) *models.ReportSchedule {
	return &models.ReportSchedule{Frequency: freq, Hour: hour, Minute: minute, Enabled: true}
}

func weekday(d time.Weekday) *time.Weekday { return &d }
func dayOfMonth(d int) *int                { return &d }

func TestNextRunDaily(t *testing.T) {
	t.Run("later today when time has not passed", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
		next, err := service.NextRun(now, schedule(constants.FrequencyDaily, 9, 30))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC), next)
	})

	t.Run("tomorrow when time has passed", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
		next, err := service.NextRun(now, schedule(constants.FrequencyDaily, 9, 30))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 11, 9, 30, 0, 0, time.UTC), next)
	})

	t.Run("exact boundary advances a day", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
		next, err := service.NextRun(now, schedule(constants.FrequencyDaily, 9, 30))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 11, 9, 30, 0, 0, time.UTC), next)
	})
}

func TestNextRunWeekly(t *testing.T) {
	// 2026-03-10 is a Tuesday.
	tuesday := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	t.Run("upcoming weekday this week", func(t *testing.T) {
		s := schedule(constants.FrequencyWeekly, 9, 0)
		s.DayOfWeek = weekday(time.Friday)
		next, err := service.NextRun(tuesday, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 13, 9, 0, 0, 0, time.UTC), next)
		assert.Equal(t, time.Friday, next.Weekday())
	})

	t.Run("target day already passed wraps to next week", func(t *testing.T) {
		s := schedule(constants.FrequencyWeekly, 9, 0)
		s.DayOfWeek = weekday(time.Monday)
		next, err := service.NextRun(tuesday, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 16, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("today with passed time is exactly seven days out", func(t *testing.T) {
		s := schedule(constants.FrequencyWeekly, 9, 0)
		s.DayOfWeek = weekday(time.Tuesday)
		next, err := service.NextRun(tuesday, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 17, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("today with upcoming time fires today", func(t *testing.T) {
		s := schedule(constants.FrequencyWeekly, 23, 0)
		s.DayOfWeek = weekday(time.Tuesday)
		next, err := service.NextRun(tuesday, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC), next)
	})

	t.Run("missing day_of_week fails fast", func(t *testing.T) {
		_, err := service.NextRun(tuesday, schedule(constants.FrequencyWeekly, 9, 0))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, constants.ErrCodeInvalidScheduleConfig))
	})
}

func TestNextRunMonthly(t *testing.T) {
	t.Run("day 31 in january clamps to february 28", func(t *testing.T) {
		// 2026 is not a leap year.
		now := time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC)
		s := schedule(constants.FrequencyMonthly, 9, 0)
		s.DayOfMonth = dayOfMonth(31)
		next, err := service.NextRun(now, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.February, 28, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("day 31 clamps to february 29 in a leap year", func(t *testing.T) {
		now := time.Date(2028, time.January, 31, 10, 0, 0, 0, time.UTC)
		s := schedule(constants.FrequencyMonthly, 9, 0)
		s.DayOfMonth = dayOfMonth(31)
		next, err := service.NextRun(now, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2028, time.February, 29, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("upcoming day this month", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
		s := schedule(constants.FrequencyMonthly, 9, 0)
		s.DayOfMonth = dayOfMonth(15)
		next, err := service.NextRun(now, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("passed day advances to next month", func(t *testing.T) {
		now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
		s := schedule(constants.FrequencyMonthly, 9, 0)
		s.DayOfMonth = dayOfMonth(15)
		next, err := service.NextRun(now, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.April, 15, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("december rolls into january", func(t *testing.T) {
		now := time.Date(2026, time.December, 20, 10, 0, 0, 0, time.UTC)
		s := schedule(constants.FrequencyMonthly, 9, 0)
		s.DayOfMonth = dayOfMonth(15)
		next, err := service.NextRun(now, s)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, time.January, 15, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("missing day_of_month fails fast", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
		_, err := service.NextRun(now, schedule(constants.FrequencyMonthly, 9, 0))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, constants.ErrCodeInvalidScheduleConfig))
	})
}

func TestNextRunQuarterly(t *testing.T) {
	t.Run("mid quarter advances to next boundary", func(t *testing.T) {
		now := time.Date(2026, time.February, 10, 10, 0, 0, 0, time.UTC)
		next, err := service.NextRun(now, schedule(constants.FrequencyQuarterly, 6, 0))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC), next)
	})

	t.Run("fourth quarter rolls into next year", func(t *testing.T) {
		now := time.Date(2026, time.November, 10, 10, 0, 0, 0, time.UTC)
		next, err := service.NextRun(now, schedule(constants.FrequencyQuarterly, 6, 0))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, time.January, 1, 6, 0, 0, 0, time.UTC), next)
	})
}

func TestNextRunYearly(t *testing.T) {
	t.Run("mid year advances to next january first", func(t *testing.T) {
		now := time.Date(2026, time.June, 10, 10, 0, 0, 0, time.UTC)
		next, err := service.NextRun(now, schedule(constants.FrequencyYearly, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("early new year's day fires same day", func(t *testing.T) {
		now := time.Date(2026, time.January, 1, 2, 0, 0, 0, time.UTC)
		next, err := service.NextRun(now, schedule(constants.FrequencyYearly, 6, 0))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.January, 1, 6, 0, 0, 0, time.UTC), next)
	})
}

// The invariant behind all frequencies: the returned instant is strictly
// after now, whatever the inputs.
func TestNextRunAlwaysStrictlyFuture(t *testing.T) {
	instants := []time.Time{
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 23, 59, 0, 0, time.UTC),
		time.Date(2028, time.February, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC),
	}

	var schedules []*models.ReportSchedule
	for _, hour := range []int{0, 9, 23} {
		schedules = append(schedules, schedule(constants.FrequencyDaily, hour, 30))
		schedules = append(schedules, schedule(constants.FrequencyQuarterly, hour, 30))
		schedules = append(schedules, schedule(constants.FrequencyYearly, hour, 30))
		for d := time.Sunday; d <= time.Saturday; d++ {
			s := schedule(constants.FrequencyWeekly, hour, 30)
			s.DayOfWeek = weekday(d)
			schedules = append(schedules, s)
		}
		for _, dom := range []int{1, 15, 28, 29, 30, 31} {
			s := schedule(constants.FrequencyMonthly, hour, 30)
			s.DayOfMonth = dayOfMonth(dom)
			schedules = append(schedules, s)
		}
	}

	for _, now := range instants {
		for _, s := range schedules {
			next, err := service.NextRun(now, s)
			require.NoError(t, err)
			assert.True(t, next.After(now), "frequency=%s now=%s next=%s", s.Frequency, now, next)
		}
	}
}

// Purity: same now and schedule always returns the same instant.
func TestNextRunIsDeterministic(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	s := schedule(constants.FrequencyMonthly, 9, 0)
	s.DayOfMonth = dayOfMonth(31)

	first, err := service.NextRun(now, s)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := service.NextRun(now, s)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
