package service

import (
	"time"

	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
)

// NextRun computes the next execution instant for a report schedule. It is a
// pure function of its inputs: same now and schedule always yields the same
// instant, and the result is always strictly after now. Persistence is the
// scheduling runner's responsibility, not this function's.
//
// Each frequency has its own handler so every calendar edge case (month-end
// clamping, day-of-week wraparound, leap years) stays isolated and
// independently testable.
func NextRun(now time.Time, schedule *models.ReportSchedule) (time.Time, error) {
	switch schedule.Frequency {
	case constants.FrequencyDaily:
		return nextDaily(now, schedule.Hour, schedule.Minute), nil
	case constants.FrequencyWeekly:
		if schedule.DayOfWeek == nil {
			return time.Time{}, errors.ErrInvalidScheduleConfig("weekly schedule requires day_of_week")
		}
		return nextWeekly(now, *schedule.DayOfWeek, schedule.Hour, schedule.Minute), nil
	case constants.FrequencyMonthly:
		if schedule.DayOfMonth == nil {
			return time.Time{}, errors.ErrInvalidScheduleConfig("monthly schedule requires day_of_month")
		}
		return nextMonthly(now, *schedule.DayOfMonth, schedule.Hour, schedule.Minute), nil
	case constants.FrequencyQuarterly:
		return nextQuarterly(now, schedule.Hour, schedule.Minute), nil
	case constants.FrequencyYearly:
		return nextYearly(now, schedule.Hour, schedule.Minute), nil
	default:
		return time.Time{}, errors.ErrInvalidScheduleConfig("unknown frequency: " + string(schedule.Frequency))
	}
}

// nextDaily returns today at hour:minute, or tomorrow if that has passed.
func nextDaily(now time.Time, hour, minute int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

// nextWeekly starts from the daily candidate and advances to the target
// weekday. When the candidate already falls on the target day but is not
// after now, the run moves a full week out rather than firing today.
func nextWeekly(now time.Time, target time.Weekday, hour, minute int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	daysUntil := (int(target) - int(candidate.Weekday()) + 7) % 7
	if daysUntil == 0 {
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 7)
		}
		return candidate
	}
	return candidate.AddDate(0, 0, daysUntil)
}

// nextMonthly places the run on dayOfMonth, clamped to the last valid day of
// the month (day 31 in February yields the 28th, or the 29th in a leap year).
// If the clamped instant is not after now, it advances to the same day next
// month, re-clamped for that month's length.
func nextMonthly(now time.Time, dayOfMonth, hour, minute int) time.Time {
	candidate := monthlyCandidate(now.Year(), now.Month(), dayOfMonth, hour, minute, now.Location())
	if !candidate.After(now) {
		year, month := now.Year(), now.Month()+1
		if month > time.December {
			month = time.January
			year++
		}
		candidate = monthlyCandidate(year, month, dayOfMonth, hour, minute, now.Location())
	}
	return candidate
}

func monthlyCandidate(year int, month time.Month, dayOfMonth, hour, minute int, loc *time.Location) time.Time {
	day := dayOfMonth
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

// daysInMonth returns the number of days in the given month, leap-year aware.
// Day 0 of the following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// nextQuarterly advances to the first day of the next calendar quarter
// (January, April, July, October) at hour:minute.
func nextQuarterly(now time.Time, hour, minute int) time.Time {
	quarterStart := time.Month((int(now.Month())-1)/3*3 + 1)
	candidate := time.Date(now.Year(), quarterStart, 1, hour, minute, 0, 0, now.Location()).AddDate(0, 3, 0)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 3, 0)
	}
	return candidate
}

// nextYearly targets January 1st at hour:minute. The current year's instant
// only qualifies while it is still ahead (early on New Year's Day);
// otherwise the run moves to January 1st of the following year.
func nextYearly(now time.Time, hour, minute int) time.Time {
	candidate := time.Date(now.Year(), time.January, 1, hour, minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = time.Date(now.Year()+1, time.January, 1, hour, minute, 0, 0, now.Location())
	}
	return candidate
}
