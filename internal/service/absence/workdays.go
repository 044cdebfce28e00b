package absence

import (
	"context"
	"fmt"
	"time"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
)

// WorkdayCalculator counts chargeable days for a date range. Working-day
// counts skip weekends and organization holidays; calendar-day counts are
// plain inclusive spans.
type WorkdayCalculator struct {
	holidayRepository absence.HolidayRepository
}

func NewWorkdayCalculator(holidayRepository absence.HolidayRepository) *WorkdayCalculator {
	return &WorkdayCalculator{holidayRepository: holidayRepository}
}

const holidayKeyLayout = "2006-01-02"

// CountDays returns the chargeable-day count for [start, end] inclusive under
// the given policy. Holidays are loaded once for the whole range.
func (c *WorkdayCalculator) CountDays(ctx context.Context, start, end time.Time, policy absence.DayPolicy) (int, error) {
	if end.Before(start) {
		return 0, absence.ErrInvalidDateRange
	}

	start = truncateToDate(start)
	end = truncateToDate(end)

	if policy == absence.DayPolicyCalendarDays {
		return int(end.Sub(start).Hours()/24) + 1, nil
	}

	holidays, err := c.holidayRepository.GetByDateRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to load holidays: %w", err)
	}

	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Date.Format(holidayKeyLayout)] = struct{}{}
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) {
			continue
		}
		if _, ok := holidaySet[d.Format(holidayKeyLayout)]; ok {
			continue
		}
		count++
	}

	return count, nil
}

// IsNonWorkingDay reports whether the date falls on a weekend or a holiday.
func (c *WorkdayCalculator) IsNonWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	date = truncateToDate(date)
	if isWeekend(date) {
		return true, nil
	}

	holidays, err := c.holidayRepository.GetByDateRange(ctx, date, date)
	if err != nil {
		return false, fmt.Errorf("failed to load holidays: %w", err)
	}

	return len(holidays) > 0, nil
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
