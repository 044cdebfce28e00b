package absence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
)

type stubHolidayRepo struct {
	holidays []absence.Holiday
}

func (s *stubHolidayRepo) Create(ctx context.Context, h absence.Holiday) (absence.Holiday, error) {
	s.holidays = append(s.holidays, h)
	return h, nil
}

func (s *stubHolidayRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]absence.Holiday, error) {
	var out []absence.Holiday
	for _, h := range s.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *stubHolidayRepo) List(ctx context.Context) ([]absence.Holiday, error) {
	return s.holidays, nil
}

func (s *stubHolidayRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountDaysWorkingDays(t *testing.T) {
	ctx := context.Background()
	calc := NewWorkdayCalculator(&stubHolidayRepo{})

	// January 2023 has 22 working days (9 weekend days out of 31).
	days, err := calc.CountDays(ctx, date(2023, time.January, 1), date(2023, time.January, 31), absence.DayPolicyWorkingDays)
	require.NoError(t, err)
	assert.Equal(t, 22, days)
}

func TestCountDaysWorkingDaysWithHoliday(t *testing.T) {
	ctx := context.Background()
	repo := &stubHolidayRepo{holidays: []absence.Holiday{
		{ID: "h1", Date: date(2023, time.January, 6), Description: "Epiphany"},
	}}
	calc := NewWorkdayCalculator(repo)

	days, err := calc.CountDays(ctx, date(2023, time.January, 1), date(2023, time.January, 31), absence.DayPolicyWorkingDays)
	require.NoError(t, err)
	assert.Equal(t, 21, days)
}

func TestCountDaysHolidayOnWeekendNotDoubleCounted(t *testing.T) {
	ctx := context.Background()
	// Jan 7 2023 is a Saturday; the holiday must not subtract a second day.
	repo := &stubHolidayRepo{holidays: []absence.Holiday{
		{ID: "h1", Date: date(2023, time.January, 7), Description: "Saturday holiday"},
	}}
	calc := NewWorkdayCalculator(repo)

	days, err := calc.CountDays(ctx, date(2023, time.January, 2), date(2023, time.January, 8), absence.DayPolicyWorkingDays)
	require.NoError(t, err)
	assert.Equal(t, 5, days)
}

func TestCountDaysCalendarDays(t *testing.T) {
	ctx := context.Background()
	calc := NewWorkdayCalculator(&stubHolidayRepo{})

	days, err := calc.CountDays(ctx, date(2023, time.January, 1), date(2023, time.January, 31), absence.DayPolicyCalendarDays)
	require.NoError(t, err)
	assert.Equal(t, 31, days)

	// Single day ranges charge one day.
	days, err = calc.CountDays(ctx, date(2023, time.January, 1), date(2023, time.January, 1), absence.DayPolicyCalendarDays)
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestCountDaysWeekendOnlyRangeIsZero(t *testing.T) {
	ctx := context.Background()
	calc := NewWorkdayCalculator(&stubHolidayRepo{})

	days, err := calc.CountDays(ctx, date(2023, time.January, 7), date(2023, time.January, 8), absence.DayPolicyWorkingDays)
	require.NoError(t, err)
	assert.Equal(t, 0, days)
}

func TestCountDaysInvalidRange(t *testing.T) {
	ctx := context.Background()
	calc := NewWorkdayCalculator(&stubHolidayRepo{})

	_, err := calc.CountDays(ctx, date(2023, time.January, 10), date(2023, time.January, 9), absence.DayPolicyWorkingDays)
	assert.ErrorIs(t, err, absence.ErrInvalidDateRange)
}

func TestIsNonWorkingDay(t *testing.T) {
	ctx := context.Background()
	repo := &stubHolidayRepo{holidays: []absence.Holiday{
		{ID: "h1", Date: date(2023, time.January, 6), Description: "Epiphany"},
	}}
	calc := NewWorkdayCalculator(repo)

	weekend, err := calc.IsNonWorkingDay(ctx, date(2023, time.January, 7))
	require.NoError(t, err)
	assert.True(t, weekend)

	holiday, err := calc.IsNonWorkingDay(ctx, date(2023, time.January, 6))
	require.NoError(t, err)
	assert.True(t, holiday)

	workday, err := calc.IsNonWorkingDay(ctx, date(2023, time.January, 5))
	require.NoError(t, err)
	assert.False(t, workday)
}
