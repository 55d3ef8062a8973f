package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriodMonth(t *testing.T) {
	now := time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
	p, err := ResolvePeriod("month", "", "", now)
	require.NoError(t, err)
	require.Equal(t, ModeMonth, p.Mode)
	require.Equal(t, date(2025, time.March, 1), *p.Start)
	require.Equal(t, 2025, p.End.Year())
	require.Equal(t, time.March, p.End.Month())
	require.Equal(t, 31, p.End.Day())
	require.Equal(t, 23, p.End.Hour())
}

func TestResolvePeriodDefaultsToMonth(t *testing.T) {
	now := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("", "", "", now)
	require.NoError(t, err)
	require.Equal(t, ModeMonth, p.Mode)
}

func TestResolvePeriodYear(t *testing.T) {
	now := time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("year", "", "", now)
	require.NoError(t, err)
	require.Equal(t, date(2025, time.January, 1), *p.Start)
	require.Equal(t, time.December, p.End.Month())
	require.Equal(t, 31, p.End.Day())
}

func TestResolvePeriodAllIsUnbounded(t *testing.T) {
	p, err := ResolvePeriod("all", "", "", time.Now())
	require.NoError(t, err)
	require.Nil(t, p.Start)
	require.Nil(t, p.End)
	require.False(t, p.Bounded())
}

func TestResolvePeriodCustom(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("custom", "2025-02-10", "2025-02-20", now)
	require.NoError(t, err)
	require.Equal(t, date(2025, time.February, 10), *p.Start)
	require.Equal(t, 20, p.End.Day())
	require.Equal(t, 23, p.End.Hour())
}

func TestResolvePeriodCustomOpenEnded(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("custom", "2025-02-10", "", now)
	require.NoError(t, err)
	require.NotNil(t, p.Start)
	require.Nil(t, p.End)
}

func TestResolvePeriodErrors(t *testing.T) {
	now := time.Now()
	_, err := ResolvePeriod("quarter", "", "", now)
	require.ErrorIs(t, err, shared.ErrInvalidPeriod)

	_, err = ResolvePeriod("custom", "not-a-date", "", now)
	require.ErrorIs(t, err, shared.ErrInvalidPeriod)

	_, err = ResolvePeriod("custom", "", "2025-13-45", now)
	require.ErrorIs(t, err, shared.ErrInvalidPeriod)
}

func TestPreviousRangeMonthSameLengthAdjacent(t *testing.T) {
	now := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("month", "", "", now)
	require.NoError(t, err)

	prev := PreviousRange(p)
	require.NotNil(t, prev)
	// March has 31 days, so the previous window is the 31 days ending Feb 28.
	require.Equal(t, 31, inclusiveDays(*prev.Start, *prev.End))
	require.Equal(t, date(2025, time.February, 28), startOfDay(*prev.End))
	require.Equal(t, date(2025, time.January, 29), *prev.Start)
}

func TestPreviousRangeCustomEndsDayBeforeStart(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("custom", "2025-04-10", "2025-04-19", now)
	require.NoError(t, err)

	prev := PreviousRange(p)
	require.NotNil(t, prev)
	require.Equal(t, inclusiveDays(*p.Start, *p.End), inclusiveDays(*prev.Start, *prev.End))
	require.Equal(t, date(2025, time.April, 9), startOfDay(*prev.End))
	require.Equal(t, date(2025, time.March, 31), *prev.Start)
}

func TestPreviousRangeYearIsCalendarShift(t *testing.T) {
	// 2024 is a leap year; the previous interval must land on calendar dates,
	// not a fixed 365-day offset.
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("year", "", "", now)
	require.NoError(t, err)

	prev := PreviousRange(p)
	require.NotNil(t, prev)
	require.Equal(t, date(2023, time.January, 1), *prev.Start)
	require.Equal(t, 2023, prev.End.Year())
	require.Equal(t, time.December, prev.End.Month())
	require.Equal(t, 31, prev.End.Day())
}

func TestPreviousRangeUnbounded(t *testing.T) {
	p := Period{Mode: ModeAll}
	require.Nil(t, PreviousRange(p))

	s := date(2025, time.January, 1)
	p = Period{Mode: ModeCustom, Interval: Interval{Start: &s}}
	require.Nil(t, PreviousRange(p))
}

func TestShiftYearsLeapDay(t *testing.T) {
	s := date(2024, time.February, 29)
	iv := ShiftYears(Interval{Start: &s}, -1)
	require.NotNil(t, iv.Start)
	// Go's AddDate normalizes Feb 29 - 1y to Mar 1 2023.
	require.Equal(t, date(2023, time.March, 1), *iv.Start)
	require.Nil(t, iv.End)
}

func TestFormatDate(t *testing.T) {
	require.Nil(t, FormatDate(nil))
	d := date(2025, time.February, 3)
	require.Equal(t, "2025-02-03", *FormatDate(&d))
}
