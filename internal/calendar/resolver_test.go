package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWeek(t *testing.T, s string) WeekID {
	t.Helper()
	w, err := ParseWeekID(s)
	require.NoError(t, err)
	return w
}

func TestResolveOpenDate_MondayIsTradingDay(t *testing.T) {
	cal := New(holidaysOn(), NewClosureSet())
	week := mustWeek(t, "2025-01-06")

	open, err := cal.ResolveOpenDate(week)
	require.NoError(t, err)
	assert.Equal(t, week.Date, open, "open date is the Monday itself when it trades")
}

func TestResolveOpenDate_RollsForwardOverClosedDays(t *testing.T) {
	// Monday is a holiday, Tuesday manually closed: open rolls to Wednesday.
	cal := New(holidaysOn("2025-01-06"), closedOn("2025-01-07"))
	week := mustWeek(t, "2025-01-06")

	open, err := cal.ResolveOpenDate(week)
	require.NoError(t, err)
	assert.Equal(t, MustParseDate("2025-01-08"), open)
	assert.False(t, open.Before(week.Date))
}

func TestResolveCloseDate_FridayIsTradingDay(t *testing.T) {
	cal := New(holidaysOn(), NewClosureSet())
	week := mustWeek(t, "2025-01-06")

	closeDate, err := cal.ResolveCloseDate(week)
	require.NoError(t, err)
	assert.Equal(t, MustParseDate("2025-01-10"), closeDate)
}

func TestResolveCloseDate_RollsIntoFollowingWeek(t *testing.T) {
	// Nominal Friday 2025-01-10 is a holiday and the following Monday is in
	// the override set, so the close sample lands on the next Tuesday.
	cal := New(holidaysOn("2025-01-10"), closedOn("2025-01-13"))
	week := mustWeek(t, "2025-01-06")

	closeDate, err := cal.ResolveCloseDate(week)
	require.NoError(t, err)
	assert.Equal(t, MustParseDate("2025-01-14"), closeDate)
	assert.True(t, closeDate.After(week.NominalFriday()), "close must roll forward, never backward")
	assert.True(t, cal.IsTradingDay(closeDate))
	assert.False(t, week.Contains(closeDate), "close may belong to a later calendar week")
}

func TestResolveCloseDate_NeverBeforeNominalFriday(t *testing.T) {
	cal := New(NewJapaneseHolidays(), NewClosureSet())

	for _, s := range []string{"2025-01-06", "2025-02-10", "2025-04-28", "2025-09-15", "2025-12-29"} {
		week := mustWeek(t, s)
		closeDate, err := cal.ResolveCloseDate(week)
		require.NoError(t, err)
		assert.False(t, closeDate.Before(week.NominalFriday()), "week %s", week)
	}
}

func TestResolveDailyReferenceDate_NoForwardRoll(t *testing.T) {
	cal := New(holidaysOn("2025-01-08"), NewClosureSet())
	week := mustWeek(t, "2025-01-06")

	// Trading day: the target itself is the reference.
	ref, ok := cal.ResolveDailyReferenceDate(week, MustParseDate("2025-01-07"))
	assert.True(t, ok)
	assert.Equal(t, MustParseDate("2025-01-07"), ref)

	// Closed day: skipped, not rolled.
	ref, ok = cal.ResolveDailyReferenceDate(week, MustParseDate("2025-01-08"))
	assert.False(t, ok)
	assert.Equal(t, MustParseDate("2025-01-08"), ref)
}

func TestResolve_CalendarExhausted(t *testing.T) {
	// Close the whole scan window with overrides.
	dates := make([]Date, 0, maxScanDays+5)
	for d := MustParseDate("2025-01-06"); d.Before(MustParseDate("2025-01-25")); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	cal := New(holidaysOn(), NewClosureSet(dates...))
	week := mustWeek(t, "2025-01-06")

	_, err := cal.ResolveOpenDate(week)
	require.ErrorIs(t, err, ErrCalendarExhausted)

	_, err = cal.ResolveCloseDate(week)
	require.ErrorIs(t, err, ErrCalendarExhausted)
}

func TestResolveOpenDate_WeekIDNeedNotTrade(t *testing.T) {
	// Golden-week style: Monday through Wednesday closed, open lands Thursday.
	cal := New(holidaysOn("2025-05-05", "2025-05-06"), closedOn("2025-05-07"))
	week := mustWeek(t, "2025-05-05")

	open, err := cal.ResolveOpenDate(week)
	require.NoError(t, err)
	assert.Equal(t, MustParseDate("2025-05-08"), open)
	assert.Equal(t, time.Thursday, open.Weekday())
}
