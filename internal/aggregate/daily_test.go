package aggregate

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// noHolidays is an always-open holiday table for tests.
type noHolidays struct{}

func (noHolidays) IsHoliday(calendar.Date) bool { return false }

// fakeLookup serves samples from a fixed map keyed by "symbol/date".
type fakeLookup map[string]contracts.PriceSample

func (f fakeLookup) Sample(_ context.Context, symbol string, date calendar.Date) (contracts.PriceSample, bool, error) {
	s, ok := f[symbol+"/"+date.String()]
	return s, ok, nil
}

func (f fakeLookup) add(symbol, date, open, close string) {
	s := contracts.PriceSample{Symbol: symbol, Date: calendar.MustParseDate(date)}
	if open != "" {
		s.Open = decimal.NewNullDecimal(decimal.RequireFromString(open))
	}
	if close != "" {
		s.Close = decimal.NewNullDecimal(decimal.RequireFromString(close))
	}
	f[symbol+"/"+date] = s
}

func pickFor(t *testing.T, agentID, weekStr string, symbols ...string) contracts.Pick {
	t.Helper()
	w, err := calendar.ParseWeekID(weekStr)
	require.NoError(t, err)
	return contracts.Pick{AgentID: agentID, Symbols: symbols, WeekID: w}
}

func TestBuildDailySummary(t *testing.T) {
	cal := calendar.New(noHolidays{}, calendar.NewClosureSet())
	lookup := fakeLookup{}

	// Open samples on Monday 2025-01-06, reference closes on Friday 2025-01-10.
	lookup.add("7203.T", "2025-01-06", "1000", "1005")
	lookup.add("7203.T", "2025-01-10", "1045", "1050")
	lookup.add("6758.T", "2025-01-06", "2000", "2002")
	lookup.add("6758.T", "2025-01-10", "2098", "2100")
	// 9984.T has an open but no data at all on Friday.
	lookup.add("9984.T", "2025-01-06", "9000", "9010")
	// 8035.T has a corrupt zero open.
	lookup.add("8035.T", "2025-01-06", "0", "100")
	lookup.add("8035.T", "2025-01-10", "99", "100")

	agg := New(cal, lookup, logger.NewNop())
	picks := []contracts.Pick{
		pickFor(t, "gpt", "2025-01-06", "7203.T", "9984.T"),
		pickFor(t, "claude", "2025-01-06", "7203.T", "6758.T"),
		pickFor(t, "grok", "2025-01-06", "8035.T", "9984.T"),
	}

	summary, ok, err := agg.BuildDailySummary(context.Background(), calendar.MustParseDate("2025-01-10"), picks)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, calendar.MustParseDate("2025-01-10"), summary.Date)
	assert.Equal(t, "2025-01-06", summary.WeekID.String())

	// gpt: 7203.T returned 5%, 9984.T absent -> avg is exactly 0.05.
	gpt := summary.Agents["gpt"]
	require.Len(t, gpt.PerSymbol, 1)
	assert.True(t, gpt.AvgReturnPct.Equal(decimal.RequireFromString("0.05")), "got %s", gpt.AvgReturnPct)

	// claude: both present, avg of 0.05 and 0.05.
	claude := summary.Agents["claude"]
	require.Len(t, claude.PerSymbol, 2)
	assert.True(t, claude.AvgReturnPct.Equal(decimal.RequireFromString("0.05")), "got %s", claude.AvgReturnPct)

	// grok: one invalid open, one absent close -> no usable return, absent.
	_, present := summary.Agents["grok"]
	assert.False(t, present, "agent with no usable returns must be absent, not zero")
}

func TestBuildDailySummary_NonTradingDaySkipped(t *testing.T) {
	cal := calendar.New(noHolidays{}, calendar.NewClosureSet())
	agg := New(cal, fakeLookup{}, logger.NewNop())

	// Saturday: no summary, no error.
	_, ok, err := agg.BuildDailySummary(context.Background(), calendar.MustParseDate("2025-01-11"), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildDailySummary_ExcludesForeignWeekPicks(t *testing.T) {
	cal := calendar.New(noHolidays{}, calendar.NewClosureSet())
	lookup := fakeLookup{}
	lookup.add("7203.T", "2025-01-06", "1000", "1005")
	lookup.add("7203.T", "2025-01-08", "1015", "1020")

	agg := New(cal, lookup, logger.NewNop())
	picks := []contracts.Pick{
		pickFor(t, "gpt", "2025-01-06", "7203.T", "6758.T"),
		pickFor(t, "stale", "2024-12-30", "7203.T", "6758.T"),
	}

	summary, ok, err := agg.BuildDailySummary(context.Background(), calendar.MustParseDate("2025-01-08"), picks)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Contains(t, summary.Agents, "gpt")
	assert.NotContains(t, summary.Agents, "stale")
}

func TestBuildWeekCloseSummary_RolledIntoNextWeek(t *testing.T) {
	// Friday 2025-01-10 and Monday 2025-01-13 are closed, so the week of
	// 2025-01-06 settles on Tuesday 2025-01-14.
	cal := calendar.New(noHolidays{}, calendar.NewClosureSet(
		calendar.MustParseDate("2025-01-10"),
		calendar.MustParseDate("2025-01-13"),
	))
	lookup := fakeLookup{}
	lookup.add("7203.T", "2025-01-06", "1000", "1005")
	lookup.add("7203.T", "2025-01-14", "1045", "1050")

	agg := New(cal, lookup, logger.NewNop())
	picks := []contracts.Pick{pickFor(t, "gpt", "2025-01-06", "7203.T", "6758.T")}

	summary, err := agg.BuildWeekCloseSummary(context.Background(), picks[0].WeekID, calendar.MustParseDate("2025-01-14"), picks)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", summary.WeekID.String())
	assert.Equal(t, calendar.MustParseDate("2025-01-14"), summary.Date)

	gpt, present := summary.Agents["gpt"]
	require.True(t, present, "picks of the originating week must score on the rolled close date")
	assert.True(t, gpt.AvgReturnPct.Equal(decimal.RequireFromString("0.05")), "got %s", gpt.AvgReturnPct)
}

func TestBuildWeekCloseSummary_ClosedDateRejected(t *testing.T) {
	cal := calendar.New(noHolidays{}, calendar.NewClosureSet())
	agg := New(cal, fakeLookup{}, logger.NewNop())
	picks := []contracts.Pick{pickFor(t, "gpt", "2025-01-06", "7203.T", "6758.T")}

	// Saturday.
	_, err := agg.BuildWeekCloseSummary(context.Background(), picks[0].WeekID, calendar.MustParseDate("2025-01-11"), picks)
	require.Error(t, err)
}

func TestBuildDailySummary_CalendarExhaustedIsFatal(t *testing.T) {
	// Close everything from the Monday onward so the open date cannot resolve,
	// while the target Thursday stays open.
	closures := make([]calendar.Date, 0, 16)
	for d := calendar.MustParseDate("2025-01-06"); d.Before(calendar.MustParseDate("2025-01-22")); d = d.AddDays(1) {
		if d != calendar.MustParseDate("2025-01-09") {
			closures = append(closures, d)
		}
	}
	cal := calendar.New(noHolidays{}, calendar.NewClosureSet(closures...))
	agg := New(cal, fakeLookup{}, logger.NewNop())

	_, _, err := agg.BuildDailySummary(context.Background(), calendar.MustParseDate("2025-01-09"),
		[]contracts.Pick{pickFor(t, "gpt", "2025-01-06", "7203.T", "6758.T")})
	require.ErrorIs(t, err, calendar.ErrCalendarExhausted)
}

func TestBuildDailySummary_Deterministic(t *testing.T) {
	cal := calendar.New(noHolidays{}, calendar.NewClosureSet())
	lookup := fakeLookup{}
	lookup.add("7203.T", "2025-01-06", "1000", "1005")
	lookup.add("7203.T", "2025-01-10", "1045", "1050")

	agg := New(cal, lookup, logger.NewNop())
	picks := []contracts.Pick{pickFor(t, "gpt", "2025-01-06", "7203.T", "6758.T")}
	date := calendar.MustParseDate("2025-01-10")

	first, ok, err := agg.BuildDailySummary(context.Background(), date, picks)
	require.NoError(t, err)
	require.True(t, ok)
	second, ok, err := agg.BuildDailySummary(context.Background(), date, picks)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, first, second)
}
