package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

func mustWeek(t *testing.T, s string) calendar.WeekID {
	t.Helper()
	w, err := calendar.ParseWeekID(s)
	require.NoError(t, err)
	return w
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWeekReport(t *testing.T) {
	week := mustWeek(t, "2025-01-06")
	openDate := calendar.MustParseDate("2025-01-06")
	closeDate := calendar.MustParseDate("2025-01-10")

	picks := []contracts.Pick{
		{AgentID: "gpt", Symbols: []string{"7203.T", "6758.T"}, WeekID: week},
		{AgentID: "claude", Symbols: []string{"9984.T", "8035.T"}, WeekID: week},
	}

	summary := contracts.DailySummary{
		Date:   closeDate,
		WeekID: week,
		Agents: map[string]contracts.AgentDailyResult{
			"gpt": {
				AgentID: "gpt",
				WeekID:  week,
				Date:    closeDate,
				PerSymbol: []contracts.ReturnRecord{
					{
						Symbol: "7203.T", WeekID: week, OpenDate: openDate, RefDate: closeDate,
						Open: dec("1000"), RefClose: dec("1050"), ReturnPct: dec("0.05"),
					},
				},
				AvgReturnPct: dec("0.05"),
			},
		},
	}

	got := WeekReport(week, picks, summary)

	assert.True(t, strings.HasPrefix(got, "# Week 2025-01-06 Result\n"))
	assert.Contains(t, got, "| gpt | 7203.T | 1000.00 | 1050.00 | 5.00% |")
	// Second symbol had no usable prices.
	assert.Contains(t, got, "|  | 6758.T | N/A | N/A | N/A |")
	assert.Contains(t, got, "| Avg: 5.00% |")
	// Claude scored nothing at all.
	assert.Contains(t, got, "| claude | 9984.T | N/A | N/A | N/A |")
	assert.Contains(t, got, "| Avg: N/A |")

	// Agents render in sorted order regardless of input order.
	assert.Less(t, strings.Index(got, "| claude |"), strings.Index(got, "| gpt |"))
}

func TestWeekReportDeterministic(t *testing.T) {
	week := mustWeek(t, "2025-01-06")
	picks := []contracts.Pick{{AgentID: "gpt", Symbols: []string{"7203.T", "6758.T"}, WeekID: week}}
	summary := contracts.DailySummary{Date: calendar.MustParseDate("2025-01-10"), WeekID: week}

	assert.Equal(t, WeekReport(week, picks, summary), WeekReport(week, picks, summary))
}

func TestMonthlyReport(t *testing.T) {
	d7 := calendar.MustParseDate("2025-01-07")
	d8 := calendar.MustParseDate("2025-01-08")

	m := contracts.MonthlySummary{
		Year:   2025,
		Month:  1,
		Dates:  []calendar.Date{d7, d8},
		Agents: []string{"claude", "gpt"},
		Cells: map[calendar.Date]map[string]decimal.Decimal{
			d7: {"gpt": dec("0.05"), "claude": dec("-0.012")},
			d8: {"gpt": dec("0.024")},
		},
		AgentMeans: map[string]decimal.Decimal{
			"gpt":    dec("0.037"),
			"claude": dec("-0.012"),
		},
	}

	got := MonthlyReport(m)

	assert.Contains(t, got, "# Monthly Summary 2025-01")
	assert.Contains(t, got, "| Date | claude | gpt |")
	assert.Contains(t, got, "| 2025-01-07 | -1.20% | 5.00% |")
	assert.Contains(t, got, "| 2025-01-08 | N/A | 2.40% |")
	assert.Contains(t, got, "| **Mean** | -1.20% | 3.70% |")
}

func TestMonthlyReportEmpty(t *testing.T) {
	got := MonthlyReport(contracts.MonthlySummary{Year: 2025, Month: 2})
	assert.Contains(t, got, "No results recorded")
}
