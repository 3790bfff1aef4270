package returns

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

func week(t *testing.T) calendar.WeekID {
	t.Helper()
	w, err := calendar.ParseWeekID("2025-01-06")
	require.NoError(t, err)
	return w
}

func sample(symbol, date string, open, close string) contracts.PriceSample {
	s := contracts.PriceSample{Symbol: symbol, Date: calendar.MustParseDate(date)}
	if open != "" {
		s.Open = decimal.NewNullDecimal(decimal.RequireFromString(open))
	}
	if close != "" {
		s.Close = decimal.NewNullDecimal(decimal.RequireFromString(close))
	}
	return s
}

func TestComputeReturn_Basic(t *testing.T) {
	openS := sample("7203.T", "2025-01-06", "1000", "1010")
	refS := sample("7203.T", "2025-01-10", "1040", "1050")

	rec, ok, err := ComputeReturn(week(t), "7203.T", openS, refS)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, rec.ReturnPct.Equal(decimal.RequireFromString("0.05")), "got %s", rec.ReturnPct)
	assert.Equal(t, calendar.MustParseDate("2025-01-06"), rec.OpenDate)
	assert.Equal(t, calendar.MustParseDate("2025-01-10"), rec.RefDate)
	assert.True(t, rec.Open.Equal(decimal.NewFromInt(1000)))
	assert.True(t, rec.RefClose.Equal(decimal.NewFromInt(1050)))
}

func TestComputeReturn_AbsentInputs(t *testing.T) {
	tests := []struct {
		name  string
		openS contracts.PriceSample
		refS  contracts.PriceSample
	}{
		{"missing open", sample("7203.T", "2025-01-06", "", "1010"), sample("7203.T", "2025-01-10", "", "1050")},
		{"missing close", sample("7203.T", "2025-01-06", "1000", ""), sample("7203.T", "2025-01-10", "1040", "")},
		{"both missing", sample("7203.T", "2025-01-06", "", ""), sample("7203.T", "2025-01-10", "", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := ComputeReturn(week(t), "7203.T", tt.openS, tt.refS)
			assert.NoError(t, err, "absence is not an error")
			assert.False(t, ok, "absence must not produce a numeric result")
		})
	}
}

func TestComputeReturn_InvalidOpenPrice(t *testing.T) {
	for _, open := range []string{"0", "-100"} {
		t.Run("open "+open, func(t *testing.T) {
			openS := sample("7203.T", "2025-01-06", open, "")
			refS := sample("7203.T", "2025-01-10", "", "1050")

			_, ok, err := ComputeReturn(week(t), "7203.T", openS, refS)
			require.ErrorIs(t, err, ErrInvalidPriceData)
			assert.False(t, ok)
		})
	}
}

func TestComputeReturn_NegativeReturn(t *testing.T) {
	openS := sample("6758.T", "2025-01-06", "2000", "")
	refS := sample("6758.T", "2025-01-08", "", "1900")

	rec, ok, err := ComputeReturn(week(t), "6758.T", openS, refS)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.ReturnPct.Equal(decimal.RequireFromString("-0.05")), "got %s", rec.ReturnPct)
}

func TestAgentResult_AverageOfPresent(t *testing.T) {
	w := week(t)
	date := calendar.MustParseDate("2025-01-10")
	pick := contracts.Pick{AgentID: "claude", Symbols: []string{"7203.T", "6758.T"}, WeekID: w}

	recA := contracts.ReturnRecord{Symbol: "7203.T", ReturnPct: decimal.RequireFromString("0.05")}
	recB := contracts.ReturnRecord{Symbol: "6758.T", ReturnPct: decimal.RequireFromString("0.01")}

	t.Run("both present", func(t *testing.T) {
		res, ok := AgentResult(pick, date, []contracts.ReturnRecord{recA, recB})
		require.True(t, ok)
		assert.True(t, res.AvgReturnPct.Equal(decimal.RequireFromString("0.03")), "got %s", res.AvgReturnPct)
	})

	t.Run("one present equals that value, not halved", func(t *testing.T) {
		res, ok := AgentResult(pick, date, []contracts.ReturnRecord{recA})
		require.True(t, ok)
		assert.True(t, res.AvgReturnPct.Equal(decimal.RequireFromString("0.05")), "got %s", res.AvgReturnPct)
	})

	t.Run("none present means absent result", func(t *testing.T) {
		_, ok := AgentResult(pick, date, nil)
		assert.False(t, ok)
	})
}
