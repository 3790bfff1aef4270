package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

// BuildMonthlySummary folds daily summaries into the month's day-by-agent
// matrix. Summaries outside the target month are ignored. Missing cells stay
// missing: they are excluded from the per-agent means, never zero-filled.
// The fold is pure and deterministic: same dailies, same matrix.
func BuildMonthlySummary(year int, month time.Month, dailies []contracts.DailySummary) contracts.MonthlySummary {
	summary := contracts.MonthlySummary{
		Year:       year,
		Month:      month,
		Cells:      make(map[calendar.Date]map[string]decimal.Decimal),
		AgentMeans: make(map[string]decimal.Decimal),
	}

	agentSet := make(map[string]struct{})
	for _, daily := range dailies {
		if daily.Date.Year != year || daily.Date.Month != month {
			continue
		}

		row, ok := summary.Cells[daily.Date]
		if !ok {
			row = make(map[string]decimal.Decimal)
			summary.Cells[daily.Date] = row
			summary.Dates = append(summary.Dates, daily.Date)
		}
		for agentID, result := range daily.Agents {
			row[agentID] = result.AvgReturnPct
			agentSet[agentID] = struct{}{}
		}
	}

	sort.Slice(summary.Dates, func(i, j int) bool {
		return summary.Dates[i].Before(summary.Dates[j])
	})
	for agentID := range agentSet {
		summary.Agents = append(summary.Agents, agentID)
	}
	sort.Strings(summary.Agents)

	// Per-agent monthly mean over present cells only.
	for _, agentID := range summary.Agents {
		sum := decimal.Zero
		count := 0
		for _, d := range summary.Dates {
			if v, ok := summary.Cells[d][agentID]; ok {
				sum = sum.Add(v)
				count++
			}
		}
		if count > 0 {
			summary.AgentMeans[agentID] = sum.Div(decimal.NewFromInt(int64(count)))
		}
	}

	return summary
}
