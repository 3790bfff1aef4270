// Package report renders markdown views of battle results. Reports are plain
// derived artifacts: regenerating one from the same inputs yields identical
// bytes.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

var hundred = decimal.NewFromInt(100)

// formatPct renders a decimal return as a percentage with two digits,
// e.g. 0.05 -> "5.00%".
func formatPct(v decimal.Decimal) string {
	return v.Mul(hundred).StringFixed(2) + "%"
}

// WeekReport renders the final table for one week from its close-date
// summary. Each agent contributes one row per symbol plus an average row;
// symbols without usable prices show N/A.
func WeekReport(week calendar.WeekID, picks []contracts.Pick, summary contracts.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Week %s Result\n\n", week)
	b.WriteString("| LLM | Symbol | Open | Close | Return |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")

	sorted := make([]contracts.Pick, len(picks))
	copy(sorted, picks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AgentID < sorted[j].AgentID })

	for _, pick := range sorted {
		result, scored := summary.Agents[pick.AgentID]
		bySymbol := map[string]contracts.ReturnRecord{}
		if scored {
			for _, rec := range result.PerSymbol {
				bySymbol[rec.Symbol] = rec
			}
		}

		for i, sym := range pick.Symbols {
			label := ""
			if i == 0 {
				label = pick.AgentID
			}
			if rec, ok := bySymbol[sym]; ok {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
					label, sym, rec.Open.StringFixed(2), rec.RefClose.StringFixed(2), formatPct(rec.ReturnPct))
			} else {
				fmt.Fprintf(&b, "| %s | %s | N/A | N/A | N/A |\n", label, sym)
			}
		}

		if scored {
			fmt.Fprintf(&b, "|  |  |  |  | Avg: %s |\n", formatPct(result.AvgReturnPct))
		} else {
			b.WriteString("|  |  |  |  | Avg: N/A |\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// MonthlyReport renders the month's day-by-agent matrix. Missing cells are
// N/A, and the footer row carries each agent's mean over its present cells.
func MonthlyReport(m contracts.MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Monthly Summary %04d-%02d\n\n", m.Year, int(m.Month))

	if len(m.Dates) == 0 || len(m.Agents) == 0 {
		b.WriteString("No results recorded for this month.\n")
		return b.String()
	}

	b.WriteString("| Date | " + strings.Join(m.Agents, " | ") + " |\n")
	b.WriteString("| --- |" + strings.Repeat(" --- |", len(m.Agents)) + "\n")

	for _, d := range m.Dates {
		row := []string{d.String()}
		for _, agent := range m.Agents {
			if v, ok := m.Cell(d, agent); ok {
				row = append(row, formatPct(v))
			} else {
				row = append(row, "N/A")
			}
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	row := []string{"**Mean**"}
	for _, agent := range m.Agents {
		if v, ok := m.AgentMeans[agent]; ok {
			row = append(row, formatPct(v))
		} else {
			row = append(row, "N/A")
		}
	}
	b.WriteString("| " + strings.Join(row, " | ") + " |\n")

	b.WriteString("\n")
	return b.String()
}
