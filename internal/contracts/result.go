package contracts

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harunoguchi/trader-battle/internal/calendar"
)

// ReturnRecord is one symbol's return between the week's open sample and the
// reference close on the date being evaluated. RefDate is the evaluated date
// (a daily snapshot) or the resolved week-close date (the final figure), not
// necessarily inside the nominal week.
type ReturnRecord struct {
	Symbol    string          `json:"symbol"`
	WeekID    calendar.WeekID `json:"week_id"`
	OpenDate  calendar.Date   `json:"open_date"`
	RefDate   calendar.Date   `json:"ref_date"`
	Open      decimal.Decimal `json:"open"`
	RefClose  decimal.Decimal `json:"ref_close"`
	ReturnPct decimal.Decimal `json:"return_pct"`
}

// AgentDailyResult is one agent's evaluation on one date. AvgReturnPct is the
// arithmetic mean of the per-symbol returns that are present: with one of two
// symbols missing it equals the present value, not half of it. An agent with
// zero usable returns has no AgentDailyResult at all.
type AgentDailyResult struct {
	AgentID      string          `json:"agent_id"`
	WeekID       calendar.WeekID `json:"week_id"`
	Date         calendar.Date   `json:"date"`
	PerSymbol    []ReturnRecord  `json:"per_symbol"`
	AvgReturnPct decimal.Decimal `json:"avg_return_pct"`
}

// DailySummary is the cross-agent evaluation of one trading date. One file
// per date; rebuilding for the same date overwrites deterministically, it
// never merges. Agents without a pick for the active week are absent from the
// map, not represented with nulls.
type DailySummary struct {
	Date   calendar.Date               `json:"date"`
	WeekID calendar.WeekID             `json:"week_id"`
	Agents map[string]AgentDailyResult `json:"agents"`
}

// AgentIDs returns the agents present in the summary, sorted.
func (s DailySummary) AgentIDs() []string {
	ids := make([]string, 0, len(s.Agents))
	for id := range s.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MonthlySummary is the day-by-agent matrix of average returns for one civil
// month, derived by folding DailySummary records. It is never primary data:
// it is rebuilt from the daily files on every request. Cells with no
// contributing daily summary are simply missing from Cells: an explicit N/A,
// distinct from a zero return and excluded from every mean.
type MonthlySummary struct {
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Dates  []calendar.Date `json:"dates"`
	Agents []string        `json:"agents"`

	Cells map[calendar.Date]map[string]decimal.Decimal `json:"cells"`

	// AgentMeans holds, per agent, the mean over that agent's present cells
	// only. Agents with zero present cells are absent.
	AgentMeans map[string]decimal.Decimal `json:"agent_means"`
}

// Cell returns the matrix value for (date, agent) and whether it is present.
func (m MonthlySummary) Cell(d calendar.Date, agentID string) (decimal.Decimal, bool) {
	row, ok := m.Cells[d]
	if !ok {
		return decimal.Decimal{}, false
	}
	v, ok := row[agentID]
	return v, ok
}
