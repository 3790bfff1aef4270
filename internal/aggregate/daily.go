// Package aggregate folds picks and price samples into daily and monthly
// summaries. Per-entity failures are logged and omitted; they never abort the
// rest of the batch.
package aggregate

import (
	"context"
	"fmt"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
	"github.com/harunoguchi/trader-battle/internal/returns"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// Aggregator builds summaries from picks and a price lookup. It holds no
// mutable state: every build is a pure transformation of its inputs.
type Aggregator struct {
	cal    *calendar.Calendar
	prices contracts.PriceLookup
	log    *logger.Logger
}

// New creates an Aggregator.
func New(cal *calendar.Calendar, prices contracts.PriceLookup, log *logger.Logger) *Aggregator {
	return &Aggregator{cal: cal, prices: prices, log: log}
}

// BuildDailySummary evaluates every agent that picked for the week containing
// date, against the close prices of date. ok=false when date is not a trading
// day: no summary exists for a closed day and callers must not write a file.
// The error is non-nil only when the whole week cannot be processed
// (calendar exhausted resolving the open date).
func (a *Aggregator) BuildDailySummary(ctx context.Context, date calendar.Date, picks []contracts.Pick) (contracts.DailySummary, bool, error) {
	week := calendar.WeekOf(date)

	if _, trading := a.cal.ResolveDailyReferenceDate(week, date); !trading {
		a.log.WithField("date", date.String()).Debug("Not a trading day, daily summary skipped")
		return contracts.DailySummary{}, false, nil
	}

	openDate, err := a.cal.ResolveOpenDate(week)
	if err != nil {
		return contracts.DailySummary{}, false, fmt.Errorf("build daily summary for %s: %w", date, err)
	}

	return a.buildSummary(ctx, week, openDate, date, picks), true, nil
}

// BuildWeekCloseSummary evaluates the week's picks against the close prices
// of closeDate. The close date can land in the following calendar week when
// the nominal Friday and the days after it are closed, so the week is taken
// as given instead of being derived from the date.
func (a *Aggregator) BuildWeekCloseSummary(ctx context.Context, week calendar.WeekID, closeDate calendar.Date, picks []contracts.Pick) (contracts.DailySummary, error) {
	if !a.cal.IsTradingDay(closeDate) {
		return contracts.DailySummary{}, fmt.Errorf("week close summary for %s: %s is not a trading day", week, closeDate)
	}

	openDate, err := a.cal.ResolveOpenDate(week)
	if err != nil {
		return contracts.DailySummary{}, fmt.Errorf("week close summary for %s: %w", week, err)
	}

	return a.buildSummary(ctx, week, openDate, closeDate, picks), nil
}

func (a *Aggregator) buildSummary(ctx context.Context, week calendar.WeekID, openDate, refDate calendar.Date, picks []contracts.Pick) contracts.DailySummary {
	summary := contracts.DailySummary{
		Date:   refDate,
		WeekID: week,
		Agents: make(map[string]contracts.AgentDailyResult),
	}

	for _, pick := range picks {
		if pick.WeekID != week {
			a.log.WithFields(map[string]interface{}{
				"agent": pick.AgentID,
				"week":  pick.WeekID.String(),
			}).Warn("Pick belongs to a different week, skipped")
			continue
		}
		if err := pick.Validate(); err != nil {
			a.log.WithError(err).Warn("Invalid pick, agent omitted")
			continue
		}

		records := a.symbolReturns(ctx, pick, openDate, refDate)
		if result, ok := returns.AgentResult(pick, refDate, records); ok {
			summary.Agents[pick.AgentID] = result
		} else {
			a.log.WithFields(map[string]interface{}{
				"agent": pick.AgentID,
				"date":  refDate.String(),
			}).Info("No usable returns, agent result absent")
		}
	}

	return summary
}

// symbolReturns computes the present per-symbol returns for one pick. A
// missing sample or an invalid open price drops only that symbol.
func (a *Aggregator) symbolReturns(ctx context.Context, pick contracts.Pick, openDate, refDate calendar.Date) []contracts.ReturnRecord {
	records := make([]contracts.ReturnRecord, 0, len(pick.Symbols))
	for _, symbol := range pick.Symbols {
		openSample := a.lookup(ctx, symbol, openDate)
		refSample := a.lookup(ctx, symbol, refDate)

		rec, ok, err := returns.ComputeReturn(pick.WeekID, symbol, openSample, refSample)
		if err != nil {
			a.log.WithError(err).WithField("symbol", symbol).Warn("Symbol return dropped")
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

// lookup fetches a sample, folding adapter failures into absence so one
// symbol's trouble cannot abort the batch.
func (a *Aggregator) lookup(ctx context.Context, symbol string, date calendar.Date) contracts.PriceSample {
	sample, ok, err := a.prices.Sample(ctx, symbol, date)
	if err != nil {
		a.log.WithError(err).WithFields(map[string]interface{}{
			"symbol": symbol,
			"date":   date.String(),
		}).Warn("Price lookup failed, treating as absent")
		return contracts.PriceSample{Symbol: symbol, Date: date}
	}
	if !ok {
		return contracts.PriceSample{Symbol: symbol, Date: date}
	}
	return sample
}
