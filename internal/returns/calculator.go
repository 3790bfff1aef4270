// Package returns turns sampled prices into percentage returns. Absence of a
// price is a normal outcome and propagates as absence; only structurally bad
// data (a non-positive open) is an error.
package returns

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
)

// ErrInvalidPriceData marks a non-positive open price. Fatal for that single
// symbol's return; the rest of the batch proceeds.
var ErrInvalidPriceData = errors.New("invalid price data: non-positive open price")

// ComputeReturn computes one symbol's return between the week's open sample
// and the reference sample. ok=false (with nil error) when either price is
// absent: the symbol is simply omitted from aggregation, never coerced to
// zero. ReturnPct = (refClose - open) / open in decimal arithmetic.
func ComputeReturn(week calendar.WeekID, symbol string, openSample, refSample contracts.PriceSample) (contracts.ReturnRecord, bool, error) {
	if !openSample.HasOpen() || !refSample.HasClose() {
		return contracts.ReturnRecord{}, false, nil
	}

	open := openSample.Open.Decimal
	if open.Sign() <= 0 {
		return contracts.ReturnRecord{}, false, fmt.Errorf("%w: %s open %s on %s",
			ErrInvalidPriceData, symbol, open, openSample.Date)
	}

	refClose := refSample.Close.Decimal
	return contracts.ReturnRecord{
		Symbol:    symbol,
		WeekID:    week,
		OpenDate:  openSample.Date,
		RefDate:   refSample.Date,
		Open:      open,
		RefClose:  refClose,
		ReturnPct: refClose.Sub(open).Div(open),
	}, true, nil
}

// AgentResult folds an agent's present per-symbol returns into the daily
// result. The average is the mean of the returns that exist: one present
// return of two picks averages to itself, not to half. With zero present
// returns there is no result at all (ok=false).
func AgentResult(pick contracts.Pick, date calendar.Date, records []contracts.ReturnRecord) (contracts.AgentDailyResult, bool) {
	if len(records) == 0 {
		return contracts.AgentDailyResult{}, false
	}

	sum := decimal.Zero
	for _, rec := range records {
		sum = sum.Add(rec.ReturnPct)
	}

	return contracts.AgentDailyResult{
		AgentID:      pick.AgentID,
		WeekID:       pick.WeekID,
		Date:         date,
		PerSymbol:    records,
		AvgReturnPct: sum.Div(decimal.NewFromInt(int64(len(records)))),
	}, true
}
