package contracts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/harunoguchi/trader-battle/internal/calendar"
)

// PriceSample is the OHLC observation for one symbol on one date, reduced to
// the two fields the game uses. Either field may be absent when the provider
// had no data; a sample is immutable once recorded and never retroactively
// corrected.
//
// Prices are decimals so a persisted sample re-parses to the exact value.
type PriceSample struct {
	Symbol string              `json:"symbol"`
	Date   calendar.Date       `json:"date"`
	Open   decimal.NullDecimal `json:"open"`
	Close  decimal.NullDecimal `json:"close"`
}

// HasOpen reports whether the opening price is present.
func (s PriceSample) HasOpen() bool {
	return s.Open.Valid
}

// HasClose reports whether the closing price is present.
func (s PriceSample) HasClose() bool {
	return s.Close.Valid
}

// PriceLookup supplies price samples. The engine treats absence (ok=false)
// as a normal outcome, not an error; err is reserved for adapter failures
// such as an unreachable provider.
type PriceLookup interface {
	Sample(ctx context.Context, symbol string, date calendar.Date) (sample PriceSample, ok bool, err error)
}
