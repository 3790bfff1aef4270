// Package yahoo adapts the Yahoo Finance chart API to the PriceLookup
// collaborator. It is the only place the game talks to the price provider.
package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/harunoguchi/trader-battle/internal/calendar"
	"github.com/harunoguchi/trader-battle/internal/contracts"
	"github.com/harunoguchi/trader-battle/pkg/config"
	"github.com/harunoguchi/trader-battle/pkg/logger"
)

// Client fetches daily OHLC bars from Yahoo Finance. Requests are throttled
// with an in-process limiter so batch fetches stay polite.
type Client struct {
	limiter *rate.Limiter
	log     *logger.Logger
}

// New creates a Client from config.
func New(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		limiter: rate.NewLimiter(rate.Limit(cfg.Prices.RequestsPerSec), cfg.Prices.Burst),
		log:     log,
	}
}

// Sample implements contracts.PriceLookup against the live provider. Absence
// of a bar for the requested date (unknown symbol, unlisted day) is ok=false;
// transport failures are errors.
func (c *Client) Sample(ctx context.Context, symbol string, date calendar.Date) (contracts.PriceSample, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return contracts.PriceSample{}, false, fmt.Errorf("rate limit wait: %w", err)
	}

	// The chart API takes a half-open instant range; one civil day is
	// [midnight, next midnight) in JST.
	start := date.Time()
	end := date.AddDays(1).Time()

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	for iter.Next() {
		bar := iter.Bar()
		barDate := calendar.DateOf(barTime(bar.Timestamp))
		if barDate != date {
			continue
		}

		sample := contracts.PriceSample{
			Symbol: symbol,
			Date:   date,
			Open:   nullablePrice(bar.Open),
			Close:  nullablePrice(bar.Close),
		}
		c.log.WithFields(map[string]interface{}{
			"symbol": symbol,
			"date":   date.String(),
		}).Debug("Fetched sample")
		return sample, true, nil
	}

	if err := iter.Err(); err != nil {
		return contracts.PriceSample{}, false, fmt.Errorf("yahoo chart %s %s: %w", symbol, date, err)
	}

	// No bar for that date: the provider simply has nothing. Normal absence.
	return contracts.PriceSample{}, false, nil
}

// FetchDay samples every symbol for one date. A symbol with no data maps to
// an empty sample (absence recorded, not dropped); a transport failure drops
// the symbol from the result and is logged, so the rest of the batch
// proceeds.
func (c *Client) FetchDay(ctx context.Context, symbols []string, date calendar.Date) map[string]contracts.PriceSample {
	result := make(map[string]contracts.PriceSample, len(symbols))
	for _, symbol := range symbols {
		sample, ok, err := c.Sample(ctx, symbol, date)
		if err != nil {
			c.log.WithError(err).WithField("symbol", symbol).Warn("Fetch failed, symbol omitted")
			continue
		}
		if !ok {
			sample = contracts.PriceSample{Symbol: symbol, Date: date}
		}
		result[symbol] = sample
	}
	return result
}

// nullablePrice treats a non-positive bar value as absent: Yahoo reports 0
// for fields it has no data for.
func nullablePrice(v decimal.Decimal) decimal.NullDecimal {
	if v.Sign() <= 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v)
}

func barTime(timestamp int) time.Time {
	return time.Unix(int64(timestamp), 0)
}
