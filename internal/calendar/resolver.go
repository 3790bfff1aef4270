package calendar

import (
	"errors"
	"fmt"
)

// maxScanDays caps the forward scan for a trading day. A real market week is
// never entirely closed, so hitting the cap means the calendar inputs are
// broken and the week must fail loudly instead of looping.
const maxScanDays = 10

// ErrCalendarExhausted is returned when no trading day exists within
// maxScanDays of the nominal date. Fatal for that week's processing.
var ErrCalendarExhausted = errors.New("no trading day within scan window")

// ResolveOpenDate returns the first trading day at or after the week's
// Monday; the week's opening prices are sampled there.
func (c *Calendar) ResolveOpenDate(week WeekID) (Date, error) {
	d, err := c.nextTradingDay(week.Date)
	if err != nil {
		return Date{}, fmt.Errorf("resolve open date for week %s: %w", week, err)
	}
	return d, nil
}

// ResolveCloseDate returns the first trading day at or after the week's
// nominal Friday. When the Friday is closed the close sample rolls forward,
// possibly into the following calendar week, never backward.
func (c *Calendar) ResolveCloseDate(week WeekID) (Date, error) {
	d, err := c.nextTradingDay(week.NominalFriday())
	if err != nil {
		return Date{}, fmt.Errorf("resolve close date for week %s: %w", week, err)
	}
	return d, nil
}

// ResolveDailyReferenceDate returns the reference date for an intra-week
// daily snapshot: the target date itself, with ok=false when the market is
// closed that day. Daily snapshots never roll forward; on a closed day the
// evaluation is skipped entirely. Only the week's open and final close roll.
func (c *Calendar) ResolveDailyReferenceDate(week WeekID, target Date) (Date, bool) {
	return target, c.IsTradingDay(target)
}

func (c *Calendar) nextTradingDay(from Date) (Date, error) {
	d := from
	for i := 0; i < maxScanDays; i++ {
		if c.IsTradingDay(d) {
			return d, nil
		}
		d = d.AddDays(1)
	}
	return Date{}, fmt.Errorf("%w (scanned %s..%s)", ErrCalendarExhausted, from, d.AddDays(-1))
}
