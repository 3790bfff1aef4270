package calendar

import "time"

// ManualClosures reports ad hoc market closures (half-days treated as closed,
// exchange outages). Sourced from an externally maintained list of ISO
// dates; see store.LoadManualClosures.
type ManualClosures interface {
	IsManuallyClosed(d Date) bool
}

// ClosureSet is a ManualClosures backed by a plain set of dates.
type ClosureSet map[Date]struct{}

// NewClosureSet builds a ClosureSet from explicit dates.
func NewClosureSet(dates ...Date) ClosureSet {
	set := make(ClosureSet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// IsManuallyClosed reports whether d is in the set.
func (s ClosureSet) IsManuallyClosed(d Date) bool {
	_, ok := s[d]
	return ok
}

// Calendar decides which dates are trading days. It is a pure function of
// its inputs: weekday rules, the injected holiday table and the injected
// manual closure set. It has no notion of "today".
type Calendar struct {
	holidays HolidayTable
	closures ManualClosures
}

// New builds a Calendar. closures may be an empty ClosureSet.
func New(holidays HolidayTable, closures ManualClosures) *Calendar {
	return &Calendar{holidays: holidays, closures: closures}
}

// IsTradingDay reports whether the market is open on d: a Monday-Friday that
// is not a public holiday, not a TSE year-end closure and not manually
// closed. Manual closures only ever close a day; they never reopen one the
// other rules close.
func (c *Calendar) IsTradingDay(d Date) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if yearEndClosure(d) {
		return false
	}
	if c.holidays.IsHoliday(d) {
		return false
	}
	return !c.closures.IsManuallyClosed(d)
}

// yearEndClosure reports the exchange's standing year-end closure days
// (Dec 31, Jan 2 and Jan 3; Jan 1 is already a public holiday).
func yearEndClosure(d Date) bool {
	switch d.Month {
	case time.December:
		return d.Day == 31
	case time.January:
		return d.Day == 2 || d.Day == 3
	}
	return false
}
