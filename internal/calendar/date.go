package calendar

import (
	"fmt"
	"time"
)

// JST is the civil timezone for all calendar reasoning. Week boundaries,
// trading-day checks and file naming all use JST dates; UTC appears only in
// stored timestamps.
var JST = time.FixedZone("JST", 9*60*60)

const dateLayout = "2006-01-02"

// Date is a civil date in the JST calendar. It carries no time-of-day and no
// location; two Dates are equal iff they name the same day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components, normalizing overflow the same
// way time.Date does (so NewDate(2025, 1, 32) is 2025-02-01).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, JST)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf converts an instant to the JST civil date it falls on.
func DateOf(t time.Time) Date {
	t = t.In(JST)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, JST)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for fixtures and constants; it panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight JST on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, JST)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Weekday returns the day of week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the ISO form (YYYY-MM-DD).
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler so Dates serialize as ISO
// strings, including as JSON object keys.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekID identifies one round of the game: the Monday (JST) that starts the
// nominal trading week. The Monday itself need not be a trading day.
type WeekID struct {
	Date
}

// NewWeekID validates that d is a Monday and wraps it as a WeekID.
func NewWeekID(d Date) (WeekID, error) {
	if d.Weekday() != time.Monday {
		return WeekID{}, fmt.Errorf("week id %s is a %s, want Monday", d, d.Weekday())
	}
	return WeekID{Date: d}, nil
}

// WeekOf returns the WeekID of the week containing d (the preceding or same
// Monday).
func WeekOf(d Date) WeekID {
	offset := (int(d.Weekday()) - int(time.Monday) + 7) % 7
	return WeekID{Date: d.AddDays(-offset)}
}

// ParseWeekID parses an ISO Monday date.
func ParseWeekID(s string) (WeekID, error) {
	d, err := ParseDate(s)
	if err != nil {
		return WeekID{}, err
	}
	return NewWeekID(d)
}

// NominalFriday returns the Friday of the nominal week (Monday + 4 days).
func (w WeekID) NominalFriday() Date {
	return w.AddDays(4)
}

// Contains reports whether d falls inside the nominal Monday-Sunday week.
func (w WeekID) Contains(d Date) bool {
	return !d.Before(w.Date) && !d.After(w.AddDays(6))
}

// UnmarshalText parses and validates a WeekID from its ISO form.
func (w *WeekID) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekID(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
