package calendar

import (
	"sync"
	"time"
)

// HolidayTable reports whether a date is a public holiday. Implementations
// must be pure: the answer depends only on the date.
type HolidayTable interface {
	IsHoliday(d Date) bool
}

// JapaneseHolidays computes the Japanese public-holiday table per civil year:
// fixed-date holidays, happy-Monday holidays, the equinoxes, substitute
// holidays and citizens' holidays. Years are computed once and cached.
//
// Valid for years 2000-2099: the equinox approximation and the current
// happy-Monday law both hold in that range.
type JapaneseHolidays struct {
	mu    sync.Mutex
	cache map[int]map[Date]string
}

// NewJapaneseHolidays returns an empty, lazily populated holiday table.
func NewJapaneseHolidays() *JapaneseHolidays {
	return &JapaneseHolidays{cache: make(map[int]map[Date]string)}
}

// IsHoliday reports whether d is a Japanese public holiday.
func (j *JapaneseHolidays) IsHoliday(d Date) bool {
	_, ok := j.yearTable(d.Year)[d]
	return ok
}

// HolidayName returns the Japanese name of the holiday on d, if any.
func (j *JapaneseHolidays) HolidayName(d Date) (string, bool) {
	name, ok := j.yearTable(d.Year)[d]
	return name, ok
}

func (j *JapaneseHolidays) yearTable(year int) map[Date]string {
	j.mu.Lock()
	defer j.mu.Unlock()

	if table, ok := j.cache[year]; ok {
		return table
	}
	table := computeHolidays(year)
	j.cache[year] = table
	return table
}

// computeHolidays builds the holiday-name table for one year.
func computeHolidays(year int) map[Date]string {
	table := make(map[Date]string)

	// Fixed-date holidays.
	table[NewDate(year, time.January, 1)] = "元日"
	table[NewDate(year, time.February, 11)] = "建国記念の日"
	if year >= 2020 {
		table[NewDate(year, time.February, 23)] = "天皇誕生日"
	}
	table[NewDate(year, time.April, 29)] = "昭和の日"
	table[NewDate(year, time.May, 3)] = "憲法記念日"
	table[NewDate(year, time.May, 4)] = "みどりの日"
	table[NewDate(year, time.May, 5)] = "こどもの日"
	if year >= 2016 {
		table[NewDate(year, time.August, 11)] = "山の日"
	}
	table[NewDate(year, time.November, 3)] = "文化の日"
	table[NewDate(year, time.November, 23)] = "勤労感謝の日"

	// Happy-Monday holidays.
	table[nthWeekday(year, time.January, time.Monday, 2)] = "成人の日"
	table[nthWeekday(year, time.July, time.Monday, 3)] = "海の日"
	table[nthWeekday(year, time.September, time.Monday, 3)] = "敬老の日"
	table[nthWeekday(year, time.October, time.Monday, 2)] = "スポーツの日"

	// Equinoxes.
	table[NewDate(year, time.March, equinoxDay(year, 20.8431))] = "春分の日"
	table[NewDate(year, time.September, equinoxDay(year, 23.2488))] = "秋分の日"

	// Citizens' holiday: a weekday squeezed between two holidays becomes one.
	// In practice this occurs in September when 敬老の日 and 秋分の日 are two
	// days apart.
	start := NewDate(year, time.January, 1)
	for d := start; d.Year == year; d = d.AddDays(1) {
		_, prev := table[d.AddDays(-1)]
		_, next := table[d.AddDays(1)]
		if _, self := table[d]; prev && next && !self && d.Weekday() != time.Sunday {
			table[d] = "国民の休日"
		}
	}

	// Substitute holiday: a holiday falling on Sunday shifts to the first
	// following day that is not already a holiday.
	for d := start; d.Year == year; d = d.AddDays(1) {
		if _, ok := table[d]; !ok || d.Weekday() != time.Sunday {
			continue
		}
		sub := d.AddDays(1)
		for {
			if _, taken := table[sub]; !taken {
				break
			}
			sub = sub.AddDays(1)
		}
		table[sub] = "振替休日"
	}

	return table
}

// nthWeekday returns the nth occurrence of a weekday in the given month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) Date {
	first := NewDate(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDays(offset + (n-1)*7)
}

// equinoxDay approximates the equinox day-of-month for 2000-2099 using the
// standard astronomical formula.
func equinoxDay(year int, base float64) int {
	y := year - 1980
	return int(base+0.242194*float64(y)) - y/4
}
