package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Ordering(t *testing.T) {
	a := MustParseDate("2025-01-06")
	b := MustParseDate("2025-01-07")
	c := MustParseDate("2025-02-06")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, b.Before(c))
	assert.False(t, a.Before(a))
	assert.Equal(t, a, MustParseDate("2025-01-06"))
}

func TestDate_AddDaysAcrossBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start string
		days  int
		want  string
	}{
		{"month boundary", "2025-01-31", 1, "2025-02-01"},
		{"year boundary", "2024-12-30", 3, "2025-01-02"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"backward", "2025-01-06", -6, "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDate(tt.start).AddDays(tt.days)
			assert.Equal(t, MustParseDate(tt.want), got)
		})
	}
}

func TestDateOf_UsesJSTCivilDate(t *testing.T) {
	// 2025-01-05 23:30 UTC is already 2025-01-06 08:30 in JST.
	utc := time.Date(2025, 1, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, MustParseDate("2025-01-06"), DateOf(utc))
}

func TestDate_TextRoundTrip(t *testing.T) {
	d := MustParseDate("2025-03-20")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-20"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	// Dates also work as JSON object keys.
	m := map[Date]string{d: "x"}
	data, err = json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2025-03-20":"x"}`, string(data))
}

func TestNewWeekID_RejectsNonMonday(t *testing.T) {
	_, err := NewWeekID(MustParseDate("2025-01-07"))
	require.Error(t, err)

	w, err := NewWeekID(MustParseDate("2025-01-06"))
	require.NoError(t, err)
	assert.Equal(t, time.Monday, w.Weekday())
}

func TestWeekOf(t *testing.T) {
	monday := MustParseDate("2025-01-06")

	tests := []struct {
		name string
		date string
	}{
		{"monday itself", "2025-01-06"},
		{"midweek", "2025-01-08"},
		{"sunday", "2025-01-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, WeekOf(MustParseDate(tt.date)).Date)
		})
	}
}

func TestWeekID_NominalFridayAndContains(t *testing.T) {
	w, err := ParseWeekID("2025-01-06")
	require.NoError(t, err)

	assert.Equal(t, MustParseDate("2025-01-10"), w.NominalFriday())
	assert.True(t, w.Contains(MustParseDate("2025-01-06")))
	assert.True(t, w.Contains(MustParseDate("2025-01-12")))
	assert.False(t, w.Contains(MustParseDate("2025-01-13")))
	assert.False(t, w.Contains(MustParseDate("2025-01-05")))
}
