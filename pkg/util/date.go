package util

import "time"

// DayLayout is the calendar-day format used for cache keys and candle times.
const DayLayout = "2006-01-02"

// Today returns the current server-local calendar day.
func Today() string {
	return time.Now().Format(DayLayout)
}

// DayOf formats an arbitrary time as a calendar day.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a calendar day string. Returns (t, true) if it is a valid
// YYYY-MM-DD date.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
