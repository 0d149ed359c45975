package dateutil

import (
	"time"
)

const Day = 24 * time.Hour

// StartOfDay truncates t to the midnight of its calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfWeek returns the midnight of the Sunday starting the week of t in
// loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// DiffDays returns the number of calendar days from `from` to `to`. Both
// values are expected to be midnights in the same location. DST shifts are
// absorbed by comparing calendar dates instead of durations.
func DiffDays(to, from time.Time) int {
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDate.Sub(fromDate) / Day)
}

// ISODate formats t as YYYY-MM-DD in loc.
func ISODate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ParseISODate parses YYYY-MM-DD as the midnight in loc.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
