// Package period holds the pure date math that buckets entries into
// Monday-anchored billing weeks.
package period

import (
	"math"
	"time"
)

const DateFormat = "2006-01-02"

// MondayOf returns the Monday on or before t within t's week. Sunday is
// treated as the last day of the week, not the first.
func MondayOf(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	monday := t.AddDate(0, 0, -offset+1)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// WeekID returns the week identifier for t: the ISO date of its Monday.
func WeekID(t time.Time) string {
	return MondayOf(t).Format(DateFormat)
}

// WeekIDForDate returns the week identifier for a YYYY-MM-DD date string.
// An unparseable date yields the zero week of the empty string's parse,
// so callers should validate dates first.
func WeekIDForDate(date string) (string, error) {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return "", err
	}
	return WeekID(t), nil
}

// WeekEnd returns the last day of the week starting at weekID (start + 6
// days, inclusive span).
func WeekEnd(weekID string) (string, error) {
	start, err := time.Parse(DateFormat, weekID)
	if err != nil {
		return "", err
	}
	return start.AddDate(0, 0, 6).Format(DateFormat), nil
}

// Round2 rounds a monetary or hour value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
