package period

import (
	"testing"
	"time"
)

func TestWeekIDForDate(t *testing.T) {
	cases := []struct {
		name string
		date string
		want string
	}{
		{"midweek wednesday", "2024-01-17", "2024-01-15"},
		{"monday maps to itself", "2024-01-15", "2024-01-15"},
		{"sunday belongs to preceding monday", "2024-01-21", "2024-01-15"},
		{"saturday", "2024-01-20", "2024-01-15"},
		{"year boundary", "2025-01-01", "2024-12-30"},
		{"leap day", "2024-02-29", "2024-02-26"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := WeekIDForDate(tc.date)
			if err != nil {
				t.Fatalf("WeekIDForDate(%q) failed: %v", tc.date, err)
			}
			if got != tc.want {
				t.Errorf("WeekIDForDate(%q) = %q, want %q", tc.date, got, tc.want)
			}
		})
	}
}

func TestWeekIDForDate_Invalid(t *testing.T) {
	if _, err := WeekIDForDate("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestWeekEnd(t *testing.T) {
	end, err := WeekEnd("2024-01-15")
	if err != nil {
		t.Fatalf("WeekEnd failed: %v", err)
	}
	if end != "2024-01-21" {
		t.Errorf("WeekEnd(2024-01-15) = %q, want 2024-01-21", end)
	}
}

func TestMondayOf_TruncatesTime(t *testing.T) {
	wed := time.Date(2024, 1, 17, 18, 45, 12, 0, time.UTC)
	monday := MondayOf(wed)
	if monday.Hour() != 0 || monday.Minute() != 0 {
		t.Errorf("expected midnight, got %v", monday)
	}
	if monday.Weekday() != time.Monday {
		t.Errorf("expected Monday, got %v", monday.Weekday())
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0}, // stored just below 1.005, rounds down
		{7.525, 7.53},
		{0.1 + 0.2, 0.3},
		{33.333333, 33.33},
		{2.675, 2.68},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
