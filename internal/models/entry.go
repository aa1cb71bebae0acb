package models

import "time"

// TimeEntry is one finalized, timed work session. Hours and Amount are
// computed once at creation with the hourly rate in effect at that moment;
// later settings changes never touch existing entries.
type TimeEntry struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"` // YYYY-MM-DD format
	Location  string  `json:"location"`
	Tasks     string  `json:"tasks"`
	StartTime string  `json:"start_time"` // HH:MM format
	EndTime   string  `json:"end_time"`   // HH:MM format
	Hours     float64 `json:"hours"`
	Amount    float64 `json:"amount"`
	WeekID    string  `json:"week_id"`
}

// TimerSession is the singleton in-progress session. StartTime is nil
// whenever the timer is idle.
type TimerSession struct {
	Running   bool       `json:"running"`
	StartTime *time.Time `json:"start_time,omitempty"`
	Date      string     `json:"date,omitempty"` // YYYY-MM-DD bucket captured at start
}

// WeekPeriod is a Monday-anchored 7-day billing bucket. Its ID is the ISO
// date of the Monday that starts the week. MergedWith is nil unless the
// week has been folded into another week's billing group.
type WeekPeriod struct {
	ID         string      `json:"id"`
	StartDate  string      `json:"start_date"` // YYYY-MM-DD format
	EndDate    string      `json:"end_date"`   // YYYY-MM-DD format
	Entries    []TimeEntry `json:"entries"`
	IsMerged   bool        `json:"is_merged"`
	MergedWith *string     `json:"merged_with,omitempty"`
}

// TotalHours sums the hours of the week's entries.
func (w WeekPeriod) TotalHours() float64 {
	var total float64
	for _, e := range w.Entries {
		total += e.Hours
	}
	return total
}

// TotalAmount sums the amounts of the week's entries.
func (w WeekPeriod) TotalAmount() float64 {
	var total float64
	for _, e := range w.Entries {
		total += e.Amount
	}
	return total
}
