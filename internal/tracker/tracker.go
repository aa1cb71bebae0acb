// Package tracker is the period and invoice accounting engine. A Tracker
// owns the five state slices in memory and writes the affected slices back
// through its storage Provider after every mutation. All operations are
// synchronous; the engine is single-user and not safe for concurrent use.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jtomsett/clockbill/internal/invoice"
	"github.com/jtomsett/clockbill/internal/models"
	"github.com/jtomsett/clockbill/internal/period"
	"github.com/jtomsett/clockbill/internal/storage"
)

// ErrMissingDetails is returned by StopTimer and AddEntry when location or
// tasks are empty after trimming. The timer keeps running so the caller can
// collect the details and retry.
var ErrMissingDetails = errors.New("location and tasks are required")

const timeFormat = "15:04"

type Tracker struct {
	store storage.Provider
	now   func() time.Time

	entries       []models.TimeEntry
	settings      models.InvoiceSettings
	invoiceNumber int
	timer         models.TimerSession
	weeks         []models.WeekPeriod
}

// New builds a Tracker from the store's current state. The store must
// already be loaded.
func New(store storage.Provider) (*Tracker, error) {
	entries, err := store.GetEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	num, err := store.GetInvoiceNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice number: %w", err)
	}
	timer, err := store.GetTimer()
	if err != nil {
		return nil, fmt.Errorf("failed to read timer: %w", err)
	}
	weeks, err := store.GetWeeks()
	if err != nil {
		return nil, fmt.Errorf("failed to read weeks: %w", err)
	}

	return &Tracker{
		store:         store,
		now:           time.Now,
		entries:       entries,
		settings:      settings,
		invoiceNumber: num,
		timer:         timer,
		weeks:         weeks,
	}, nil
}

// Entries returns all entries in creation order.
func (t *Tracker) Entries() []models.TimeEntry { return t.entries }

// Settings returns the current configuration.
func (t *Tracker) Settings() models.InvoiceSettings { return t.settings }

// InvoiceNumber returns the current counter value.
func (t *Tracker) InvoiceNumber() int { return t.invoiceNumber }

// Timer returns the current session state.
func (t *Tracker) Timer() models.TimerSession { return t.timer }

// Weeks returns every stored week period, merged or not.
func (t *Tracker) Weeks() []models.WeekPeriod { return t.weeks }

// StartTimer begins a work session, capturing the start instant and the
// date bucket. A no-op when a session is already running: only one session
// may run at a time.
func (t *Tracker) StartTimer() error {
	if t.timer.Running {
		return nil
	}
	now := t.now()
	t.timer = models.TimerSession{
		Running:   true,
		StartTime: &now,
		Date:      now.Format(period.DateFormat),
	}
	return t.store.SaveTimer(t.timer)
}

// StopTimer ends the running session and emits a TimeEntry. Returns
// (nil, nil) when no session is running. Returns ErrMissingDetails, with
// the session still running, when location or tasks are blank: stopping and
// accepting the entry are deliberately separate so the caller can prompt
// for details at the end of a session.
func (t *Tracker) StopTimer(location, tasks string) (*models.TimeEntry, error) {
	if !t.timer.Running || t.timer.StartTime == nil {
		return nil, nil
	}

	location = strings.TrimSpace(location)
	tasks = strings.TrimSpace(tasks)
	if location == "" || tasks == "" {
		return nil, ErrMissingDetails
	}

	start := *t.timer.StartTime
	stop := t.now()
	rawHours := stop.Sub(start).Hours()

	weekID, err := period.WeekIDForDate(t.timer.Date)
	if err != nil {
		// The bucket date was captured by StartTimer, so this only happens
		// with hand-edited state. Fall back to the start instant's week.
		weekID = period.WeekID(start)
	}

	entry := models.TimeEntry{
		ID:        uuid.New().String(),
		Date:      t.timer.Date,
		Location:  location,
		Tasks:     tasks,
		StartTime: start.Format(timeFormat),
		EndTime:   stop.Format(timeFormat),
		Hours:     period.Round2(rawHours),
		Amount:    period.Round2(rawHours * t.settings.HourlyRate),
		WeekID:    weekID,
	}

	t.entries = append(t.entries, entry)
	t.bucket(entry)
	t.timer = models.TimerSession{}

	if err := t.persistEntrySlices(); err != nil {
		return &entry, err
	}
	return &entry, t.store.SaveTimer(t.timer)
}

// CancelTimer discards any in-progress session without emitting an entry.
func (t *Tracker) CancelTimer() error {
	t.timer = models.TimerSession{}
	return t.store.SaveTimer(t.timer)
}

// Elapsed returns how long the current session has been running, or zero
// when idle. Pure read; safe to poll for live display.
func (t *Tracker) Elapsed() time.Duration {
	if !t.timer.Running || t.timer.StartTime == nil {
		return 0
	}
	return t.now().Sub(*t.timer.StartTime)
}

// AddEntry records a completed session by hand, with explicit date and
// HH:MM start/end times. Follows the same rounding, rate-snapshot, and
// bucketing rules as StopTimer.
func (t *Tracker) AddEntry(date, location, tasks, startHM, endHM string) (*models.TimeEntry, error) {
	location = strings.TrimSpace(location)
	tasks = strings.TrimSpace(tasks)
	if location == "" || tasks == "" {
		return nil, ErrMissingDetails
	}

	weekID, err := period.WeekIDForDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start, err := time.Parse(timeFormat, startHM)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", startHM, err)
	}
	end, err := time.Parse(timeFormat, endHM)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", endHM, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end time %s must be after start time %s", endHM, startHM)
	}

	rawHours := end.Sub(start).Hours()
	entry := models.TimeEntry{
		ID:        uuid.New().String(),
		Date:      date,
		Location:  location,
		Tasks:     tasks,
		StartTime: startHM,
		EndTime:   endHM,
		Hours:     period.Round2(rawHours),
		Amount:    period.Round2(rawHours * t.settings.HourlyRate),
		WeekID:    weekID,
	}

	t.entries = append(t.entries, entry)
	t.bucket(entry)
	return &entry, t.persistEntrySlices()
}

// bucket places an entry in its week period, creating the period on first
// sight of the week.
func (t *Tracker) bucket(entry models.TimeEntry) {
	for i := range t.weeks {
		if t.weeks[i].ID == entry.WeekID {
			t.weeks[i].Entries = append(t.weeks[i].Entries, entry)
			return
		}
	}

	end, err := period.WeekEnd(entry.WeekID)
	if err != nil {
		end = entry.WeekID
	}
	t.weeks = append(t.weeks, models.WeekPeriod{
		ID:        entry.WeekID,
		StartDate: entry.WeekID,
		EndDate:   end,
		Entries:   []models.TimeEntry{entry},
	})
}

// DeleteEntry removes an entry by id from the entry list and from whichever
// week holds it. A week left with no entries is retained: AvailableWeeks
// filters it out, and stored state keeps round-tripping unchanged.
func (t *Tracker) DeleteEntry(id string) error {
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	t.entries = kept

	for i := range t.weeks {
		weekKept := t.weeks[i].Entries[:0]
		for _, e := range t.weeks[i].Entries {
			if e.ID != id {
				weekKept = append(weekKept, e)
			}
		}
		t.weeks[i].Entries = weekKept
	}

	return t.persistEntrySlices()
}

// UpdateSettings shallow-merges the patch into the current settings. Rate
// changes affect future entries only.
func (t *Tracker) UpdateSettings(patch models.SettingsPatch) error {
	t.settings.Apply(patch)
	return t.store.SaveSettings(t.settings)
}

// AvailableWeeks returns the weeks that can head an invoice: not merged
// into another week and holding at least one entry, in storage order.
func (t *Tracker) AvailableWeeks() []models.WeekPeriod {
	var available []models.WeekPeriod
	for _, w := range t.weeks {
		if !w.IsMerged && len(w.Entries) > 0 {
			available = append(available, w)
		}
	}
	return available
}

// MergeWeeks folds the listed weeks into one billing group. The first id is
// the primary; every other listed week is flagged merged and pointed at it.
// The primary itself is never flagged. Fewer than two ids is a no-op.
func (t *Tracker) MergeWeeks(weekIDs []string) error {
	if len(weekIDs) < 2 {
		return nil
	}

	primary := weekIDs[0]
	listed := make(map[string]bool, len(weekIDs))
	for _, id := range weekIDs {
		listed[id] = true
	}

	for i := range t.weeks {
		if listed[t.weeks[i].ID] && t.weeks[i].ID != primary {
			merged := primary
			t.weeks[i].IsMerged = true
			t.weeks[i].MergedWith = &merged
		}
	}

	return t.store.SaveWeeks(t.weeks)
}

// UnmergeWeeks releases every week merged into primaryID. Weeks merged into
// a different primary are untouched; a no-op when nothing points at it.
func (t *Tracker) UnmergeWeeks(primaryID string) error {
	for i := range t.weeks {
		if t.weeks[i].MergedWith != nil && *t.weeks[i].MergedWith == primaryID {
			t.weeks[i].IsMerged = false
			t.weeks[i].MergedWith = nil
		}
	}
	return t.store.SaveWeeks(t.weeks)
}

// GenerateInvoice computes an invoice over the selected weeks' entries.
// Pure: stored state is unchanged.
func (t *Tracker) GenerateInvoice(selectedWeekIDs []string) invoice.Data {
	today := t.now().Format(period.DateFormat)
	return invoice.Generate(t.entries, selectedWeekIDs, t.settings.CISRate, t.invoiceNumber, today)
}

// IncrementInvoiceNumber advances the counter by one.
func (t *Tracker) IncrementInvoiceNumber() error {
	t.invoiceNumber++
	return t.store.SaveInvoiceNumber(t.invoiceNumber)
}

// SetInvoiceNumber sets the counter directly. Non-positive values are
// ignored and the prior value retained.
func (t *Tracker) SetInvoiceNumber(n int) error {
	if n < 1 {
		return nil
	}
	t.invoiceNumber = n
	return t.store.SaveInvoiceNumber(t.invoiceNumber)
}

// ClearCompletedEntries purges every entry and week belonging to the given
// week ids.
func (t *Tracker) ClearCompletedEntries(weekIDs []string) error {
	listed := make(map[string]bool, len(weekIDs))
	for _, id := range weekIDs {
		listed[id] = true
	}

	keptEntries := t.entries[:0]
	for _, e := range t.entries {
		if !listed[e.WeekID] {
			keptEntries = append(keptEntries, e)
		}
	}
	t.entries = keptEntries

	keptWeeks := t.weeks[:0]
	for _, w := range t.weeks {
		if !listed[w.ID] {
			keptWeeks = append(keptWeeks, w)
		}
	}
	t.weeks = keptWeeks

	return t.persistEntrySlices()
}

// CompletePeriod closes out an invoice: advances the counter and purges the
// consumed entries and weeks. Both effects are applied in memory before any
// persistence, so the in-process state never holds a partial closeout.
func (t *Tracker) CompletePeriod(weekIDs []string) error {
	t.invoiceNumber++
	if err := t.ClearCompletedEntries(weekIDs); err != nil {
		return err
	}
	return t.store.SaveInvoiceNumber(t.invoiceNumber)
}

func (t *Tracker) persistEntrySlices() error {
	if err := t.store.SaveEntries(t.entries); err != nil {
		return err
	}
	return t.store.SaveWeeks(t.weeks)
}
