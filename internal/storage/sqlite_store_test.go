package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jtomsett/clockbill/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "clockbill.db"))
	require.NoError(t, store.Load())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_FirstRunDefaults(t *testing.T) {
	store := newTestSQLiteStore(t)

	entries, err := store.GetEntries()
	require.NoError(t, err)
	require.Empty(t, entries)

	num, err := store.GetInvoiceNumber()
	require.NoError(t, err)
	require.Equal(t, 1, num)

	timer, err := store.GetTimer()
	require.NoError(t, err)
	require.False(t, timer.Running)

	settings, err := store.GetSettings()
	require.NoError(t, err)
	require.Equal(t, models.DefaultSettings().HourlyRate, settings.HourlyRate)

	weeks, err := store.GetWeeks()
	require.NoError(t, err)
	require.Empty(t, weeks)
}

func TestSQLiteStore_EntriesRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	entries := []models.TimeEntry{
		{ID: "e1", Date: "2024-01-17", Location: "Site A", Tasks: "Painting",
			StartTime: "08:00", EndTime: "16:00", Hours: 8, Amount: 160, WeekID: "2024-01-15"},
		{ID: "e2", Date: "2024-01-16", Location: "Site B", Tasks: "Snagging",
			StartTime: "09:00", EndTime: "12:00", Hours: 3, Amount: 60, WeekID: "2024-01-15"},
	}
	require.NoError(t, store.SaveEntries(entries))

	loaded, err := store.GetEntries()
	require.NoError(t, err)
	require.Equal(t, entries, loaded)

	// Re-saving replaces, preserving the new order.
	require.NoError(t, store.SaveEntries(entries[1:]))
	loaded, err = store.GetEntries()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "e2", loaded[0].ID)
}

func TestSQLiteStore_WeeksRebuildEntryLists(t *testing.T) {
	store := newTestSQLiteStore(t)

	entries := []models.TimeEntry{
		{ID: "e1", Date: "2024-01-17", WeekID: "2024-01-15", Hours: 2, Amount: 40},
		{ID: "e2", Date: "2024-01-22", WeekID: "2024-01-22", Hours: 1, Amount: 20},
		{ID: "e3", Date: "2024-01-19", WeekID: "2024-01-15", Hours: 3, Amount: 60},
	}
	require.NoError(t, store.SaveEntries(entries))

	merged := "2024-01-15"
	require.NoError(t, store.SaveWeeks([]models.WeekPeriod{
		{ID: "2024-01-15", StartDate: "2024-01-15", EndDate: "2024-01-21"},
		{ID: "2024-01-22", StartDate: "2024-01-22", EndDate: "2024-01-28", IsMerged: true, MergedWith: &merged},
		{ID: "2024-01-29", StartDate: "2024-01-29", EndDate: "2024-02-04"}, // retained empty week
	}))

	weeks, err := store.GetWeeks()
	require.NoError(t, err)
	require.Len(t, weeks, 3)

	require.Equal(t, []string{"e1", "e3"}, []string{weeks[0].Entries[0].ID, weeks[0].Entries[1].ID})
	require.True(t, weeks[1].IsMerged)
	require.NotNil(t, weeks[1].MergedWith)
	require.Equal(t, "2024-01-15", *weeks[1].MergedWith)
	require.Empty(t, weeks[2].Entries)
	require.Nil(t, weeks[0].MergedWith)
}

func TestSQLiteStore_MetaRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.SaveInvoiceNumber(12))
	num, err := store.GetInvoiceNumber()
	require.NoError(t, err)
	require.Equal(t, 12, num)

	started := time.Date(2024, 1, 17, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveTimer(models.TimerSession{Running: true, StartTime: &started, Date: "2024-01-17"}))
	timer, err := store.GetTimer()
	require.NoError(t, err)
	require.True(t, timer.Running)
	require.True(t, timer.StartTime.Equal(started))
	require.Equal(t, "2024-01-17", timer.Date)

	settings := models.DefaultSettings()
	settings.HourlyRate = 27.5
	settings.ClientName = "Acme Property Ltd"
	require.NoError(t, store.SaveSettings(settings))
	loaded, err := store.GetSettings()
	require.NoError(t, err)
	require.Equal(t, settings, loaded)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbill.db")

	store := NewSQLiteStore(path)
	require.NoError(t, store.Load())
	require.NoError(t, store.SaveInvoiceNumber(3))
	require.NoError(t, store.SaveEntries([]models.TimeEntry{
		{ID: "e1", Date: "2024-01-17", WeekID: "2024-01-15"},
	}))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(path)
	require.NoError(t, reopened.Load())
	defer reopened.Close()

	num, err := reopened.GetInvoiceNumber()
	require.NoError(t, err)
	require.Equal(t, 3, num)

	entries, err := reopened.GetEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSQLiteStore_CorruptMetaFallsBack(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.setMeta(metaInvoiceNumber, "garbage"))
	num, err := store.GetInvoiceNumber()
	require.NoError(t, err)
	require.Equal(t, 1, num)

	require.NoError(t, store.setMeta(metaTimer, "{{{"))
	timer, err := store.GetTimer()
	require.NoError(t, err)
	require.False(t, timer.Running)

	require.NoError(t, store.setMeta(metaSettings, "[]"))
	settings, err := store.GetSettings()
	require.NoError(t, err)
	require.Equal(t, models.DefaultSettings(), settings)
}
