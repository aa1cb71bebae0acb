package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jtomsett/clockbill/internal/models"
)

func TestJSONStore_FirstRunDefaults(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "clockbill.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entries, err := store.GetEntries()
	if err != nil || len(entries) != 0 {
		t.Errorf("entries = %v, %v; want empty", entries, err)
	}
	num, err := store.GetInvoiceNumber()
	if err != nil || num != 1 {
		t.Errorf("invoice number = %d, %v; want 1", num, err)
	}
	timer, err := store.GetTimer()
	if err != nil || timer.Running {
		t.Errorf("timer = %+v, %v; want idle", timer, err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.HourlyRate != models.DefaultSettings().HourlyRate {
		t.Errorf("settings not defaulted: %+v", settings)
	}
	weeks, err := store.GetWeeks()
	if err != nil || len(weeks) != 0 {
		t.Errorf("weeks = %v, %v; want empty", weeks, err)
	}
}

func TestJSONStore_GetBeforeLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "clockbill.json"))
	if _, err := store.GetEntries(); err == nil {
		t.Error("expected storage not loaded error")
	}
}

func TestJSONStore_InitRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbill.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("second Init should refuse the existing file")
	}
}

func TestJSONStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbill.json")

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	started := time.Date(2024, 1, 17, 8, 0, 0, 0, time.UTC)
	merged := "2024-01-15"
	entry := models.TimeEntry{
		ID: "e1", Date: "2024-01-17", Location: "Site A", Tasks: "Painting",
		StartTime: "08:00", EndTime: "16:00", Hours: 8, Amount: 160, WeekID: "2024-01-15",
	}

	if err := store.SaveEntries([]models.TimeEntry{entry}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveInvoiceNumber(7); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveTimer(models.TimerSession{Running: true, StartTime: &started, Date: "2024-01-17"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveWeeks([]models.WeekPeriod{
		{ID: "2024-01-15", StartDate: "2024-01-15", EndDate: "2024-01-21", Entries: []models.TimeEntry{entry}},
		{ID: "2024-01-22", StartDate: "2024-01-22", EndDate: "2024-01-28", IsMerged: true, MergedWith: &merged},
	}); err != nil {
		t.Fatal(err)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	entries, _ := reloaded.GetEntries()
	if len(entries) != 1 || entries[0] != entry {
		t.Errorf("entries did not round-trip: %+v", entries)
	}
	num, _ := reloaded.GetInvoiceNumber()
	if num != 7 {
		t.Errorf("invoice number = %d, want 7", num)
	}
	timer, _ := reloaded.GetTimer()
	if !timer.Running || timer.StartTime == nil || !timer.StartTime.Equal(started) {
		t.Errorf("timer did not round-trip: %+v", timer)
	}
	weeks, _ := reloaded.GetWeeks()
	if len(weeks) != 2 {
		t.Fatalf("weeks = %d, want 2", len(weeks))
	}
	if !weeks[1].IsMerged || weeks[1].MergedWith == nil || *weeks[1].MergedWith != "2024-01-15" {
		t.Errorf("merge state did not round-trip: %+v", weeks[1])
	}
	if len(weeks[0].Entries) != 1 {
		t.Errorf("week entries did not round-trip: %+v", weeks[0])
	}
}

func TestJSONStore_CorruptSliceFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbill.json")

	// Entries slice is garbage; the rest of the file is fine.
	content := `{
  "version": 1,
  "entries": "not an array",
  "invoice_number": 5
}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load should tolerate a corrupt slice: %v", err)
	}

	entries, _ := store.GetEntries()
	if len(entries) != 0 {
		t.Errorf("corrupt entries slice should default to empty, got %v", entries)
	}
	num, _ := store.GetInvoiceNumber()
	if num != 5 {
		t.Errorf("intact slice should survive, invoice number = %d, want 5", num)
	}
}

func TestJSONStore_CorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockbill.json")
	if err := os.WriteFile(path, []byte("{{{"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load should tolerate a corrupt file: %v", err)
	}
	num, _ := store.GetInvoiceNumber()
	if num != 1 {
		t.Errorf("invoice number = %d, want default 1", num)
	}
}
