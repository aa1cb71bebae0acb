package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/jtomsett/clockbill/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    date TEXT NOT NULL,
    location TEXT NOT NULL,
    tasks TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    hours REAL NOT NULL,
    amount REAL NOT NULL,
    week_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS weeks (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    is_merged INTEGER NOT NULL DEFAULT 0,
    merged_with TEXT
);

CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const (
	metaSettings      = "settings"
	metaInvoiceNumber = "invoice_number"
	metaTimer         = "timer"
)

// SQLiteStore keeps each slice in its own tables so slice saves stay
// independent: entries and weeks as rows, settings and timer as JSON values
// in the meta table. Week entry lists are rebuilt on read by grouping entry
// rows by week id in insertion order.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.SaveSettings(models.DefaultSettings())
}

// Load opens the database, creating the schema when needed. A missing file
// is a first run: every slice reads back as its default.
func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetEntries() ([]models.TimeEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT id, date, location, tasks, start_time, end_time, hours, amount, week_id
		FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.TimeEntry{}
	for rows.Next() {
		var e models.TimeEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Location, &e.Tasks, &e.StartTime, &e.EndTime, &e.Hours, &e.Amount, &e.WeekID); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) SaveEntries(entries []models.TimeEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	for _, e := range entries {
		_, err := tx.Exec(`INSERT INTO entries (id, date, location, tasks, start_time, end_time, hours, amount, week_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Date, e.Location, e.Tasks, e.StartTime, e.EndTime, e.Hours, e.Amount, e.WeekID)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetWeeks() ([]models.WeekPeriod, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT id, start_date, end_date, is_merged, merged_with FROM weeks ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query weeks: %w", err)
	}
	defer rows.Close()

	weeks := []models.WeekPeriod{}
	for rows.Next() {
		var w models.WeekPeriod
		var merged sql.NullString
		if err := rows.Scan(&w.ID, &w.StartDate, &w.EndDate, &w.IsMerged, &merged); err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		if merged.Valid {
			w.MergedWith = &merged.String
		}
		w.Entries = []models.TimeEntry{}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rebuild each week's entry list from the entries slice, preserving
	// insertion order.
	entries, err := s.GetEntries()
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(weeks))
	for i, w := range weeks {
		index[w.ID] = i
	}
	for _, e := range entries {
		if i, ok := index[e.WeekID]; ok {
			weeks[i].Entries = append(weeks[i].Entries, e)
		}
	}

	return weeks, nil
}

func (s *SQLiteStore) SaveWeeks(weeks []models.WeekPeriod) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM weeks`); err != nil {
		return fmt.Errorf("failed to clear weeks: %w", err)
	}
	for _, w := range weeks {
		var merged any
		if w.MergedWith != nil {
			merged = *w.MergedWith
		}
		_, err := tx.Exec(`INSERT INTO weeks (id, start_date, end_date, is_merged, merged_with) VALUES (?, ?, ?, ?, ?)`,
			w.ID, w.StartDate, w.EndDate, w.IsMerged, merged)
		if err != nil {
			return fmt.Errorf("failed to insert week %s: %w", w.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetSettings() (models.InvoiceSettings, error) {
	settings := models.DefaultSettings()
	if s.db == nil {
		return settings, fmt.Errorf("storage not loaded")
	}

	raw, ok, err := s.getMeta(metaSettings)
	if err != nil {
		return settings, err
	}
	if ok {
		// Unparseable settings fall back to defaults.
		_ = json.Unmarshal([]byte(raw), &settings)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.InvoiceSettings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	return s.setMeta(metaSettings, string(data))
}

func (s *SQLiteStore) GetInvoiceNumber() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	raw, ok, err := s.getMeta(metaInvoiceNumber)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1, nil
	}
	return n, nil
}

func (s *SQLiteStore) SaveInvoiceNumber(n int) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return s.setMeta(metaInvoiceNumber, strconv.Itoa(n))
}

func (s *SQLiteStore) GetTimer() (models.TimerSession, error) {
	var timer models.TimerSession
	if s.db == nil {
		return timer, fmt.Errorf("storage not loaded")
	}

	raw, ok, err := s.getMeta(metaTimer)
	if err != nil {
		return timer, err
	}
	if ok {
		// Unparseable timer state falls back to idle.
		_ = json.Unmarshal([]byte(raw), &timer)
	}
	return timer, nil
}

func (s *SQLiteStore) SaveTimer(timer models.TimerSession) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	data, err := json.Marshal(timer)
	if err != nil {
		return fmt.Errorf("failed to serialize timer: %w", err)
	}
	return s.setMeta(metaTimer, string(data))
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) getMeta(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) setMeta(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
