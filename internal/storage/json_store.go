package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jtomsett/clockbill/internal/models"
)

// storeFile keeps the five slices as raw JSON so each one decodes
// independently: a corrupt slice falls back to its default without taking
// the rest of the state down with it.
type storeFile struct {
	Version       int             `json:"version"`
	Entries       json.RawMessage `json:"entries,omitempty"`
	Settings      json.RawMessage `json:"settings,omitempty"`
	InvoiceNumber json.RawMessage `json:"invoice_number,omitempty"`
	Timer         json.RawMessage `json:"timer,omitempty"`
	Weeks         json.RawMessage `json:"weeks,omitempty"`
}

type state struct {
	entries       []models.TimeEntry
	settings      models.InvoiceSettings
	invoiceNumber int
	timer         models.TimerSession
	weeks         []models.WeekPeriod
}

func defaultState() *state {
	return &state{
		entries:       []models.TimeEntry{},
		settings:      models.DefaultSettings(),
		invoiceNumber: 1,
		weeks:         []models.WeekPeriod{},
	}
}

type JSONStore struct {
	path  string
	state *state
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.state = defaultState()
	return s.save()
}

// Load reads the store file. A missing file means first run: every slice
// starts at its default. A slice that fails to decode is likewise reset to
// its default rather than failing the load.
func (s *JSONStore) Load() error {
	s.state = defaultState()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil
	}

	if file.Entries != nil {
		var entries []models.TimeEntry
		if err := json.Unmarshal(file.Entries, &entries); err == nil && entries != nil {
			s.state.entries = entries
		}
	}
	if file.Settings != nil {
		settings := models.DefaultSettings()
		if err := json.Unmarshal(file.Settings, &settings); err == nil {
			s.state.settings = settings
		}
	}
	if file.InvoiceNumber != nil {
		var num int
		if err := json.Unmarshal(file.InvoiceNumber, &num); err == nil && num >= 1 {
			s.state.invoiceNumber = num
		}
	}
	if file.Timer != nil {
		var timer models.TimerSession
		if err := json.Unmarshal(file.Timer, &timer); err == nil {
			s.state.timer = timer
		}
	}
	if file.Weeks != nil {
		var weeks []models.WeekPeriod
		if err := json.Unmarshal(file.Weeks, &weeks); err == nil && weeks != nil {
			s.state.weeks = weeks
		}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	file := storeFile{Version: 1}

	var err error
	if file.Entries, err = json.Marshal(s.state.entries); err != nil {
		return fmt.Errorf("failed to serialize entries: %w", err)
	}
	if file.Settings, err = json.Marshal(s.state.settings); err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if file.InvoiceNumber, err = json.Marshal(s.state.invoiceNumber); err != nil {
		return fmt.Errorf("failed to serialize invoice number: %w", err)
	}
	if file.Timer, err = json.Marshal(s.state.timer); err != nil {
		return fmt.Errorf("failed to serialize timer: %w", err)
	}
	if file.Weeks, err = json.Marshal(s.state.weeks); err != nil {
		return fmt.Errorf("failed to serialize weeks: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetEntries() ([]models.TimeEntry, error) {
	if s.state == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.state.entries, nil
}

func (s *JSONStore) SaveEntries(entries []models.TimeEntry) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.state.entries = entries
	return s.save()
}

func (s *JSONStore) GetSettings() (models.InvoiceSettings, error) {
	if s.state == nil {
		return models.InvoiceSettings{}, fmt.Errorf("storage not loaded")
	}
	return s.state.settings, nil
}

func (s *JSONStore) SaveSettings(settings models.InvoiceSettings) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.state.settings = settings
	return s.save()
}

func (s *JSONStore) GetInvoiceNumber() (int, error) {
	if s.state == nil {
		return 0, fmt.Errorf("storage not loaded")
	}
	return s.state.invoiceNumber, nil
}

func (s *JSONStore) SaveInvoiceNumber(n int) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.state.invoiceNumber = n
	return s.save()
}

func (s *JSONStore) GetTimer() (models.TimerSession, error) {
	if s.state == nil {
		return models.TimerSession{}, fmt.Errorf("storage not loaded")
	}
	return s.state.timer, nil
}

func (s *JSONStore) SaveTimer(timer models.TimerSession) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.state.timer = timer
	return s.save()
}

func (s *JSONStore) GetWeeks() ([]models.WeekPeriod, error) {
	if s.state == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.state.weeks, nil
}

func (s *JSONStore) SaveWeeks(weeks []models.WeekPeriod) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.state.weeks = weeks
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
