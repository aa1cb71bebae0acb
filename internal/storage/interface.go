package storage

import "github.com/jtomsett/clockbill/internal/models"

// Provider persists the five independent state slices: entries, settings,
// invoice number, timer, weeks. Each slice loads and stores on its own; a
// slice that is absent or unreadable yields its default (empty entries,
// default settings, counter 1, idle timer, empty weeks) so first runs and
// corrupt state both stay usable.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slices
	GetEntries() ([]models.TimeEntry, error)
	SaveEntries([]models.TimeEntry) error
	GetSettings() (models.InvoiceSettings, error)
	SaveSettings(models.InvoiceSettings) error
	GetInvoiceNumber() (int, error)
	SaveInvoiceNumber(int) error
	GetTimer() (models.TimerSession, error)
	SaveTimer(models.TimerSession) error
	GetWeeks() ([]models.WeekPeriod, error)
	SaveWeeks([]models.WeekPeriod) error

	// Utils
	GetConfigPath() string
}
