package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jtomsett/clockbill/internal/models"
	"github.com/jtomsett/clockbill/internal/tracker"
)

type SessionState int

const (
	StateTimer SessionState = iota
	StateWeeks
	StateInvoice
	StateSettings
	StateStopForm
	StateSettingsForm
	StateConfirmComplete
)

const tabCount = 4

type StopFormModel struct {
	Location string
	Tasks    string
}

type SettingsFormModel struct {
	ContractorName string
	ClientName     string
	HourlyRate     string
	CISRate        string
	PeriodType     models.PeriodType
	AccentColor    string
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	tracker       *tracker.Tracker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	styles        Styles
	invoiceView   viewport.Model
	form          *huh.Form
	stopForm      *StopFormModel
	settingsForm  *SettingsFormModel
	cursor        int
	selected      map[string]bool
	statusMsg     string
	errMsg        string
	quitting      bool
	width         int
	height        int
	now           time.Time
}

func NewModel(tr *tracker.Tracker) Model {
	m := Model{
		tracker:     tr,
		state:       StateTimer,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      newStyles(tr.Settings().AccentColor),
		invoiceView: viewport.New(0, 0),
		selected:    map[string]bool{},
		now:         time.Now(),
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// weekRows returns the weeks shown on the Weeks tab, unmerged first so the
// cursor walks selectable rows before the greyed-out merged ones.
func (m Model) weekRows() []models.WeekPeriod {
	weeks := m.tracker.Weeks()
	rows := make([]models.WeekPeriod, 0, len(weeks))
	for _, w := range weeks {
		if !w.IsMerged {
			rows = append(rows, w)
		}
	}
	for _, w := range weeks {
		if w.IsMerged {
			rows = append(rows, w)
		}
	}
	return rows
}

func (m Model) selectedWeekIDs() []string {
	var ids []string
	for _, w := range m.tracker.AvailableWeeks() {
		if m.selected[w.ID] {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

func newStopForm(fm *StopFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Location").
				Value(&fm.Location).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("location cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Title("Tasks").
				Value(&fm.Tasks).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("tasks cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Contractor Name").
				Value(&fm.ContractorName),
			huh.NewInput().
				Title("Client Name").
				Value(&fm.ClientName),
			huh.NewInput().
				Title("Hourly Rate (£)").
				Value(&fm.HourlyRate),
			huh.NewInput().
				Title("CIS Rate (%)").
				Value(&fm.CISRate),
			huh.NewSelect[models.PeriodType]().
				Title("Invoice Period").
				Options(
					huh.NewOption("Weekly", models.PeriodWeekly),
					huh.NewOption("Bi-weekly", models.PeriodBiWeekly),
				).
				Value(&fm.PeriodType),
			huh.NewInput().
				Title("Accent Color").
				Description("ANSI 256 color code").
				Value(&fm.AccentColor),
		),
	).WithTheme(huh.ThemeDracula())
}

// parseRate follows the settings screen convention that unparseable numeric
// input becomes zero rather than an error.
func parseRate(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
