package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jtomsett/clockbill/internal/invoice"
	"github.com/jtomsett/clockbill/internal/models"
	"github.com/jtomsett/clockbill/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.invoiceView.Width = msg.Width - 4
		m.invoiceView.Height = msg.Height - 8
		return m, nil

	case TickMsg:
		m.now = time.Time(msg)
		return m, tick()
	}

	switch m.state {
	case StateStopForm:
		return m.updateStopForm(msg)
	case StateSettingsForm:
		return m.updateSettingsForm(msg)
	case StateConfirmComplete:
		return m.updateConfirmComplete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.errMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.cursor = 0
		return m.refreshTab(), nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		m.cursor = 0
		return m.refreshTab(), nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case StateTimer:
		return m.handleTimerKey(msg)
	case StateWeeks:
		return m.handleWeeksKey(msg)
	case StateInvoice:
		return m.handleInvoiceKey(msg)
	case StateSettings:
		return m.handleSettingsKey(msg)
	}

	return m, nil
}

// refreshTab recomputes per-tab derived state after a tab switch.
func (m Model) refreshTab() Model {
	switch m.state {
	case StateInvoice:
		m.invoiceView.SetContent(m.renderInvoice())
		m.invoiceView.GotoTop()
	case StateWeeks:
		rows := m.weekRows()
		if m.cursor >= len(rows) {
			m.cursor = 0
		}
	}
	return m
}

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Start):
		if err := m.tracker.StartTimer(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.statusMsg = "Timer started"

	case key.Matches(msg, m.keys.Stop):
		if !m.tracker.Timer().Running {
			m.statusMsg = "No timer running"
			return m, nil
		}
		m.previousState = m.state
		m.stopForm = &StopFormModel{}
		m.form = newStopForm(m.stopForm)
		m.state = StateStopForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Cancel):
		if !m.tracker.Timer().Running {
			m.statusMsg = "No timer running"
			return m, nil
		}
		if err := m.tracker.CancelTimer(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.statusMsg = "Session discarded"
	}
	return m, nil
}

func (m Model) handleWeeksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.weekRows()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(rows) && !rows[m.cursor].IsMerged {
			id := rows[m.cursor].ID
			if m.selected[id] {
				delete(m.selected, id)
			} else {
				m.selected[id] = true
			}
		}

	case key.Matches(msg, m.keys.Merge):
		ids := m.selectedWeekIDs()
		if len(ids) < 2 {
			m.statusMsg = "Select at least two weeks to merge"
			return m, nil
		}
		if err := m.tracker.MergeWeeks(ids); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.selected = map[string]bool{ids[0]: true}
		m.statusMsg = fmt.Sprintf("Merged %d weeks", len(ids))

	case key.Matches(msg, m.keys.Unmerge):
		if m.cursor < len(rows) {
			id := rows[m.cursor].ID
			if err := m.tracker.UnmergeWeeks(id); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.statusMsg = "Unmerged"
		}
	}
	return m, nil
}

func (m Model) handleInvoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		data := m.tracker.GenerateInvoice(m.selectedWeekIDs())
		text := invoice.RenderText(data, m.tracker.Settings(), m.now)
		if err := clipboard.WriteAll(text); err != nil {
			m.errMsg = fmt.Sprintf("clipboard: %v", err)
			return m, nil
		}
		m.statusMsg = "Invoice copied to clipboard"
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		m.previousState = m.state
		m.state = StateConfirmComplete
		return m, nil
	}

	var cmd tea.Cmd
	m.invoiceView, cmd = m.invoiceView.Update(msg)
	return m, cmd
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Edit) {
		s := m.tracker.Settings()
		m.previousState = m.state
		m.settingsForm = &SettingsFormModel{
			ContractorName: s.ContractorName,
			ClientName:     s.ClientName,
			HourlyRate:     strconv.FormatFloat(s.HourlyRate, 'f', -1, 64),
			CISRate:        strconv.FormatFloat(s.CISRate, 'f', -1, 64),
			PeriodType:     s.PeriodType,
			AccentColor:    s.AccentColor,
		}
		m.form = newSettingsForm(m.settingsForm)
		m.state = StateSettingsForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateStopForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		entry, err := m.tracker.StopTimer(m.stopForm.Location, m.stopForm.Tasks)
		switch {
		case errors.Is(err, tracker.ErrMissingDetails):
			m.errMsg = "Location and tasks are required; timer still running"
		case err != nil:
			m.errMsg = err.Error()
		default:
			m.statusMsg = fmt.Sprintf("Logged %.2fh (£%.2f)", entry.Hours, entry.Amount)
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.settingsForm
		hourly := parseRate(fm.HourlyRate)
		cis := parseRate(fm.CISRate)
		accent := strings.TrimSpace(fm.AccentColor)
		patch := models.SettingsPatch{
			ContractorName: &fm.ContractorName,
			ClientName:     &fm.ClientName,
			HourlyRate:     &hourly,
			CISRate:        &cis,
			PeriodType:     &fm.PeriodType,
		}
		if accent != "" {
			patch.AccentColor = &accent
		}
		if err := m.tracker.UpdateSettings(patch); err != nil {
			m.errMsg = err.Error()
		} else {
			m.styles = newStyles(m.tracker.Settings().AccentColor)
			m.statusMsg = "Settings saved"
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		ids := m.selectedWeekIDs()
		if len(ids) == 0 {
			for _, w := range m.tracker.AvailableWeeks() {
				ids = append(ids, w.ID)
			}
		}
		if err := m.tracker.CompletePeriod(ids); err != nil {
			m.errMsg = err.Error()
		} else {
			m.selected = map[string]bool{}
			m.statusMsg = fmt.Sprintf("Period closed, next invoice %s", invoice.FormatNumber(m.tracker.InvoiceNumber()))
		}
		m.state = m.previousState
		return m.refreshTab(), nil
	case "n", "N", "esc":
		m.state = m.previousState
		return m, nil
	}
	return m, nil
}
