package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jtomsett/clockbill/internal/invoice"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTimer:
		content = m.viewTimer()
	case StateWeeks:
		content = m.viewWeeks()
	case StateInvoice:
		content = m.invoiceView.View()
	case StateSettings:
		content = m.viewSettings()
	case StateStopForm, StateSettingsForm:
		content = m.form.View()
	case StateConfirmComplete:
		content = m.viewConfirmComplete()
	}

	var status string
	if m.errMsg != "" {
		status = m.styles.Error.Render(m.errMsg)
	} else if m.statusMsg != "" {
		status = m.styles.Status.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Timer", "Weeks", "Invoice", "Settings"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTimer() string {
	var b strings.Builder

	timer := m.tracker.Timer()
	if timer.Running {
		b.WriteString(m.styles.Title.Render("Timer running") + "\n\n")
		elapsed := m.tracker.Elapsed()
		h := int(elapsed.Hours())
		mi := int(elapsed.Minutes()) % 60
		s := int(elapsed.Seconds()) % 60
		b.WriteString(m.styles.Elapsed.Render(fmt.Sprintf("  %d:%02d:%02d", h, mi, s)) + "\n\n")
		if timer.StartTime != nil {
			b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  started %s on %s", timer.StartTime.Format("15:04"), timer.Date)) + "\n")
		}
		b.WriteString("\n" + m.styles.Dim.Render("  x stop · c cancel") + "\n")
	} else {
		b.WriteString(m.styles.Title.Render("Timer idle") + "\n\n")
		b.WriteString(m.styles.Dim.Render("  press s to start a session") + "\n")
	}

	entries := m.tracker.Entries()
	if len(entries) > 0 {
		b.WriteString("\n" + m.styles.Title.Render("Recent entries") + "\n")
		start := len(entries) - 5
		if start < 0 {
			start = 0
		}
		for _, e := range entries[start:] {
			b.WriteString(fmt.Sprintf("  %s  %-20s %5.2fh  £%.2f\n", e.Date, e.Location, e.Hours, e.Amount))
		}
	}

	return m.styles.Pane.Render(b.String())
}

func (m Model) viewWeeks() string {
	rows := m.weekRows()
	if len(rows) == 0 {
		return m.styles.Pane.Render(m.styles.Dim.Render("No weeks yet. Log some time first."))
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Week periods") + "\n\n")
	for i, w := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		check := "[ ]"
		if m.selected[w.ID] {
			check = m.styles.Selected.Render("[x]")
		}
		line := fmt.Sprintf("%s %s — %s  %5.2fh  £%.2f  (%d entries)",
			check, w.StartDate, w.EndDate, w.TotalHours(), w.TotalAmount(), len(w.Entries))
		if w.IsMerged {
			target := ""
			if w.MergedWith != nil {
				target = " → " + *w.MergedWith
			}
			line = m.styles.Merged.Render(fmt.Sprintf("    %s — %s  merged%s", w.StartDate, w.EndDate, target))
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + m.styles.Dim.Render("space select · m merge · u unmerge"))
	return m.styles.Pane.Render(b.String())
}

func (m Model) renderInvoice() string {
	data := m.tracker.GenerateInvoice(m.selectedWeekIDs())
	text := invoice.RenderText(data, m.tracker.Settings(), m.now)

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("%s · %.2fh · y copy · C complete period", data.PeriodLabel, data.TotalHours)))
	return b.String()
}

func (m Model) viewSettings() string {
	s := m.tracker.Settings()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Settings") + "\n\n")
	b.WriteString(fmt.Sprintf("  Contractor:   %s\n", s.ContractorName))
	b.WriteString(fmt.Sprintf("  Client:       %s\n", s.ClientName))
	b.WriteString(fmt.Sprintf("  Hourly rate:  £%.2f\n", s.HourlyRate))
	b.WriteString(fmt.Sprintf("  CIS rate:     %g%%\n", s.CISRate))
	b.WriteString(fmt.Sprintf("  Period:       %s\n", s.PeriodType))
	b.WriteString(fmt.Sprintf("  Accent color: %s\n", s.AccentColor))
	b.WriteString(fmt.Sprintf("\n  Next invoice: %s\n", invoice.FormatNumber(m.tracker.InvoiceNumber())))
	b.WriteString("\n" + m.styles.Dim.Render("  e edit"))
	return m.styles.Pane.Render(b.String())
}

func (m Model) viewConfirmComplete() string {
	ids := m.selectedWeekIDs()
	n := len(ids)
	if n == 0 {
		n = len(m.tracker.AvailableWeeks())
	}
	msg := fmt.Sprintf("Complete the period and clear %d week(s)?\n\nThis increments the invoice number and removes the entries.\n\n(y/n)", n)
	return m.styles.Pane.Render(msg)
}
