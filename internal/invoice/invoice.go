// Package invoice derives invoice totals and metadata from a selection of
// billing weeks. Generation is pure: it never mutates stored state.
package invoice

import (
	"fmt"
	"sort"

	"github.com/jtomsett/clockbill/internal/models"
	"github.com/jtomsett/clockbill/internal/period"
)

// Data is a computed invoice view. It is derived on demand and never
// persisted independently.
type Data struct {
	InvoiceNumber string             `json:"invoice_number"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Entries       []models.TimeEntry `json:"entries"`
	Subtotal      float64            `json:"subtotal"`
	CISDeduction  float64            `json:"cis_deduction"`
	TotalPayable  float64            `json:"total_payable"`
	TotalHours    float64            `json:"total_hours"`
	PeriodLabel   string             `json:"period_label"`
}

// Generate builds an invoice from the entries belonging to the selected
// weeks. Merged-away weeks are still selectable by their own id; merging
// only affects how the week list is presented, not entry filtering.
// today supplies the fallback period dates when no entries match.
func Generate(entries []models.TimeEntry, selectedWeekIDs []string, cisRate float64, invoiceNumber int, today string) Data {
	selected := make(map[string]bool, len(selectedWeekIDs))
	for _, id := range selectedWeekIDs {
		selected[id] = true
	}

	var included []models.TimeEntry
	for _, e := range entries {
		if selected[e.WeekID] {
			included = append(included, e)
		}
	}

	// Stable sort: entries on the same date keep their insertion order.
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].Date < included[j].Date
	})

	startDate, endDate := today, today
	if len(included) > 0 {
		startDate = included[0].Date
		endDate = included[len(included)-1].Date
	}

	var subtotal, totalHours float64
	for _, e := range included {
		subtotal += e.Amount
		totalHours += e.Hours
	}

	deduction := period.Round2(subtotal * cisRate / 100)
	payable := period.Round2(subtotal - deduction)

	label := "Weekly"
	if len(selectedWeekIDs) != 1 {
		label = fmt.Sprintf("Bi-weekly (%d weeks)", len(selectedWeekIDs))
	}

	return Data{
		InvoiceNumber: FormatNumber(invoiceNumber),
		StartDate:     startDate,
		EndDate:       endDate,
		Entries:       included,
		Subtotal:      subtotal,
		CISDeduction:  deduction,
		TotalPayable:  payable,
		TotalHours:    totalHours,
		PeriodLabel:   label,
	}
}

// FormatNumber renders an invoice counter zero-padded to at least 3 digits.
// Values of 1000 and above simply render wider.
func FormatNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}
