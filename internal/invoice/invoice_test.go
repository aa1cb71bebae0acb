package invoice

import (
	"strings"
	"testing"
	"time"

	"github.com/jtomsett/clockbill/internal/models"
)

func entry(id, date, weekID string, hours, amount float64) models.TimeEntry {
	return models.TimeEntry{
		ID:     id,
		Date:   date,
		WeekID: weekID,
		Hours:  hours,
		Amount: amount,
	}
}

func TestGenerate_Arithmetic(t *testing.T) {
	entries := []models.TimeEntry{
		entry("a", "2024-01-15", "2024-01-15", 1.67, 33.33),
		entry("b", "2024-01-16", "2024-01-15", 3.33, 66.67),
	}

	inv := Generate(entries, []string{"2024-01-15"}, 20, 1, "2024-01-20")

	if inv.Subtotal != 100.00 {
		t.Errorf("subtotal = %v, want 100.00", inv.Subtotal)
	}
	if inv.CISDeduction != 20.00 {
		t.Errorf("deduction = %v, want 20.00", inv.CISDeduction)
	}
	if inv.TotalPayable != 80.00 {
		t.Errorf("payable = %v, want 80.00", inv.TotalPayable)
	}
	if inv.TotalHours != 5.0 {
		t.Errorf("total hours = %v, want 5.0", inv.TotalHours)
	}
	if inv.StartDate != "2024-01-15" || inv.EndDate != "2024-01-16" {
		t.Errorf("period = %s..%s, want 2024-01-15..2024-01-16", inv.StartDate, inv.EndDate)
	}
}

func TestGenerate_PeriodLabel(t *testing.T) {
	entries := []models.TimeEntry{
		entry("a", "2024-01-15", "2024-01-15", 1, 20),
		entry("b", "2024-01-22", "2024-01-22", 1, 20),
	}

	single := Generate(entries, []string{"2024-01-15"}, 0, 1, "2024-01-30")
	if single.PeriodLabel != "Weekly" {
		t.Errorf("single week label = %q, want Weekly", single.PeriodLabel)
	}

	double := Generate(entries, []string{"2024-01-15", "2024-01-22"}, 0, 1, "2024-01-30")
	if double.PeriodLabel != "Bi-weekly (2 weeks)" {
		t.Errorf("two week label = %q, want Bi-weekly (2 weeks)", double.PeriodLabel)
	}
}

func TestGenerate_EmptySelectionDefaultsToToday(t *testing.T) {
	inv := Generate(nil, []string{"2024-01-15"}, 20, 4, "2024-02-01")

	if len(inv.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(inv.Entries))
	}
	if inv.StartDate != "2024-02-01" || inv.EndDate != "2024-02-01" {
		t.Errorf("period = %s..%s, want today on both ends", inv.StartDate, inv.EndDate)
	}
	if inv.Subtotal != 0 || inv.CISDeduction != 0 || inv.TotalPayable != 0 {
		t.Errorf("expected zero totals, got %v/%v/%v", inv.Subtotal, inv.CISDeduction, inv.TotalPayable)
	}
}

func TestGenerate_StableSortKeepsInsertionOrderOnTies(t *testing.T) {
	entries := []models.TimeEntry{
		entry("first", "2024-01-16", "2024-01-15", 1, 20),
		entry("second", "2024-01-16", "2024-01-15", 1, 20),
		entry("earlier", "2024-01-15", "2024-01-15", 1, 20),
	}

	inv := Generate(entries, []string{"2024-01-15"}, 0, 1, "2024-01-20")

	got := []string{inv.Entries[0].ID, inv.Entries[1].ID, inv.Entries[2].ID}
	want := []string{"earlier", "first", "second"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}
}

func TestGenerate_MergedWeekSelectableByOwnID(t *testing.T) {
	entries := []models.TimeEntry{
		entry("a", "2024-01-15", "2024-01-15", 1, 20),
		entry("b", "2024-01-22", "2024-01-22", 1, 20),
	}

	// Selecting only the merged-away week's id still pulls its entries.
	inv := Generate(entries, []string{"2024-01-22"}, 0, 1, "2024-01-30")
	if len(inv.Entries) != 1 || inv.Entries[0].ID != "b" {
		t.Errorf("expected only entry b, got %+v", inv.Entries)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "001"},
		{42, "042"},
		{999, "999"},
		{1000, "1000"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.n); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	settings := models.DefaultSettings()
	settings.ContractorName = "Jane Mason"
	settings.ContractorAddress = "1 High Street"
	settings.UTRNumber = "1234567890"
	settings.ClientName = "Acme Property Ltd"
	settings.BankAccountName = "J Mason"
	settings.SortCode = "00-00-00"
	settings.AccountNumber = "12345678"

	entries := []models.TimeEntry{
		{
			ID: "a", Date: "2024-01-17", WeekID: "2024-01-15",
			Location: "Site A", Tasks: "Painting", Hours: 8, Amount: 160,
		},
	}
	inv := Generate(entries, []string{"2024-01-15"}, 20, 7, "2024-01-20")

	text := RenderText(inv, settings, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"Jane Mason",
		"Invoice Number: 007",
		"Date: 21/01/2024",
		"To: Acme Property Ltd",
		"Labour – Painting at Site A | 17/01/2024 | 160.00",
		"Subtotal: £160.00",
		"Less: CIS deduction (20%) £32.00",
		"Total Payable: £128.00",
		"Sort Code: 00-00-00",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered invoice missing %q\n%s", want, text)
		}
	}
}

func TestRenderText_NoCISLineWhenRateZero(t *testing.T) {
	settings := models.DefaultSettings()
	settings.CISRate = 0

	inv := Generate(nil, []string{"2024-01-15"}, 0, 1, "2024-01-20")
	text := RenderText(inv, settings, time.Now())

	if strings.Contains(text, "CIS deduction") {
		t.Error("CIS line should be omitted when the rate is zero")
	}
}
