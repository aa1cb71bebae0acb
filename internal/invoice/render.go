package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/jtomsett/clockbill/internal/models"
	"github.com/jtomsett/clockbill/internal/period"
)

// RenderText formats an invoice as plain text ready to paste into an email.
// issueDate is rendered as dd/MM/yyyy alongside the invoice number.
func RenderText(inv Data, settings models.InvoiceSettings, issueDate time.Time) string {
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("%s", settings.ContractorName)
	line("%s", settings.ContractorAddress)
	line("Phone: %s", settings.ContractorPhone)
	email := settings.ContractorEmail
	if email == "" {
		email = "[Your Email]"
	}
	line("Email: %s", email)
	line("UTR Number: %s", settings.UTRNumber)
	line("")
	line("Date: %s", issueDate.Format("02/01/2006"))
	line("Invoice Number: %s", inv.InvoiceNumber)
	line("")
	line("To: %s", settings.ClientName)
	if settings.ClientAddress != "" {
		line("%s", settings.ClientAddress)
	}
	if settings.ClientContact != "" {
		line("%s", settings.ClientContact)
	}
	line("")
	line("Invoice Details")
	line("Description of Work | Date(s) | Amount (£)")
	line("")

	for _, e := range inv.Entries {
		line("Labour – %s at %s | %s | %.2f", e.Tasks, e.Location, displayDate(e.Date), e.Amount)
	}

	line("")
	line("Subtotal: £%.2f", inv.Subtotal)
	if settings.CISRate > 0 {
		line("Less: CIS deduction (%g%%) £%.2f", settings.CISRate, inv.CISDeduction)
	}
	line("Total Payable: £%.2f", inv.TotalPayable)
	line("")
	line("Bank Details for Payment")
	line("Account Name: %s", settings.BankAccountName)
	line("Sort Code: %s", settings.SortCode)
	line("Account Number: %s", settings.AccountNumber)
	line("")
	line("Please make payment to the above account within 7 days of invoice date.")
	line("")
	line("Thank you for your business!")

	return b.String()
}

func displayDate(isoDate string) string {
	t, err := time.Parse(period.DateFormat, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}
