package cli

import (
	"fmt"

	"github.com/jtomsett/clockbill/internal/models"
)

type SettingsCmd struct {
	ContractorName    *string  `help:"Your name as it appears on invoices."`
	ContractorAddress *string  `help:"Your address."`
	ContractorPhone   *string  `help:"Your phone number."`
	ContractorEmail   *string  `help:"Your email address."`
	UTRNumber         *string  `name:"utr" help:"Your UTR number."`
	ClientName        *string  `help:"Client name."`
	ClientAddress     *string  `help:"Client address."`
	ClientContact     *string  `help:"Client contact."`
	HourlyRate        *float64 `help:"Hourly rate in pounds."`
	CISRate           *float64 `name:"cis-rate" help:"CIS deduction percentage (0-100)."`
	PeriodType        *string  `help:"Billing period preference (weekly|bi-weekly)."`
	BankAccountName   *string  `help:"Bank account name."`
	SortCode          *string  `help:"Bank sort code."`
	AccountNumber     *string  `help:"Bank account number."`
	AccentColor       *string  `help:"Accent color code for the TUI."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	patch := models.SettingsPatch{
		ContractorName:    c.ContractorName,
		ContractorAddress: c.ContractorAddress,
		ContractorPhone:   c.ContractorPhone,
		ContractorEmail:   c.ContractorEmail,
		UTRNumber:         c.UTRNumber,
		ClientName:        c.ClientName,
		ClientAddress:     c.ClientAddress,
		ClientContact:     c.ClientContact,
		HourlyRate:        c.HourlyRate,
		CISRate:           c.CISRate,
		BankAccountName:   c.BankAccountName,
		SortCode:          c.SortCode,
		AccountNumber:     c.AccountNumber,
		AccentColor:       c.AccentColor,
	}
	if c.PeriodType != nil {
		switch models.PeriodType(*c.PeriodType) {
		case models.PeriodWeekly, models.PeriodBiWeekly:
			pt := models.PeriodType(*c.PeriodType)
			patch.PeriodType = &pt
		default:
			return fmt.Errorf("invalid period type: %s (use weekly or bi-weekly)", *c.PeriodType)
		}
	}

	if patch != (models.SettingsPatch{}) {
		if err := tr.UpdateSettings(patch); err != nil {
			return err
		}
	}

	s := tr.Settings()
	fmt.Println("Settings:")
	fmt.Printf("  contractor: %s | %s | %s | %s\n", s.ContractorName, s.ContractorAddress, s.ContractorPhone, s.ContractorEmail)
	fmt.Printf("  utr:        %s\n", s.UTRNumber)
	fmt.Printf("  client:     %s | %s | %s\n", s.ClientName, s.ClientAddress, s.ClientContact)
	fmt.Printf("  rate:       £%.2f/hour, CIS %.0f%%\n", s.HourlyRate, s.CISRate)
	fmt.Printf("  period:     %s\n", s.PeriodType)
	fmt.Printf("  bank:       %s | %s | %s\n", s.BankAccountName, s.SortCode, s.AccountNumber)
	return nil
}
