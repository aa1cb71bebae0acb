package models

type PeriodType string

const (
	PeriodWeekly   PeriodType = "weekly"
	PeriodBiWeekly PeriodType = "bi-weekly"
)

// InvoiceSettings is configuration, not state: the engine reads HourlyRate
// at entry creation and CISRate at invoice generation; everything else
// passes through to presentation untouched.
type InvoiceSettings struct {
	ContractorName    string     `json:"contractor_name"`
	ContractorAddress string     `json:"contractor_address"`
	ContractorPhone   string     `json:"contractor_phone"`
	ContractorEmail   string     `json:"contractor_email"`
	UTRNumber         string     `json:"utr_number"`
	ClientName        string     `json:"client_name"`
	ClientAddress     string     `json:"client_address"`
	ClientContact     string     `json:"client_contact"`
	HourlyRate        float64    `json:"hourly_rate"`
	CISRate           float64    `json:"cis_rate"`
	PeriodType        PeriodType `json:"period_type"`
	BankAccountName   string     `json:"bank_account_name"`
	SortCode          string     `json:"sort_code"`
	AccountNumber     string     `json:"account_number"`
	AccentColor       string     `json:"accent_color"` // lipgloss ANSI color code
}

// SettingsPatch is a shallow-merge update: nil fields leave the current
// value unchanged.
type SettingsPatch struct {
	ContractorName    *string
	ContractorAddress *string
	ContractorPhone   *string
	ContractorEmail   *string
	UTRNumber         *string
	ClientName        *string
	ClientAddress     *string
	ClientContact     *string
	HourlyRate        *float64
	CISRate           *float64
	PeriodType        *PeriodType
	BankAccountName   *string
	SortCode          *string
	AccountNumber     *string
	AccentColor       *string
}

// DefaultSettings returns the first-run configuration.
func DefaultSettings() InvoiceSettings {
	return InvoiceSettings{
		ContractorName:  "Your Name",
		ClientName:      "Your Client Ltd",
		HourlyRate:      20,
		CISRate:         20,
		PeriodType:      PeriodWeekly,
		BankAccountName: "Your Name",
		AccentColor:     "205",
	}
}

// Apply merges the non-nil fields of the patch into s.
func (s *InvoiceSettings) Apply(p SettingsPatch) {
	if p.ContractorName != nil {
		s.ContractorName = *p.ContractorName
	}
	if p.ContractorAddress != nil {
		s.ContractorAddress = *p.ContractorAddress
	}
	if p.ContractorPhone != nil {
		s.ContractorPhone = *p.ContractorPhone
	}
	if p.ContractorEmail != nil {
		s.ContractorEmail = *p.ContractorEmail
	}
	if p.UTRNumber != nil {
		s.UTRNumber = *p.UTRNumber
	}
	if p.ClientName != nil {
		s.ClientName = *p.ClientName
	}
	if p.ClientAddress != nil {
		s.ClientAddress = *p.ClientAddress
	}
	if p.ClientContact != nil {
		s.ClientContact = *p.ClientContact
	}
	if p.HourlyRate != nil {
		s.HourlyRate = *p.HourlyRate
	}
	if p.CISRate != nil {
		s.CISRate = *p.CISRate
	}
	if p.PeriodType != nil {
		s.PeriodType = *p.PeriodType
	}
	if p.BankAccountName != nil {
		s.BankAccountName = *p.BankAccountName
	}
	if p.SortCode != nil {
		s.SortCode = *p.SortCode
	}
	if p.AccountNumber != nil {
		s.AccountNumber = *p.AccountNumber
	}
	if p.AccentColor != nil {
		s.AccentColor = *p.AccentColor
	}
}
