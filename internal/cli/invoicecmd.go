package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"

	"github.com/jtomsett/clockbill/internal/invoice"
	"github.com/jtomsett/clockbill/internal/tracker"
)

// selectedWeeks defaults to every available week when none are named, so
// 'clockbill invoice show' with a single open week just works.
func selectedWeeks(tr *tracker.Tracker, weekIDs []string) []string {
	if len(weekIDs) > 0 {
		return weekIDs
	}
	var ids []string
	for _, w := range tr.AvailableWeeks() {
		ids = append(ids, w.ID)
	}
	return ids
}

type InvoiceShowCmd struct {
	Weeks []string `arg:"" optional:"" help:"Week ids to invoice (default: all available weeks)."`
}

func (c *InvoiceShowCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	ids := selectedWeeks(tr, c.Weeks)
	inv := tr.GenerateInvoice(ids)
	fmt.Print(invoice.RenderText(inv, tr.Settings(), time.Now()))
	fmt.Printf("\n-- %s | %.2f hours | period %s to %s --\n",
		inv.PeriodLabel, inv.TotalHours, inv.StartDate, inv.EndDate)
	return nil
}

type InvoiceCopyCmd struct {
	Weeks []string `arg:"" optional:"" help:"Week ids to invoice (default: all available weeks)."`
}

func (c *InvoiceCopyCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	ids := selectedWeeks(tr, c.Weeks)
	inv := tr.GenerateInvoice(ids)
	text := invoice.RenderText(inv, tr.Settings(), time.Now())

	// Clipboard failure is reported but never touches stored state.
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy invoice to clipboard: %w", err)
	}

	fmt.Printf("Invoice %s copied to clipboard (£%.2f payable)\n", inv.InvoiceNumber, inv.TotalPayable)
	return nil
}

type InvoiceCompleteCmd struct {
	Weeks []string `arg:"" optional:"" help:"Week ids to close out (default: all available weeks)."`
	Yes   bool     `short:"y" help:"Skip the confirmation prompt."`
}

func (c *InvoiceCompleteCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	ids := selectedWeeks(tr, c.Weeks)
	if len(ids) == 0 {
		fmt.Println("Nothing to close out.")
		return nil
	}

	inv := tr.GenerateInvoice(ids)
	if !c.Yes {
		fmt.Printf("Closing out %s: invoice %s, £%.2f payable, %d entries.\n",
			inv.PeriodLabel, inv.InvoiceNumber, inv.TotalPayable, len(inv.Entries))
		fmt.Print("This removes the entries and advances the invoice number. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := tr.CompletePeriod(ids); err != nil {
		return err
	}
	fmt.Printf("Invoice %s completed. Next invoice #: %03d\n", inv.InvoiceNumber, tr.InvoiceNumber())
	return nil
}

type InvoiceNumberCmd struct {
	Set int `help:"Set the invoice counter directly (must be >= 1)."`
}

func (c *InvoiceNumberCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	if c.Set != 0 {
		if c.Set < 1 {
			fmt.Println("Invoice number must be at least 1; keeping the current value.")
		} else if err := tr.SetInvoiceNumber(c.Set); err != nil {
			return err
		}
	}

	fmt.Printf("Invoice #: %s\n", invoice.FormatNumber(tr.InvoiceNumber()))
	return nil
}
