package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/jtomsett/clockbill/internal/cli"
	"github.com/jtomsett/clockbill/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/clockbill/clockbill.db"`

	Init   cli.InitCmd   `cmd:"" help:"Initialize clockbill storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Start  cli.StartCmd  `cmd:"" help:"Start the work timer."`
	Stop   cli.StopCmd   `cmd:"" help:"Stop the timer and record the session."`
	Cancel cli.CancelCmd `cmd:"" help:"Discard the running session."`
	Status cli.StatusCmd `cmd:"" help:"Show timer and ledger status."`
	Entry  struct {
		Add    cli.EntryAddCmd    `cmd:"" help:"Record a session by hand."`
		List   cli.EntryListCmd   `cmd:"" help:"List recorded entries."`
		Delete cli.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	} `cmd:"" help:"Manage time entries."`
	Week struct {
		List    cli.WeekListCmd    `cmd:"" help:"List billing weeks."`
		Merge   cli.WeekMergeCmd   `cmd:"" help:"Merge weeks into a bi-weekly billing group."`
		Unmerge cli.WeekUnmergeCmd `cmd:"" help:"Release weeks merged into a primary week."`
	} `cmd:"" help:"Manage billing weeks."`
	Invoice struct {
		Show     cli.InvoiceShowCmd     `cmd:"" help:"Print the invoice for the selected weeks."`
		Copy     cli.InvoiceCopyCmd     `cmd:"" help:"Copy the invoice text to the clipboard."`
		Complete cli.InvoiceCompleteCmd `cmd:"" help:"Close out the period: advance the counter, purge entries."`
		Number   cli.InvoiceNumberCmd   `cmd:"" help:"Show or set the invoice counter."`
	} `cmd:"" help:"Generate and finalize invoices."`
	Settings cli.SettingsCmd `cmd:"" help:"View or update invoice settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Debug    cli.DebugCmd    `cmd:"" help:"Inspection helpers."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("clockbill"),
		kong.Description("Contractor time tracking and invoice generation"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
