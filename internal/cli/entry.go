package cli

import (
	"fmt"
	"time"
)

type EntryAddCmd struct {
	Date     string `arg:"" help:"Entry date (YYYY-MM-DD or 'today')." default:"today"`
	Location string `short:"l" help:"Where the work happened." required:""`
	Tasks    string `short:"t" help:"What was done." required:""`
	Start    string `short:"s" help:"Start time (HH:MM)." default:"08:00"`
	End      string `short:"e" help:"End time (HH:MM)." default:"16:00"`
}

func (c *EntryAddCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	date := c.Date
	if date == "today" {
		date = time.Now().Format("2006-01-02")
	}

	entry, err := tr.AddEntry(date, c.Location, c.Tasks, c.Start, c.End)
	if err != nil {
		return err
	}

	fmt.Printf("Added entry: %s %s-%s, %.2f hours, £%.2f (week %s)\n",
		entry.Date, entry.StartTime, entry.EndTime, entry.Hours, entry.Amount, entry.WeekID)
	return nil
}

type EntryListCmd struct {
	Week string `short:"w" help:"Only show entries for this week id (YYYY-MM-DD Monday)."`
}

func (c *EntryListCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	entries := tr.Entries()
	if len(entries) == 0 {
		fmt.Println("No entries recorded")
		return nil
	}

	fmt.Println("Entries:")
	for _, e := range entries {
		if c.Week != "" && e.WeekID != c.Week {
			continue
		}
		fmt.Printf("  %s  %s  %s-%s  %5.2fh  £%8.2f  %s – %s\n",
			e.ID[:8], e.Date, e.StartTime, e.EndTime, e.Hours, e.Amount, e.Location, e.Tasks)
	}
	return nil
}

type EntryDeleteCmd struct {
	ID string `arg:"" help:"Entry id (or unique prefix)."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	// Accept a unique prefix so the short ids printed by 'entry list' work.
	var match string
	for _, e := range tr.Entries() {
		if e.ID == c.ID || (len(c.ID) >= 8 && len(e.ID) >= len(c.ID) && e.ID[:len(c.ID)] == c.ID) {
			if match != "" && match != e.ID {
				return fmt.Errorf("id prefix %q is ambiguous", c.ID)
			}
			match = e.ID
		}
	}
	if match == "" {
		fmt.Printf("No entry found for %q\n", c.ID)
		return nil
	}

	if err := tr.DeleteEntry(match); err != nil {
		return err
	}
	fmt.Printf("Deleted entry %s\n", match[:8])
	return nil
}
