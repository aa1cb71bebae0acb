package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jtomsett/clockbill/internal/tracker"
)

type StartCmd struct{}

func (c *StartCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	if tr.Timer().Running {
		fmt.Println("Timer is already running.")
		return nil
	}
	if err := tr.StartTimer(); err != nil {
		return err
	}

	fmt.Printf("Timer started at %s\n", tr.Timer().StartTime.Format("15:04"))
	return nil
}

type StopCmd struct {
	Location string `short:"l" help:"Where the work happened."`
	Tasks    string `short:"t" help:"What was done."`
}

func (c *StopCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	if !tr.Timer().Running {
		fmt.Println("No timer running.")
		return nil
	}

	// Stopping and accepting the entry are separate steps: collect the
	// session details interactively when the flags are missing.
	if strings.TrimSpace(c.Location) == "" || strings.TrimSpace(c.Tasks) == "" {
		if err := c.promptDetails(); err != nil {
			return err
		}
	}

	entry, err := tr.StopTimer(c.Location, c.Tasks)
	if errors.Is(err, tracker.ErrMissingDetails) {
		return fmt.Errorf("location and tasks are required; the timer is still running")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Session saved: %.2f hours, £%.2f (%s)\n", entry.Hours, entry.Amount, entry.Date)
	return nil
}

func (c *StopCmd) promptDetails() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Location").
				Value(&c.Location).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("location cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Title("Tasks").
				Value(&c.Tasks).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("tasks cannot be empty")
					}
					return nil
				}),
		),
	).Run()
}

type CancelCmd struct{}

func (c *CancelCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	wasRunning := tr.Timer().Running
	if err := tr.CancelTimer(); err != nil {
		return err
	}

	if wasRunning {
		fmt.Println("Session cancelled.")
	} else {
		fmt.Println("No timer running.")
	}
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	timer := tr.Timer()
	if !timer.Running {
		fmt.Println("Timer: idle")
	} else {
		fmt.Printf("Timer: running since %s (%s elapsed)\n",
			timer.StartTime.Format("15:04"), formatElapsed(tr.Elapsed()))
	}

	fmt.Printf("Entries: %d\n", len(tr.Entries()))
	fmt.Printf("Invoice #: %03d\n", tr.InvoiceNumber())
	return nil
}
