package cli

import "fmt"

type WeekListCmd struct {
	All bool `help:"Include weeks merged into another week."`
}

func (c *WeekListCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	weeks := tr.Weeks()
	if !c.All {
		weeks = tr.AvailableWeeks()
	}
	if len(weeks) == 0 {
		fmt.Println("No weeks with entries")
		return nil
	}

	fmt.Println("Weeks:")
	for _, w := range weeks {
		status := ""
		if w.IsMerged && w.MergedWith != nil {
			status = fmt.Sprintf("  (merged into %s)", *w.MergedWith)
		}
		fmt.Printf("  %s – %s  %d entries  %5.2fh  £%8.2f%s\n",
			w.StartDate, w.EndDate, len(w.Entries), w.TotalHours(), w.TotalAmount(), status)
	}
	return nil
}

type WeekMergeCmd struct {
	WeekIDs []string `arg:"" help:"Week ids to merge; the first becomes the primary."`
}

func (c *WeekMergeCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	if len(c.WeekIDs) < 2 {
		fmt.Println("Need at least two week ids to merge.")
		return nil
	}
	if err := tr.MergeWeeks(c.WeekIDs); err != nil {
		return err
	}

	fmt.Printf("Merged %d weeks into %s for bi-weekly invoicing\n", len(c.WeekIDs), c.WeekIDs[0])
	return nil
}

type WeekUnmergeCmd struct {
	WeekID string `arg:"" help:"Primary week id to release merged weeks from."`
}

func (c *WeekUnmergeCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	if err := tr.UnmergeWeeks(c.WeekID); err != nil {
		return err
	}
	fmt.Printf("Unmerged weeks pointing at %s\n", c.WeekID)
	return nil
}
