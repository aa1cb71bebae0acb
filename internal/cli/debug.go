package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	Path        *DebugPathCmd        `cmd:"" help:"Show store file path."`
	DumpEntries *DebugDumpEntriesCmd `cmd:"" help:"Dump entries as JSON."`
	DumpWeeks   *DebugDumpWeeksCmd   `cmd:"" help:"Dump week periods as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpEntriesCmd struct{}

func (cmd *DebugDumpEntriesCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(tr.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpWeeksCmd struct{}

func (cmd *DebugDumpWeeksCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(tr.Weeks(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weeks: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
