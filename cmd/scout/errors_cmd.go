// Package main provides the entry point for the scout CLI.
package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/output"
)

// newErrorsCmd creates the errors parent command.
func newErrorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Inspect or reset the error database",
	}
	cmd.AddCommand(newErrorsListCmd(), newErrorsClearCmd())
	return cmd
}

func newErrorsListCmd() *cobra.Command {
	var limitFlag int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently tracked command failures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runErrorsList(cmd, limitFlag)
		},
	}
	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum records to show")
	return cmd
}

func newErrorsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the error database",
		RunE:  runErrorsClear,
	}
}

func runErrorsList(cmd *cobra.Command, limit int) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	tr := globalTracker()
	db := tr.Load()
	records := tr.Recent(limit)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"total":  len(db.Errors),
			"errors": records,
		})
	}

	if len(records) == 0 {
		printer.Println("No tracked errors.")
		return nil
	}

	printer.Section("Tracked errors")
	for _, record := range records {
		printer.KeyValue("Command", record.Command)
		printer.KeyValue("Type", record.ErrorType)
		printer.KeyValue("Status", record.Status)
		printer.KeyValue("Occurrences", strconv.Itoa(record.Occurrences))
		printer.KeyValue("Last seen", record.LastSeen.Format(time.RFC3339))
		if record.Solution != "" {
			printer.KeyValue("Solved by", record.Solution)
		}
		printer.Println()
	}
	printer.Print("Showing %d of %d records.\n", len(records), len(db.Errors))
	return nil
}

func runErrorsClear(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	if err := globalTracker().Clear(); err != nil {
		sysErr := output.NewSystemErrorWithCause("clearing error database", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"message": "error database cleared"})
	}
	printer.Println("Error database cleared.")
	return nil
}
