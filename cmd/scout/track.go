// Package main provides the entry point for the scout CLI.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/tracker"
)

// newTrackCmd creates the track command.
func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track \"<command>\" <exit-code> \"<output>\" [path]",
		Short: "Record a command result in the error database",
		Long: `Record the outcome of a shell command.

A non-zero exit code creates or bumps an error record; the third
failure of the same pattern marks it recurring. A zero exit code marks
matching past failures as solved.

Examples:
  scout track "npm install left-pad" 1 "npm ERR! 404 Not Found"
  scout track "npm install left-pad" 0 ""`,
		Args: cobra.RangeArgs(3, 4),
		RunE: runTrack,
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	command := args[0]
	exitCode, err := strconv.Atoi(args[1])
	if err != nil {
		userErr := output.NewUserError(fmt.Sprintf("exit code %q is not a number", args[1]))
		printer.Error(userErr)
		return userErr
	}
	commandOutput := args[2]
	pathArg := ""
	if len(args) > 3 {
		pathArg = args[3]
	}
	project := projectNameFrom(pathArg)

	record, outcome, err := globalTracker().Record(command, exitCode, commandOutput, project)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("updating error database", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		payload := map[string]any{"outcome": outcomeName(outcome)}
		if record != nil {
			payload["record"] = record
		}
		return printer.WriteJSON(payload)
	}

	switch outcome {
	case tracker.OutcomeSkipped:
		printer.Println("Nothing to record.")
	case tracker.OutcomeSolved:
		printer.Println("Marked matching failures as solved.")
	case tracker.OutcomeNew:
		printer.Print("Recorded new %s error: %s\n", record.ErrorType, record.ErrorMessage)
		if record.Suggestion != "" {
			printer.KeyValue("Suggestion", record.Suggestion)
		}
	case tracker.OutcomeRepeat:
		printer.Print("Repeat failure (%d occurrences): %s\n", record.Occurrences, record.Pattern)
	case tracker.OutcomeRecurring:
		printer.Warn("Recurring failure (%d occurrences): %s", record.Occurrences, record.Pattern)
		if record.Suggestion != "" {
			printer.KeyValue("Suggestion", record.Suggestion)
		}
	}
	return nil
}

// outcomeName maps a tracker outcome to its wire name.
func outcomeName(outcome tracker.Outcome) string {
	switch outcome {
	case tracker.OutcomeNew:
		return "new"
	case tracker.OutcomeRepeat:
		return "repeat"
	case tracker.OutcomeRecurring:
		return "recurring"
	case tracker.OutcomeSolved:
		return "solved"
	default:
		return "skipped"
	}
}
