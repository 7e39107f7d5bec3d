// Package main provides the entry point for the scout CLI.
package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/tracker"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check \"<command>\" [path]",
		Short: "Check a command against past failures",
		Long: `Check a shell command against the error database before running it.

Matching is advisory: the command prints any similar past failures with
their suggestions and always exits 0. Use 'scout prevent' for the
blocking dangerous-command gate.

Examples:
  scout check "npm install left-pad"
  scout check "npm run build" ~/app
  scout check "npm test" --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCheck,
	}
}

// projectNameFrom resolves the project name used for the same-project
// similarity boost: the given path's basename, or the working
// directory's when no path was given.
func projectNameFrom(path string) string {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.Base(abs)
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Base(wd)
	}
	return ""
}

func runCheck(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	command := args[0]
	if command == "" {
		err := output.NewUserError("command to check must not be empty")
		printer.Error(err)
		return err
	}

	pathArg := ""
	if len(args) > 1 {
		pathArg = args[1]
	}
	project := projectNameFrom(pathArg)
	matches := globalTracker().FindSimilar(command, project)
	decision := tracker.CheckCommand(command, config.LoadSettings().Prevention.Rules())

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"command":    command,
			"project":    project,
			"matches":    matches,
			"prevention": decision,
		})
	}

	if decision.Matched {
		printer.Warn("%s pattern %q: %s", decision.Severity, decision.Pattern, decision.Warning)
	}

	if len(matches) == 0 {
		printer.Println("No similar past failures.")
		return nil
	}

	printer.Section("Similar past failures")
	for _, match := range matches {
		record := match.Record
		printer.KeyValue("Command", record.Command)
		printer.KeyValue("Error", record.ErrorMessage)
		printer.KeyValue("Status", record.Status)
		printer.KeyValue("Occurrences", strconv.Itoa(record.Occurrences))
		printer.KeyValue("Similarity", strconv.Itoa(match.Similarity))
		if record.Solution != "" {
			printer.KeyValue("Solved by", record.Solution)
		} else if record.Suggestion != "" {
			printer.KeyValue("Suggestion", record.Suggestion)
		}
		printer.Println()
	}
	return nil
}
