// Package main provides the entry point for the scout CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/tracker"
)

// newPreventCmd creates the prevent command.
func newPreventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prevent \"<command>\"",
		Short: "Gate a command against the dangerous-command table",
		Long: `Check a shell command against the dangerous-command table.

Exit codes:
  0  command is allowed (possibly with a printed warning)
  2  command matched a BLOCKED pattern and must not run

The agent host treats exit 2 from a pre-tool hook as a denial, so this
command doubles as the hook's blocking gate.

Examples:
  scout prevent "rm -rf /"          # exits 2
  scout prevent "git push --force"  # warns, exits 0`,
		Args: cobra.ExactArgs(1),
		RunE: runPrevent,
	}
}

func runPrevent(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	command := args[0]
	decision := tracker.CheckCommand(command, config.LoadSettings().Prevention.Rules())

	if decision.Blocked() {
		err := output.NewBlockedError(fmt.Sprintf("%s: %q matches %q", decision.Warning, command, decision.Pattern))
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(decision)
	}

	if decision.Matched {
		printer.Warn("%s: %q matches %q", decision.Warning, command, decision.Pattern)
		return nil
	}

	printer.Println("Allowed.")
	return nil
}
