// Package main provides the entry point for the scout CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/envfile"
	"github.com/scouthq/scout/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor reports whether human output should carry lipgloss styling.
func useColor(cmd *cobra.Command) bool {
	return output.IsTTY(cmd.OutOrStdout())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the scout CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scout",
		Short: "Project discovery and error tracking for agent sessions",
		Long: `Scout - project discovery and error tracking for AI coding agent sessions.

Scout runs from the agent's lifecycle hooks and keeps flat-JSON state per project:
  - Detects the project type, framework, and platform at session start
  - Scans structure, tech-stack markers, entry points, and imports
  - Tracks failed shell commands and flags recurring failures
  - Warns before commands that failed recently and blocks destructive ones

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'scout --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local     (per-project override, gitignored)
//  2. $CWD/.env           (per-project)
//  3. ~/.config/scout/env (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "session", Title: "Session Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "analysis", Title: "Analysis Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "errors", Title: "Error Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newSessionCmd(), "session")
	addGroupedCommand(cmd, newStatusCmd(), "session")

	addGroupedCommand(cmd, newDiscoverCmd(), "analysis")

	addGroupedCommand(cmd, newCheckCmd(), "errors")
	addGroupedCommand(cmd, newPreventCmd(), "errors")
	addGroupedCommand(cmd, newTrackCmd(), "errors")
	addGroupedCommand(cmd, newErrorsCmd(), "errors")

	addGroupedCommand(cmd, newHooksCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")

	// Hidden internal commands
	cmd.AddCommand(newHookCmd())
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
