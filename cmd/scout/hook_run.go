// Package main provides the entry point for the scout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/hook"
	"github.com/scouthq/scout/internal/logging"
	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/tracker"
)

// newHookCmd creates the hidden hook parent command. The agent host
// invokes these with a JSON payload on stdin; every path except the
// prevention gate is fail-open so a scout bug never breaks a session.
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal hook runner",
		Long:   `Internal commands invoked by the agent's lifecycle hooks.`,
		Hidden: true,
		// Shadows the root pre-run, so env files are loaded here too.
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			loadEnvFiles()
			logging.Setup(config.DebugLogFile())
		},
	}

	cmd.AddCommand(
		newHookSessionStartCmd(),
		newHookSessionEndCmd(),
		newHookPreBashCmd(),
		newHookPostBashCmd(),
	)
	return cmd
}

// hookProject resolves the project from the payload cwd, falling back
// to the process working directory.
func hookProject(input hook.Input) (projectContext, error) {
	if input.CWD != "" {
		return resolveProject([]string{input.CWD})
	}
	return resolveProject(nil)
}

func newHookSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session-start",
		Short: "SessionStart hook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := hook.ReadInput(cmd.InOrStdin())
			log := logging.Logger()
			log.Info("session-start", "cwd", input.CWD, "session", input.SessionID)

			project, err := hookProject(input)
			if err != nil {
				log.Error("session-start: resolve project", "error", err)
				return nil
			}

			result, err := startSession(project)
			if err != nil {
				log.Error("session-start: analyze", "error", err)
				return nil
			}

			// additionalContext is the only channel into the model here.
			if err := hook.WriteContext(cmd.OutOrStdout(), "SessionStart", result.contextText()); err != nil {
				log.Error("session-start: write context", "error", err)
			}
			return nil
		},
	}
}

func newHookSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session-end",
		Short: "SessionEnd hook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := hook.ReadInput(cmd.InOrStdin())
			log := logging.Logger()
			log.Info("session-end", "cwd", input.CWD, "session", input.SessionID)

			project, err := hookProject(input)
			if err != nil {
				log.Error("session-end: resolve project", "error", err)
				return nil
			}

			if _, err := endSession(project); err != nil {
				log.Error("session-end: close session", "error", err)
			}
			return nil
		},
	}
}

func newHookPreBashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pre-bash",
		Short: "PreToolUse hook for Bash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := hook.ReadInput(cmd.InOrStdin())
			command := input.Command()
			if command == "" {
				return nil
			}
			log := logging.Logger()
			log.Info("pre-bash", "command", command)

			// Prevention is the one fail-closed path: the host reads
			// exit 2 as a denial and shows stderr to the model.
			decision := tracker.CheckCommand(command, config.LoadSettings().Prevention.Rules())
			if decision.Blocked() {
				fmt.Fprintf(cmd.ErrOrStderr(), "BLOCKED: %s (pattern %q)\n", decision.Warning, decision.Pattern)
				return output.NewBlockedError(decision.Warning)
			}
			if decision.Matched {
				fmt.Fprintf(cmd.OutOrStdout(), "WARNING: %s (pattern %q)\n", decision.Warning, decision.Pattern)
			}

			printLearnedWarnings(cmd, command, input.CWD)
			return nil
		},
	}
}

// printLearnedWarnings writes advisory matches from the error database
// to stdout. Purely informational; never affects the exit code.
func printLearnedWarnings(cmd *cobra.Command, command, cwd string) {
	matches := globalTracker().FindSimilar(command, projectNameFrom(cwd))
	if len(matches) == 0 {
		return
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Past failures similar to %q:\n", command)
	for _, match := range matches {
		record := match.Record
		message := record.ErrorMessage
		if len(message) > 100 {
			message = message[:100] + "..."
		}
		fmt.Fprintf(w, "- %s (similarity %d%%, %d occurrence(s)): %s\n",
			record.Command, match.Similarity, record.Occurrences, message)
		if record.Status == tracker.StatusSolved && record.Solution != "" {
			fmt.Fprintf(w, "  solved by: %s\n", record.Solution)
		}
		if record.Status == tracker.StatusRecurring {
			fmt.Fprintln(w, "  this error keeps recurring; consider a different approach")
		}
	}
}

func newHookPostBashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post-bash",
		Short: "PostToolUse hook for Bash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := hook.ReadInput(cmd.InOrStdin())
			command := input.Command()
			if command == "" {
				return nil
			}
			log := logging.Logger()

			cwd := input.CWD
			if cwd == "" {
				cwd, _ = os.Getwd()
			}

			record, outcome, err := globalTracker().Record(command, input.ExitCode(), input.Output(), projectNameFrom(cwd))
			if err != nil {
				log.Error("post-bash: record", "error", err)
				return nil
			}
			if record != nil {
				log.Info("post-bash", "command", command, "outcome", outcomeName(outcome), "status", record.Status)
			}
			return nil
		},
	}
}
