// Package main provides the entry point for the scout CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/setup"
)

// newHooksCmd creates the hooks parent command.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Install or remove agent hook entries",
		Long: `Manage scout's entries in the agent's settings.json.

Installed events:
  SessionStart  -> scout hook session-start
  SessionEnd    -> scout hook session-end
  PreToolUse    -> scout hook pre-bash  (Bash only)
  PostToolUse   -> scout hook post-bash (Bash only)

Foreign hook entries and unrelated settings are never touched.`,
	}
	cmd.PersistentFlags().Bool("project", false, "Use ./.claude/settings.json instead of ~/.claude/settings.json")
	cmd.AddCommand(newHooksInstallCmd(), newHooksUninstallCmd(), newHooksListCmd())
	return cmd
}

func hooksSettingsPath(cmd *cobra.Command) (string, error) {
	projectScoped, _ := cmd.Flags().GetBool("project")
	path, err := setup.SettingsPath(projectScoped)
	if err != nil {
		return "", output.NewSystemErrorWithCause("resolving settings path", err)
	}
	return path, nil
}

func newHooksInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install scout hook entries (idempotent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

			path, err := hooksSettingsPath(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			result, err := setup.Install(path, setup.Executable())
			if err != nil {
				sysErr := output.NewSystemErrorWithCause("installing hooks", err)
				printer.Error(sysErr)
				return sysErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}

			printer.Section("Hooks installed")
			printer.KeyValue("Settings", result.Path)
			for _, event := range result.Installed {
				printer.KeyValue(event, "installed")
			}
			for _, event := range result.Updated {
				printer.KeyValue(event, "updated")
			}
			for _, event := range result.Unchanged {
				printer.KeyValue(event, "already installed")
			}
			return nil
		},
	}
}

func newHooksUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove scout hook entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

			path, err := hooksSettingsPath(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			result, err := setup.Uninstall(path)
			if err != nil {
				sysErr := output.NewSystemErrorWithCause("uninstalling hooks", err)
				printer.Error(sysErr)
				return sysErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}

			if len(result.Removed) == 0 {
				printer.Println("No scout hooks were installed.")
				return nil
			}
			printer.Section("Hooks removed")
			printer.KeyValue("Settings", result.Path)
			for _, event := range result.Removed {
				printer.KeyValue(event, "removed")
			}
			return nil
		},
	}
}

func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show scout hook installation state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

			path, err := hooksSettingsPath(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			statuses, err := setup.Status(path)
			if err != nil {
				sysErr := output.NewSystemErrorWithCause("reading settings", err)
				printer.Error(sysErr)
				return sysErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"path": path, "hooks": statuses})
			}

			printer.Section("Hook status")
			printer.KeyValue("Settings", path)
			for _, status := range statuses {
				state := "not installed"
				if status.Installed {
					state = status.Command
				}
				printer.KeyValue(status.Event, state)
			}
			return nil
		},
	}
}
