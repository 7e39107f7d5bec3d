// Package main provides the entry point for the scout CLI.
package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/deps"
	"github.com/scouthq/scout/internal/discover"
	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/store"
)

// newDiscoverCmd creates the discover command.
func newDiscoverCmd() *cobra.Command {
	var (
		depthFlag  int
		silentFlag bool
	)
	cmd := &cobra.Command{
		Use:   "discover [path]",
		Short: "Scan project structure, tech stack, and dependencies",
		Long: `Scan a project tree and persist the discovery report.

The report holds the bounded-depth structure tree, detected tech-stack
markers, entry points, and a heuristic imported-by map built from a
capped sample of source files.

Examples:
  scout discover            # Scan the working directory
  scout discover ~/app      # Scan another project
  scout discover --depth 3  # Limit the structure tree depth
  scout discover --json     # Print the report as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, args, depthFlag, silentFlag)
		},
	}
	cmd.Flags().IntVar(&depthFlag, "depth", 0, "Maximum structure tree depth (default from config)")
	cmd.Flags().BoolVar(&silentFlag, "silent", false, "Suppress the human-readable summary")
	return cmd
}

func runDiscover(cmd *cobra.Command, args []string, depth int, silent bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	project, err := resolveProject(args)
	if err != nil {
		printer.Error(err)
		return err
	}

	settings := config.LoadSettings()
	if depth <= 0 {
		depth = settings.Scan.MaxDepth
	}

	report, err := discover.Scan(project.Path, discover.Options{
		MaxDepth: depth,
		Exclude:  settings.Scan.Exclude,
		Collapse: settings.Scan.Collapse,
	})
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("scanning project", err)
		printer.Error(sysErr)
		return sysErr
	}
	report.Deps.ImportedBy = deps.Scan(project.Path, settings.Scan.SampleCap, settings.Scan.Exclude)

	if err := project.Store.Save(store.DiscoveryReportFile, report); err != nil {
		sysErr := output.NewSystemErrorWithCause("saving discovery report", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(report)
	}

	if !silent {
		printer.Section("Discovery")
		printer.KeyValue("Project", project.Name)
		printer.KeyValue("Tech stack", strings.Join(report.TechStack, ", "))
		printer.KeyValue("Entry points", strings.Join(report.EntryPoints, ", "))
		printer.KeyValue("Sampled imports", strconv.Itoa(len(report.Deps.ImportedBy)))
		printer.KeyValue("Report", project.Store.Path(store.DiscoveryReportFile))
	}
	return nil
}
