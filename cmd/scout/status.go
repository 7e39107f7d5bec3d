// Package main provides the entry point for the scout CLI.
package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/store"
	"github.com/scouthq/scout/internal/tracker"
)

// statusResult holds the data for status output.
type statusResult struct {
	DataDir        string                `json:"data_dir"`
	Current        *store.CurrentProject `json:"current,omitempty"`
	Session        *store.SessionStats   `json:"session,omitempty"`
	ErrorCount     int                   `json:"error_count"`
	RecurringCount int                   `json:"recurring_count"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current project and error database state",
		Long: `Show scout's state: the current project pointer, its last session,
and error database counts.

Examples:
  scout status         # Human-readable status
  scout status --json  # JSON for scripting`,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	result := gatherStatus()

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Section("Scout")
	printer.KeyValue("Data dir", result.DataDir)

	if result.Current == nil {
		printer.Println("No project recorded yet. Run 'scout session start' in a project.")
	} else {
		printer.Section("Current project")
		printer.KeyValue("Project", result.Current.ProjectName)
		printer.KeyValue("Path", result.Current.ProjectPath)
		printer.KeyValue("Last access", result.Current.LastAccess.Format(time.RFC3339))
		if result.Session != nil {
			printer.KeyValue("Framework", result.Session.Analysis.Framework)
			if result.Session.EndTime != nil {
				printer.KeyValue("Last session", formatDuration(result.Session.DurationSeconds))
			} else {
				printer.KeyValue("Session started", result.Session.StartTime.Format(time.RFC3339))
			}
		}
	}

	printer.Section("Errors")
	printer.KeyValue("Tracked", strconv.Itoa(result.ErrorCount))
	printer.KeyValue("Recurring", strconv.Itoa(result.RecurringCount))
	return nil
}

// gatherStatus collects status information. Absent state is reported,
// never treated as an error.
func gatherStatus() *statusResult {
	result := &statusResult{DataDir: config.DataDir()}

	var current store.CurrentProject
	if err := globalStore().Load(store.CurrentProjectFile, &current); err == nil {
		result.Current = &current

		var stats store.SessionStats
		projectStore := store.New(config.ProjectDataDir(current.ProjectPath))
		if err := projectStore.Load(store.SessionStatsFile, &stats); err == nil {
			result.Session = &stats
		} else if !errors.Is(err, store.ErrNoData) {
			result.Session = nil
		}
	}

	db := globalTracker().Load()
	result.ErrorCount = len(db.Errors)
	for _, record := range db.Errors {
		if record.Status == tracker.StatusRecurring {
			result.RecurringCount++
		}
	}
	return result
}
