// Package main provides the entry point for the scout CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/deps"
	"github.com/scouthq/scout/internal/detect"
	"github.com/scouthq/scout/internal/discover"
	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/report"
	"github.com/scouthq/scout/internal/store"
)

// recentErrorLimit bounds the error summaries attached to session
// start output.
const recentErrorLimit = 3

// newSessionCmd creates the session parent command.
func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start or end a project session",
		Long: `Manage project sessions.

'session start' analyzes the project, writes its data files, regenerates
CODEBASE.md, and prints a machine-readable context line for the agent.
'session end' stamps the session duration.`,
	}
	cmd.AddCommand(newSessionStartCmd(), newSessionEndCmd())
	return cmd
}

func newSessionStartCmd() *cobra.Command {
	var silentFlag bool
	cmd := &cobra.Command{
		Use:   "start [path]",
		Short: "Analyze a project and begin a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionStart(cmd, args, silentFlag)
		},
	}
	cmd.Flags().BoolVar(&silentFlag, "silent", false, "Suppress the human-readable summary")
	return cmd
}

func newSessionEndCmd() *cobra.Command {
	var silentFlag bool
	cmd := &cobra.Command{
		Use:   "end [path]",
		Short: "End the current session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionEnd(cmd, args, silentFlag)
		},
	}
	cmd.Flags().BoolVar(&silentFlag, "silent", false, "Suppress the human-readable summary")
	return cmd
}

// sessionStartResult is the state produced by starting a session.
type sessionStartResult struct {
	Project      projectContext
	Analysis     detect.Result
	Report       *discover.Report
	RecentErrors []recentError
	StartedAt    time.Time
	CodebasePath string
}

// recentError is the compact error summary attached to session output.
type recentError struct {
	Type     string `json:"type"`
	Pattern  string `json:"pattern"`
	Solution string `json:"solution,omitempty"`
}

// startSession runs the full session-start pipeline: detect, discover,
// persist, and regenerate CODEBASE.md.
func startSession(project projectContext) (*sessionStartResult, error) {
	settings := config.LoadSettings()
	now := time.Now().UTC()

	analysis := detect.Detect(project.Path, settings.Scan.DetectDepth)

	discovery, err := discover.Scan(project.Path, discover.Options{
		MaxDepth: settings.Scan.MaxDepth,
		Exclude:  settings.Scan.Exclude,
		Collapse: settings.Scan.Collapse,
	})
	if err != nil {
		return nil, output.NewSystemErrorWithCause("scanning project", err)
	}
	discovery.Deps.ImportedBy = deps.Scan(project.Path, settings.Scan.SampleCap, settings.Scan.Exclude)

	result := &sessionStartResult{
		Project:      project,
		Analysis:     analysis,
		Report:       discovery,
		RecentErrors: recentProjectErrors(project.Name),
		StartedAt:    now,
	}

	if err := project.Store.Save(store.ProjectRecordFile, store.ProjectRecord{
		ProjectPath: project.Path,
		ProjectName: project.Name,
		Analysis:    analysis,
		UpdatedAt:   now,
	}); err != nil {
		return nil, output.NewSystemErrorWithCause("saving project record", err)
	}

	if err := project.Store.Save(store.SessionStatsFile, store.SessionStats{
		ProjectPath: project.Path,
		ProjectName: project.Name,
		StartTime:   now,
		Analysis:    analysis,
	}); err != nil {
		return nil, output.NewSystemErrorWithCause("saving session stats", err)
	}

	if err := project.Store.Save(store.DiscoveryReportFile, discovery); err != nil {
		return nil, output.NewSystemErrorWithCause("saving discovery report", err)
	}

	if err := globalStore().Save(store.CurrentProjectFile, store.CurrentProject{
		ProjectPath: project.Path,
		ProjectName: project.Name,
		DataDir:     project.Store.Dir(),
		LastAccess:  now,
	}); err != nil {
		return nil, output.NewSystemErrorWithCause("saving current project pointer", err)
	}

	// CODEBASE.md is a convenience artifact inside the user's tree; a
	// read-only project root must not fail the session.
	codebasePath := filepath.Join(project.Path, report.FileName)
	doc := report.Render(report.Input{
		ProjectName: project.Name,
		ProjectPath: project.Path,
		Analysis:    analysis,
		Discovery:   discovery,
		GeneratedAt: now,
	})
	if err := os.WriteFile(codebasePath, []byte(doc), 0o644); err == nil {
		result.CodebasePath = codebasePath
	}

	return result, nil
}

// recentProjectErrors pulls the last few tracked failures for a
// project out of the global error database.
func recentProjectErrors(projectName string) []recentError {
	db := globalTracker().Load()

	var recent []recentError
	for _, record := range db.Errors {
		if record.Project != projectName {
			continue
		}
		recent = append(recent, recentError{
			Type:     record.ErrorType,
			Pattern:  record.Pattern,
			Solution: record.Solution,
		})
	}
	if len(recent) > recentErrorLimit {
		recent = recent[len(recent)-recentErrorLimit:]
	}
	return recent
}

// contextLine renders the machine-readable session context written to
// stdout for the agent host.
func (r *sessionStartResult) contextLine() string {
	payload := map[string]any{
		"projectPath": r.Project.Path,
		"timestamp":   r.StartedAt.Format(time.RFC3339),
		"analysis":    r.Analysis,
	}
	if len(r.RecentErrors) > 0 {
		payload["recentErrors"] = r.RecentErrors
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// contextText renders the human-oriented context summary injected into
// the model at session start.
func (r *sessionStartResult) contextText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s (%s", r.Project.Name, r.Analysis.Framework)
	if r.Analysis.Platform != "" {
		fmt.Fprintf(&b, ", %s", r.Analysis.Platform)
	}
	b.WriteString(")\n")
	if len(r.Report.TechStack) > 0 {
		fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(r.Report.TechStack, ", "))
	}
	if len(r.Report.EntryPoints) > 0 {
		fmt.Fprintf(&b, "Entry points: %s\n", strings.Join(r.Report.EntryPoints, ", "))
	}
	if len(r.RecentErrors) > 0 {
		fmt.Fprintf(&b, "Recent errors in this project: %d\n", len(r.RecentErrors))
	}
	if r.CodebasePath != "" {
		fmt.Fprintf(&b, "Codebase overview: %s\n", r.CodebasePath)
	}
	return b.String()
}

func runSessionStart(cmd *cobra.Command, args []string, silent bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	project, err := resolveProject(args)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := startSession(project)
	if err != nil {
		printer.Error(err)
		return err
	}

	// The context line is the machine contract: always emitted, even
	// alongside human output.
	printer.Println(result.contextLine())

	if !silent && !printer.IsJSON() {
		printer.Section("Session")
		printer.KeyValue("Project", result.Project.Name)
		printer.KeyValue("Framework", result.Analysis.Framework)
		if result.Analysis.Platform != "" {
			printer.KeyValue("Platform", result.Analysis.Platform)
		}
		if len(result.RecentErrors) > 0 {
			printer.Warn("Recent errors in this project: %d", len(result.RecentErrors))
		}
	}
	return nil
}

// endSession stamps duration on the session stats and marks the error
// database. Returns the closed stats, nil when no session was open.
func endSession(project projectContext) (*store.SessionStats, error) {
	now := time.Now().UTC()

	// Session end always reaches the error database, open session or not.
	if err := globalTracker().MarkSessionEnd(now); err != nil {
		return nil, output.NewSystemErrorWithCause("marking session end", err)
	}

	var stats store.SessionStats
	if err := project.Store.Load(store.SessionStatsFile, &stats); err != nil {
		return nil, nil
	}

	stats.EndTime = &now
	stats.DurationSeconds = now.Sub(stats.StartTime).Seconds()
	if err := project.Store.Save(store.SessionStatsFile, stats); err != nil {
		return nil, output.NewSystemErrorWithCause("saving session stats", err)
	}
	return &stats, nil
}

func runSessionEnd(cmd *cobra.Command, args []string, silent bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	project, err := resolveProject(args)
	if err != nil {
		printer.Error(err)
		return err
	}

	stats, err := endSession(project)
	if err != nil {
		printer.Error(err)
		return err
	}

	payload := map[string]any{
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"projectPath": project.Path,
		"status":      "completed",
	}
	if stats != nil {
		payload["durationSeconds"] = stats.DurationSeconds
	}

	if printer.IsJSON() {
		return printer.Success(payload)
	}

	data, _ := json.Marshal(payload)
	printer.Println(string(data))

	if !silent {
		printer.Section("Session completed")
		if stats != nil {
			printer.KeyValue("Duration", formatDuration(stats.DurationSeconds))
		}
	}
	return nil
}

// formatDuration renders seconds as a compact human duration.
func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}
