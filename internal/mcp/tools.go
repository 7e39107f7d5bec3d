package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/detect"
	"github.com/scouthq/scout/internal/discover"
	"github.com/scouthq/scout/internal/store"
	"github.com/scouthq/scout/internal/tracker"
)

// projectStore opens the per-project document store under the data
// directory for a given project path.
func (d Deps) projectStore(projectPath string) *store.Store {
	name := config.SanitizeName(filepath.Base(projectPath))
	return store.New(filepath.Join(d.DataDir, "projects", name))
}

func (d Deps) resolvePath(path string) (string, error) {
	if path == "" {
		path = d.WorkDir
	}
	if path == "" {
		return "", errors.New("no project path given and no working directory configured")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve project path: %w", err)
	}
	return abs, nil
}

// --- project_info tool ---

// ProjectInfoInput is the input for the project_info tool.
type ProjectInfoInput struct {
	Path string `json:"path,omitempty" jsonschema:"project directory (defaults to the server working directory)"`
}

// ProjectInfoOutput is the output for the project_info tool.
type ProjectInfoOutput struct {
	ProjectPath string `json:"project_path"          jsonschema:"absolute project path"`
	ProjectName string `json:"project_name"          jsonschema:"project directory name"`
	Type        string `json:"type"                  jsonschema:"detected project type"`
	Framework   string `json:"framework"             jsonschema:"detected framework"`
	Platform    string `json:"platform,omitempty"    jsonschema:"detected platform"`
	Cached      bool   `json:"cached"                jsonschema:"true when served from the last session analysis"`
	DetectedAt  string `json:"detected_at,omitempty" jsonschema:"directory where the project manifest was found"`
}

func handleProjectInfo(deps Deps) mcp.ToolHandlerFor[ProjectInfoInput, ProjectInfoOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ProjectInfoInput) (*mcp.CallToolResult, ProjectInfoOutput, error) {
		path, err := deps.resolvePath(input.Path)
		if err != nil {
			return nil, ProjectInfoOutput{}, err
		}

		out := ProjectInfoOutput{
			ProjectPath: path,
			ProjectName: filepath.Base(path),
		}

		var record store.ProjectRecord
		if err := deps.projectStore(path).Load(store.ProjectRecordFile, &record); err == nil {
			out.Type = record.Analysis.Type
			out.Framework = record.Analysis.Framework
			out.Platform = record.Analysis.Platform
			out.Cached = true
			out.DetectedAt = record.Analysis.DetectedAt
			return nil, out, nil
		}

		analysis := detect.Detect(path, config.LoadSettings().Scan.DetectDepth)
		out.Type = analysis.Type
		out.Framework = analysis.Framework
		out.Platform = analysis.Platform
		out.DetectedAt = analysis.DetectedAt
		return nil, out, nil
	}
}

// --- discovery tool ---

// DiscoveryInput is the input for the discovery tool.
type DiscoveryInput struct {
	Path  string `json:"path,omitempty"  jsonschema:"project directory (defaults to the server working directory)"`
	Fresh bool   `json:"fresh,omitempty" jsonschema:"rescan instead of serving the cached report"`
}

// DiscoveryOutput is the output for the discovery tool.
type DiscoveryOutput struct {
	Report *discover.Report `json:"report" jsonschema:"discovery report with structure, tech stack, entry points, and dependencies"`
	Cached bool             `json:"cached" jsonschema:"true when served from the last session scan"`
}

func handleDiscovery(deps Deps) mcp.ToolHandlerFor[DiscoveryInput, DiscoveryOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DiscoveryInput) (*mcp.CallToolResult, DiscoveryOutput, error) {
		path, err := deps.resolvePath(input.Path)
		if err != nil {
			return nil, DiscoveryOutput{}, err
		}

		if !input.Fresh {
			var report discover.Report
			if err := deps.projectStore(path).Load(store.DiscoveryReportFile, &report); err == nil {
				return nil, DiscoveryOutput{Report: &report, Cached: true}, nil
			}
		}

		settings := config.LoadSettings()
		report, err := discover.Scan(path, discover.Options{
			MaxDepth: settings.Scan.MaxDepth,
			Exclude:  settings.Scan.Exclude,
			Collapse: settings.Scan.Collapse,
		})
		if err != nil {
			return nil, DiscoveryOutput{}, fmt.Errorf("scanning %s: %w", path, err)
		}
		return nil, DiscoveryOutput{Report: report}, nil
	}
}

// --- errors tool ---

// ErrorsInput is the input for the errors tool.
type ErrorsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 10)"`
}

// ErrorsOutput is the output for the errors tool.
type ErrorsOutput struct {
	Total  int                   `json:"total"            jsonschema:"total records in the database"`
	Errors []tracker.ErrorRecord `json:"errors,omitempty" jsonschema:"most recent error records"`
}

func handleErrors(deps Deps) mcp.ToolHandlerFor[ErrorsInput, ErrorsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ErrorsInput) (*mcp.CallToolResult, ErrorsOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}

		tr := tracker.New(store.New(deps.DataDir))
		db := tr.Load()
		return nil, ErrorsOutput{
			Total:  len(db.Errors),
			Errors: tr.Recent(limit),
		}, nil
	}
}

// --- check_command tool ---

// CheckCommandInput is the input for the check_command tool.
type CheckCommandInput struct {
	Command string `json:"command"           jsonschema:"shell command to check"`
	Project string `json:"project,omitempty" jsonschema:"project name for similarity boosting"`
}

// SimilarError is one past-failure match in check_command output.
type SimilarError struct {
	Command      string `json:"command"              jsonschema:"previously failed command"`
	ErrorMessage string `json:"error_message"        jsonschema:"recorded error message"`
	Status       string `json:"status"               jsonschema:"record status"`
	Occurrences  int    `json:"occurrences"          jsonschema:"times this failure was seen"`
	Similarity   int    `json:"similarity"           jsonschema:"match score 0-100"`
	Suggestion   string `json:"suggestion,omitempty" jsonschema:"remediation hint"`
}

// CheckCommandOutput is the output for the check_command tool.
type CheckCommandOutput struct {
	Allowed  bool           `json:"allowed"            jsonschema:"false when the command matches a BLOCKED pattern"`
	Severity string         `json:"severity,omitempty" jsonschema:"BLOCKED or WARNING when a dangerous pattern matched"`
	Warning  string         `json:"warning,omitempty"  jsonschema:"description of the matched pattern"`
	Similar  []SimilarError `json:"similar,omitempty"  jsonschema:"past failures resembling this command"`
}

func handleCheckCommand(deps Deps) mcp.ToolHandlerFor[CheckCommandInput, CheckCommandOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CheckCommandInput) (*mcp.CallToolResult, CheckCommandOutput, error) {
		if input.Command == "" {
			return nil, CheckCommandOutput{}, errors.New("command is required")
		}

		decision := tracker.CheckCommand(input.Command, config.LoadSettings().Prevention.Rules())
		out := CheckCommandOutput{
			Allowed:  !decision.Blocked(),
			Severity: string(decision.Severity),
			Warning:  decision.Warning,
		}

		tr := tracker.New(store.New(deps.DataDir))
		for _, match := range tr.FindSimilar(input.Command, input.Project) {
			out.Similar = append(out.Similar, SimilarError{
				Command:      match.Record.Command,
				ErrorMessage: match.Record.ErrorMessage,
				Status:       match.Record.Status,
				Occurrences:  match.Record.Occurrences,
				Similarity:   match.Similarity,
				Suggestion:   match.Record.Suggestion,
			})
		}
		return nil, out, nil
	}
}
