// Package report renders project analysis into the CODEBASE.md
// document dropped into a project root at session start.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/scouthq/scout/internal/detect"
	"github.com/scouthq/scout/internal/discover"
)

// FileName is the document written into the project root.
const FileName = "CODEBASE.md"

// Input bundles everything the renderer needs. The document is
// regenerated wholesale on every session start; it carries no state of
// its own.
type Input struct {
	ProjectName string
	ProjectPath string
	Analysis    detect.Result
	Discovery   *discover.Report
	GeneratedAt time.Time
}

// Render formats the full CODEBASE.md document.
func Render(in Input) string {
	var builder strings.Builder

	writeHeader(&builder, in)
	writeProjectInfo(&builder, in)

	if in.Discovery != nil {
		writeTechStack(&builder, in.Discovery)
		writeEntryPoints(&builder, in.Discovery)
		writeStructure(&builder, in.Discovery)
		writeDependencies(&builder, in.Discovery)
	}

	return builder.String()
}

func writeHeader(builder *strings.Builder, in Input) {
	fmt.Fprintf(builder, "# %s\n\n", in.ProjectName)
	builder.WriteString("Auto-generated codebase overview. Regenerated on every session start; do not edit by hand.\n\n")
}

func writeProjectInfo(builder *strings.Builder, in Input) {
	builder.WriteString("## Project Info\n\n")
	fmt.Fprintf(builder, "- Path: %s\n", in.ProjectPath)
	fmt.Fprintf(builder, "- Type: %s\n", in.Analysis.Type)
	fmt.Fprintf(builder, "- Framework: %s\n", in.Analysis.Framework)
	if in.Analysis.Platform != "" {
		fmt.Fprintf(builder, "- Platform: %s\n", in.Analysis.Platform)
	}
	fmt.Fprintf(builder, "- Updated: %s\n\n", in.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))
}

func writeTechStack(builder *strings.Builder, report *discover.Report) {
	if len(report.TechStack) == 0 {
		return
	}
	builder.WriteString("## Tech Stack\n\n")
	for _, marker := range report.TechStack {
		fmt.Fprintf(builder, "- %s\n", marker)
	}
	builder.WriteString("\n")
}

func writeEntryPoints(builder *strings.Builder, report *discover.Report) {
	if len(report.EntryPoints) == 0 {
		return
	}
	builder.WriteString("## Entry Points\n\n")
	for _, entry := range report.EntryPoints {
		fmt.Fprintf(builder, "- `%s`\n", entry)
	}
	builder.WriteString("\n")
}

func writeStructure(builder *strings.Builder, report *discover.Report) {
	if len(report.Structure) == 0 {
		return
	}
	builder.WriteString("## Structure\n\n```\n")
	writeTree(builder, report.Structure, 0)
	builder.WriteString("```\n\n")
}

// writeTree renders the nested structure map as an indented listing,
// directories first, two spaces per level.
func writeTree(builder *strings.Builder, node map[string]any, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range sortedKeys(node) {
		switch child := node[name].(type) {
		case map[string]any:
			fmt.Fprintf(builder, "%s%s/\n", indent, name)
			writeTree(builder, child, depth+1)
		case string:
			if child == "file" {
				fmt.Fprintf(builder, "%s%s\n", indent, name)
			} else {
				fmt.Fprintf(builder, "%s%s/ %s\n", indent, name, child)
			}
		}
	}
}

func writeDependencies(builder *strings.Builder, report *discover.Report) {
	deps := report.Deps
	if len(deps.NPM) == 0 && len(deps.ImportedBy) == 0 {
		return
	}
	builder.WriteString("## Dependencies\n\n")

	if len(deps.NPM) > 0 {
		fmt.Fprintf(builder, "NPM packages: %s\n\n", strings.Join(deps.NPM, ", "))
	}

	if len(deps.ImportedBy) > 0 {
		builder.WriteString("Internal imports (heuristic sample):\n\n")
		for _, target := range sortedKeys(deps.ImportedBy) {
			importers := deps.ImportedBy[target]
			fmt.Fprintf(builder, "- `%s` imported by %s\n", target, backtickJoin(importers))
		}
		builder.WriteString("\n")
	}
}

func backtickJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "`" + item + "`"
	}
	return strings.Join(quoted, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
