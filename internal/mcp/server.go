// Package mcp provides a Model Context Protocol server for scout.
// It exposes project analysis and error history as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps carries the filesystem roots the tool handlers read from. Tests
// point these at temp directories.
type Deps struct {
	// DataDir is the scout data directory holding per-project stores
	// and the global error database.
	DataDir string
	// WorkDir is the fallback project path when a tool call omits one.
	WorkDir string
}

// NewServer creates an MCP server with all scout tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "scout",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all scout tools to the server. Every tool is
// read-only: analysis and error state are written by the hook entry
// points, not by agents.
func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "project_info",
		Description: "Detect the project type, framework, and platform for a directory. Uses the cached analysis from the last session start when available.",
		Annotations: readOnlyAnnotations(),
	}, handleProjectInfo(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "discovery",
		Description: "Return the project discovery report: structure tree, tech-stack markers, entry points, and heuristic dependency map.",
		Annotations: readOnlyAnnotations(),
	}, handleDiscovery(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "errors",
		Description: "List recently tracked command failures with status, occurrence counts, and suggestions.",
		Annotations: readOnlyAnnotations(),
	}, handleErrors(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_command",
		Description: "Check a shell command against the dangerous-command table and past failures before running it.",
		Annotations: readOnlyAnnotations(),
	}, handleCheckCommand(deps))
}
