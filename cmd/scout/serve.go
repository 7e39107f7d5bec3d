// Package main provides the entry point for the scout CLI.
package main

import (
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/scouthq/scout/internal/config"
	scoutmcp "github.com/scouthq/scout/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run scout as a Model Context Protocol (MCP) server over stdio.

This exposes scout's analysis and error history as MCP tools that any
MCP-capable agent environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "scout": {
        "command": "scout",
        "args": ["serve"]
      }
    }
  }

Available tools: project_info, discovery, errors, check_command`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			server := scoutmcp.NewServer(buildVersion(), scoutmcp.Deps{
				DataDir: config.DataDir(),
				WorkDir: wd,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
