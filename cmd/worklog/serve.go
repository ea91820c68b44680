// Package main provides the entry point for the worklog CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/worklog/internal/config"
	"github.com/gorewood/worklog/internal/logging"
	worklogmcp "github.com/gorewood/worklog/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run worklog as a Model Context Protocol (MCP) server over stdio.

This exposes worklog operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "worklog": {
        "command": "worklog",
        "args": ["serve"]
      }
    }
  }

Available tools: list_projects, generate_worklog, post_worklog,
generate_and_post_worklog. A "wl" prompt is registered for quick entry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			server := worklogmcp.NewServer(buildVersion(), settings)

			// stdout carries the protocol stream; announce on stderr only.
			logging.Logger().Info().Str("version", buildVersion()).Msg("worklog MCP server running on stdio")

			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
