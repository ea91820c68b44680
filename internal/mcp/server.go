// Package mcp provides a Model Context Protocol server for worklog.
// It exposes worklog generation and dashboard posting as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/worklog/internal/config"
)

// NewServer creates an MCP server with all worklog tools registered.
func NewServer(version string, settings config.Settings) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "worklog",
		Version: version,
	}, nil)
	registerTools(server, settings)
	registerPrompts(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// localReadAnnotations returns annotations for tools that only read local state.
func localReadAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// remoteReadAnnotations returns annotations for read-only tools that reach
// the dashboard API.
func remoteReadAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// submitAnnotations returns annotations for tools that submit worklogs.
// Posting is additive but not idempotent: the API has no client-supplied
// idempotency key, so a retry risks a duplicate entry.
func submitAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  false,
		OpenWorldHint:   boolPtr(true),
	}
}
