package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/worklog/internal/config"
)

// registerTools adds all worklog tools to the server.
func registerTools(server *mcp.Server, settings config.Settings) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "list_projects",
		Description: `List all active projects assigned to you on the dashboard. Shows project names and IDs for easy reference when posting worklogs.

Trigger examples:
- "wl list"
- "list my projects"
- "what projects do I have"`,
		Annotations: remoteReadAnnotations(),
	}, handleListProjects(settings))

	mcp.AddTool(server, &mcp.Tool{
		Name: "generate_worklog",
		Description: `Generate a worklog from git commits. Analyzes commit messages, extracts ticket numbers, and creates a professional worklog description. AI enhancement is ENABLED BY DEFAULT: the response includes an enhancement prompt for producing an improved description before posting.

Supported date formats:
- "today", "yesterday"
- Specific dates: "2024-10-28" (YYYY-MM-dd), "10/28/2024" (MM/dd/YYYY), "28.10.2024" (dd.MM.YYYY)

Trigger examples:
- "wl"
- "wl yesterday"
- "wl 2024-10-28"
- "what did I work on yesterday"`,
		Annotations: localReadAnnotations(),
	}, handleGenerate(settings))

	mcp.AddTool(server, &mcp.Tool{
		Name: "post_worklog",
		Description: `Post a worklog entry to the dashboard. Supports both project ID and project name. Uses the configured default project if neither is provided.

Trigger examples:
- "wl post 8"
- "wl post FaceFlip 8"
- "post 6 hours to Autobiography"
- "submit worklog for today"`,
		Annotations: submitAnnotations(),
	}, handlePost(settings))

	mcp.AddTool(server, &mcp.Tool{
		Name: "generate_and_post_worklog",
		Description: `Generate a worklog from git commits AND post it to the dashboard in one step. Supports both project ID and project name. AI enhancement is ENABLED BY DEFAULT: generation pauses before posting so an enhanced description can be produced; submit it with post_worklog.

Trigger examples:
- "wl FaceFlip 8"
- "wl yesterday FaceFlip 6"
- "generate and post worklog for today with 8 hours"`,
		Annotations: submitAnnotations(),
	}, handleGenerateAndPost(settings))
}
