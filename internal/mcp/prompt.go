package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds the wl quick-entry prompt to the server.
func registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "wl",
		Title:       "Generate Worklog",
		Description: "Quick worklog generation from git commits. Generate for today, yesterday, or a specific date. Optionally specify project and hours to generate and post in one step.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "timeframe",
				Description: `Date: "today", "yesterday", or specific date (YYYY-MM-dd, MM/dd/YYYY, or dd.MM.YYYY)`,
			},
			{
				Name:        "project",
				Description: "Project name or ID. If provided with hours, will generate and post the worklog.",
			},
			{
				Name:        "hours",
				Description: "Number of hours worked. Required for posting (when project is specified).",
			},
		},
	}, handleWorklogPrompt)
}

func handleWorklogPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments

	tf := args["timeframe"]
	if tf == "" {
		tf = "today"
	}
	project := args["project"]
	hours := args["hours"]

	switch {
	case project != "" && hours != "":
		return promptResult("Generate and post worklog", fmt.Sprintf(
			`Please generate a worklog from git commits for %s and post it to project %q with %s hours worked.

Call the generate_and_post_worklog tool with:
- timeframe: %q
- projectName: %q
- hours: %s`, tf, project, hours, tf, project, hours)), nil

	case project != "":
		return promptResult("Generate worklog from git commits", fmt.Sprintf(
			`Please generate a worklog from git commits for %s (project: %s).

Call the generate_worklog tool with timeframe: %q. After reviewing the generated worklog, post it with the post_worklog tool using the project name %q and the hours worked.`,
			tf, project, tf, project)), nil

	default:
		return promptResult("Generate worklog from git commits", fmt.Sprintf(
			`Please generate a worklog from git commits for %s.

Call the generate_worklog tool with timeframe: %q. The tool analyzes your commits, extracts ticket numbers, and creates a professional worklog description.`,
			tf, tf)), nil
	}
}

// promptResult wraps a single user message into a prompt result.
func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
