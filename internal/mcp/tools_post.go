package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/worklog/internal/config"
	"github.com/gorewood/worklog/internal/dashboard"
)

// ListProjectsInput is the input for the list_projects tool (no parameters).
type ListProjectsInput struct{}

// ProjectRef is one project in the listing output.
type ProjectRef struct {
	Name string `json:"name" jsonschema:"project display name"`
	ID   int    `json:"id"   jsonschema:"numeric project ID"`
}

// ListProjectsOutput is the output for the list_projects tool.
type ListProjectsOutput struct {
	Message  string       `json:"message"  jsonschema:"headline with the project count"`
	Projects []ProjectRef `json:"projects" jsonschema:"available projects"`
	Summary  string       `json:"summary"  jsonschema:"bulleted name/ID listing"`
}

func handleListProjects(settings config.Settings) mcp.ToolHandlerFor[ListProjectsInput, ListProjectsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
		client, err := dashboard.New(settings.Token, settings.DashboardURL)
		if err != nil {
			return nil, ListProjectsOutput{}, err
		}

		projects, err := client.ListProjects(ctx)
		if err != nil {
			return nil, ListProjectsOutput{}, err
		}

		refs := make([]ProjectRef, 0, len(projects))
		lines := make([]string, 0, len(projects))
		for _, p := range projects {
			refs = append(refs, ProjectRef{Name: p.Name, ID: p.ID})
			lines = append(lines, fmt.Sprintf("- %s - ID: %d", p.Name, p.ID))
		}

		return nil, ListProjectsOutput{
			Message:  fmt.Sprintf("Found %d active project(s):", len(refs)),
			Projects: refs,
			Summary:  strings.Join(lines, "\n"),
		}, nil
	}
}

// PostInput is the input for the post_worklog tool.
type PostInput struct {
	Description string  `json:"description"           jsonschema:"worklog description"`
	Hours       float64 `json:"hours"                 jsonschema:"number of hours worked"`
	Date        string  `json:"date"                  jsonschema:"date in YYYY-MM-dd format"`
	ProjectID   int     `json:"projectId,omitempty"   jsonschema:"dashboard project ID (falls back to the configured default)"`
	ProjectName string  `json:"projectName,omitempty" jsonschema:"project name, resolved to an ID automatically"`
}

// PostOutput is the output for the post_worklog tool.
type PostOutput struct {
	Success bool   `json:"success" jsonschema:"whether the worklog was posted"`
	Message string `json:"message" jsonschema:"outcome detail"`
}

func handlePost(settings config.Settings) mcp.ToolHandlerFor[PostInput, PostOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PostInput) (*mcp.CallToolResult, PostOutput, error) {
		if input.Description == "" {
			return nil, PostOutput{}, fmt.Errorf("description is required")
		}

		result := postDraft(ctx, settings, input.Description, input.ProjectID, input.ProjectName, input.Hours, input.Date)
		return nil, PostOutput{Success: result.Success, Message: result.Message}, nil
	}
}

// postDraft determines the target project and submits the worklog.
// Failures come back as an unsuccessful result, never as an error: callers
// may hold a generated draft that is still worth returning.
func postDraft(ctx context.Context, settings config.Settings, description string, projectID int, projectName string, hours float64, date string) dashboard.PostResult {
	client, err := dashboard.New(settings.Token, settings.DashboardURL)
	if err != nil {
		return dashboard.PostResult{Message: err.Error()}
	}

	// Explicit ID wins over name; the configured default is the last resort.
	switch {
	case projectID > 0:
	case projectName != "":
		projectID, err = client.ResolveProjectID(ctx, projectName)
		if err != nil {
			return dashboard.PostResult{Message: err.Error()}
		}
	case settings.DefaultProjectID > 0:
		projectID = settings.DefaultProjectID
	default:
		return dashboard.PostResult{
			Message: "no project given: provide projectId or projectName, or set " + config.EnvDefaultProject,
		}
	}

	return client.PostWorklog(ctx, description, projectID, hours, date)
}
