package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/worklog/internal/config"
	"github.com/gorewood/worklog/internal/git"
	"github.com/gorewood/worklog/internal/timeframe"
	"github.com/gorewood/worklog/internal/worklog"
)

// GenerateInput is the input for the generate_worklog tool.
type GenerateInput struct {
	Timeframe     string `json:"timeframe"               jsonschema:"date to generate for: today, yesterday, or a specific date like 2024-10-28"`
	Repository    string `json:"repository,omitempty"    jsonschema:"path to the git repository (defaults to current directory)"`
	EnhanceWithAI *bool  `json:"enhanceWithAI,omitempty" jsonschema:"enabled by default; set false for the basic auto-generated description only"`
}

// GenerateOutput is the output for the generate_worklog tool.
type GenerateOutput struct {
	Date                string   `json:"date"                          jsonschema:"resolved calendar date (YYYY-MM-DD)"`
	Description         string   `json:"description"                   jsonschema:"auto-generated worklog description"`
	Commits             []string `json:"commits"                       jsonschema:"commit summaries (hash - message)"`
	TicketNumbers       []string `json:"ticketNumbers"                 jsonschema:"ticket identifiers found in commits"`
	AIEnhancementPrompt string   `json:"aiEnhancementPrompt,omitempty" jsonschema:"prompt for producing an enhanced description"`
}

func handleGenerate(settings config.Settings) mcp.ToolHandlerFor[GenerateInput, GenerateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
		draft, err := generateDraft(settings, input.Timeframe, input.Repository, enhanceEnabled(input.EnhanceWithAI))
		if err != nil {
			return nil, GenerateOutput{}, err
		}
		return nil, toGenerateOutput(draft), nil
	}
}

// GenerateAndPostInput is the input for the generate_and_post_worklog tool.
type GenerateAndPostInput struct {
	Timeframe     string  `json:"timeframe"               jsonschema:"date to generate for: today, yesterday, or a specific date like 2024-10-28"`
	Hours         float64 `json:"hours"                   jsonschema:"number of hours worked"`
	ProjectID     int     `json:"projectId,omitempty"     jsonschema:"dashboard project ID (falls back to the configured default)"`
	ProjectName   string  `json:"projectName,omitempty"   jsonschema:"project name, resolved to an ID automatically"`
	Repository    string  `json:"repository,omitempty"    jsonschema:"path to the git repository (defaults to current directory)"`
	EnhanceWithAI *bool   `json:"enhanceWithAI,omitempty" jsonschema:"enabled by default; set false to auto-post without enhancement"`
}

// GenerateAndPostOutput is the output for the generate_and_post_worklog tool.
type GenerateAndPostOutput struct {
	Generated GenerateOutput `json:"generated" jsonschema:"the generated worklog draft"`
	Posted    PostOutput     `json:"posted"    jsonschema:"the posting outcome"`
	Summary   string         `json:"summary"   jsonschema:"human-readable summary of what happened"`
}

func handleGenerateAndPost(settings config.Settings) mcp.ToolHandlerFor[GenerateAndPostInput, GenerateAndPostOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateAndPostInput) (*mcp.CallToolResult, GenerateAndPostOutput, error) {
		enhance := enhanceEnabled(input.EnhanceWithAI)

		draft, err := generateDraft(settings, input.Timeframe, input.Repository, enhance)
		if err != nil {
			return nil, GenerateAndPostOutput{}, err
		}

		// With enhancement active, stop short of posting: the caller produces
		// the enhanced description and submits it via post_worklog.
		if enhance {
			return nil, GenerateAndPostOutput{
				Generated: toGenerateOutput(draft),
				Posted:    PostOutput{Message: "Waiting for an enhanced description; submit it with post_worklog."},
				Summary: fmt.Sprintf(
					"Worklog generated for %s. Produce the enhanced description, then call post_worklog with it (hours: %g).",
					draft.Date, input.Hours),
			}, nil
		}

		result := postDraft(ctx, settings, draft.Description, input.ProjectID, input.ProjectName, input.Hours, draft.Date)

		summary := fmt.Sprintf(
			"Worklog generated and posted successfully!\n\nDate: %s\nDescription: %s\nHours: %g",
			draft.Date, draft.Description, input.Hours)
		if !result.Success {
			summary = fmt.Sprintf(
				"Worklog generated, but posting failed.\n\nDate: %s\nDescription: %s\n\nError: %s",
				draft.Date, draft.Description, result.Message)
		}

		return nil, GenerateAndPostOutput{
			Generated: toGenerateOutput(draft),
			Posted:    PostOutput{Success: result.Success, Message: result.Message},
			Summary:   summary,
		}, nil
	}
}

// enhanceEnabled reports the effective enhancement setting; nil means the
// default, which is enabled.
func enhanceEnabled(flag *bool) bool {
	return flag == nil || *flag
}

// generateDraft runs the resolve-read-format pipeline shared by both
// generation tools.
func generateDraft(settings config.Settings, timeframeInput, repository string, enhance bool) (worklog.Draft, error) {
	resolved, err := timeframe.Parse(timeframeInput)
	if err != nil {
		return worklog.Draft{}, err
	}

	repo := repository
	if repo == "" {
		repo = settings.Repository
	}

	commits, err := git.NewReader(repo).CommitsForDate(resolved.Date)
	if err != nil {
		return worklog.Draft{}, err
	}

	draft := worklog.Format(commits, resolved.Date.Format("2006-01-02"))
	if enhance {
		draft.EnhancementPrompt = worklog.EnhancementPrompt(commits, draft.Tickets, resolved.DisplayName)
	}
	return draft, nil
}

// toGenerateOutput converts a draft to tool output.
func toGenerateOutput(draft worklog.Draft) GenerateOutput {
	return GenerateOutput{
		Date:                draft.Date,
		Description:         draft.Description,
		Commits:             draft.Commits,
		TicketNumbers:       draft.Tickets,
		AIEnhancementPrompt: draft.EnhancementPrompt,
	}
}
