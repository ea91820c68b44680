package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func promptRequest(args map[string]string) *mcp.GetPromptRequest {
	return &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: "wl", Arguments: args},
	}
}

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	if len(result.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(result.Messages))
	}
	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", result.Messages[0].Content)
	}
	return text.Text
}

func TestHandleWorklogPrompt(t *testing.T) {
	t.Run("no arguments defaults to today", func(t *testing.T) {
		result, err := handleWorklogPrompt(context.Background(), promptRequest(nil))
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		text := promptText(t, result)
		if !strings.Contains(text, "generate_worklog") {
			t.Errorf("text should direct to generate_worklog:\n%s", text)
		}
		if !strings.Contains(text, `"today"`) {
			t.Errorf("text should default the timeframe to today:\n%s", text)
		}
	})

	t.Run("project without hours stops at generation", func(t *testing.T) {
		result, err := handleWorklogPrompt(context.Background(), promptRequest(map[string]string{
			"timeframe": "yesterday",
			"project":   "FaceFlip",
		}))
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		text := promptText(t, result)
		if !strings.Contains(text, "generate_worklog") || !strings.Contains(text, "post_worklog") {
			t.Errorf("text should describe the two-step flow:\n%s", text)
		}
		if strings.Contains(text, "generate_and_post_worklog") {
			t.Errorf("without hours the one-step tool should not be suggested:\n%s", text)
		}
	})

	t.Run("project and hours use the one-step tool", func(t *testing.T) {
		result, err := handleWorklogPrompt(context.Background(), promptRequest(map[string]string{
			"timeframe": "today",
			"project":   "FaceFlip",
			"hours":     "7.5",
		}))
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		text := promptText(t, result)
		if !strings.Contains(text, "generate_and_post_worklog") {
			t.Errorf("text should direct to generate_and_post_worklog:\n%s", text)
		}
		for _, want := range []string{"FaceFlip", "7.5"} {
			if !strings.Contains(text, want) {
				t.Errorf("text missing %q:\n%s", want, text)
			}
		}
	})
}
