package worklog

import (
	"fmt"
	"strings"

	"github.com/gorewood/worklog/internal/git"
)

// promptGuidelines are the fixed style rules for enhanced descriptions.
// Worklogs appear on client invoices, so the wording must stay client-facing.
const promptGuidelines = `GUIDELINES:
- Logs appear on client invoices - must be professional and appropriate
- Describe what was accomplished for the client, not technical details
- Use dense, descriptive format combining multiple accomplishments
- Include ticket numbers in [TICKET-123] format
- When multiple tickets are present, place each ticket tag immediately before its own sentence
- Focus on business value and user-facing features
- Avoid: branch names, PR numbers, technical jargon, internal processes`

// promptExamples show the expected shape for single- and multi-ticket days.
const promptExamples = `EXAMPLES:
Single ticket:
  [ENG-155] Implemented screenshot upload feature in developer settings

Multiple tickets:
  [ENG-155] Implemented screenshot upload feature in developer settings. [ENG-160] Fixed crash when saving an empty profile`

// EnhancementPrompt builds the request text for an external actor to produce
// a replacement description. The formatter never generates that replacement
// itself; the caller threads the enhanced text back through a posting call.
func EnhancementPrompt(commits []git.AnnotatedCommit, tickets []string, displayName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "WORKLOG ENHANCEMENT REQUEST (%s)\n\n", displayName)
	b.WriteString("Based on these commits, generate an improved worklog description:\n\n")

	b.WriteString("COMMITS:\n")
	for _, commit := range commits {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", commit.Short, commit.Subject, commit.Category)
		if commit.Body != "" {
			for _, line := range strings.Split(commit.Body, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	b.WriteString("\n")

	ticketList := "None"
	if len(tickets) > 0 {
		ticketList = strings.Join(tickets, ", ")
	}
	fmt.Fprintf(&b, "TICKET NUMBERS: %s\n\n", ticketList)

	b.WriteString(promptGuidelines)
	b.WriteString("\n\n")
	b.WriteString(promptExamples)
	b.WriteString("\n\n")
	b.WriteString("TASK:\n")
	b.WriteString("Generate a single, comprehensive worklog description (1-2 sentences) that:\n")
	b.WriteString("1. Groups related work by ticket number\n")
	b.WriteString("2. Describes accomplishments in client-appropriate language\n")
	b.WriteString("3. Focuses on what was delivered, not how it was done\n")
	b.WriteString("4. Is concise but informative\n")

	return b.String()
}
