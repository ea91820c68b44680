// Package worklog turns annotated commits into dashboard-ready work summaries.
package worklog

import (
	"fmt"
	"strings"

	"github.com/gorewood/worklog/internal/git"
)

// EmptyDescription is the description for a day with no commits.
const EmptyDescription = "No commits found for this timeframe."

// Draft is a generated, not-yet-submitted summary of a day's work.
// The description may be replaced by an externally enhanced string before
// posting; nothing here enforces that the replacement references the same
// tickets.
type Draft struct {
	Date              string                `json:"date"`
	Description       string                `json:"description"`
	Commits           []string              `json:"commits"`
	Tickets           []string              `json:"ticketNumbers"`
	Raw               []git.AnnotatedCommit `json:"-"`
	EnhancementPrompt string                `json:"aiEnhancementPrompt,omitempty"`
}

// generalGroup keys commits without a ticket identifier.
const generalGroup = "General"

// Format builds a Draft from commits authored on the given date.
// Commits are expected in chronological order; group order follows the first
// encounter of each ticket across that order.
func Format(commits []git.AnnotatedCommit, date string) Draft {
	if len(commits) == 0 {
		return Draft{
			Date:        date,
			Description: EmptyDescription,
			Commits:     []string{},
			Tickets:     []string{},
		}
	}

	groupOrder, groups := groupByTicket(commits)

	var parts []string
	for _, ticket := range groupOrder {
		summary := summarize(groups[ticket])
		if ticket == generalGroup {
			parts = append(parts, summary)
		} else {
			parts = append(parts, fmt.Sprintf("[%s] %s", ticket, summary))
		}
	}

	return Draft{
		Date:        date,
		Description: strings.Join(parts, ". "),
		Commits:     commitLines(commits),
		Tickets:     uniqueTickets(commits),
		Raw:         commits,
	}
}

// groupByTicket partitions commits by ticket identifier, preserving
// first-encounter order of each ticket.
func groupByTicket(commits []git.AnnotatedCommit) ([]string, map[string][]git.AnnotatedCommit) {
	var order []string
	groups := make(map[string][]git.AnnotatedCommit)

	for _, commit := range commits {
		key := commit.Ticket
		if key == "" {
			key = generalGroup
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], commit)
	}

	return order, groups
}

// summarize condenses a group of commits into one compact phrase.
func summarize(commits []git.AnnotatedCommit) string {
	var actions []string
	seen := make(map[string]bool)
	for _, commit := range commits {
		action := extractAction(commit.Subject)
		if !seen[action] {
			seen[action] = true
			actions = append(actions, action)
		}
	}

	return joinActions(actions)
}

// joinActions joins deduplicated action phrases into natural language:
// one stands alone, two use "and", three or more get an Oxford comma.
// Only the first action keeps its leading capital.
func joinActions(actions []string) string {
	switch len(actions) {
	case 0:
		return ""
	case 1:
		return actions[0]
	case 2:
		return actions[0] + " and " + lowerFirst(actions[1])
	default:
		var b strings.Builder
		b.WriteString(actions[0])
		for _, action := range actions[1 : len(actions)-1] {
			b.WriteString(", ")
			b.WriteString(lowerFirst(action))
		}
		b.WriteString(", and ")
		b.WriteString(lowerFirst(actions[len(actions)-1]))
		return b.String()
	}
}

// commitLines renders "<shortHash> - <message>" lines in input order.
func commitLines(commits []git.AnnotatedCommit) []string {
	lines := make([]string, 0, len(commits))
	for _, commit := range commits {
		lines = append(lines, fmt.Sprintf("%s - %s", commit.Short, commit.Subject))
	}
	return lines
}

// uniqueTickets collects distinct ticket identifiers in first-occurrence order.
func uniqueTickets(commits []git.AnnotatedCommit) []string {
	tickets := []string{}
	seen := make(map[string]bool)
	for _, commit := range commits {
		if commit.Ticket == "" || seen[commit.Ticket] {
			continue
		}
		seen[commit.Ticket] = true
		tickets = append(tickets, commit.Ticket)
	}
	return tickets
}

// lowerFirst lowercases the first letter of a phrase.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// upperFirst uppercases the first letter of a phrase.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
