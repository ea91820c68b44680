// Package main provides the entry point for the worklog CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/worklog/internal/config"
	"github.com/gorewood/worklog/internal/git"
	"github.com/gorewood/worklog/internal/output"
	"github.com/gorewood/worklog/internal/timeframe"
	"github.com/gorewood/worklog/internal/worklog"
)

// newGenerateCmd creates the generate command.
func newGenerateCmd() *cobra.Command {
	var repository string
	var withPrompt bool

	cmd := &cobra.Command{
		Use:   "generate [timeframe]",
		Short: "Generate a worklog from git commits",
		Long: `Generate a worklog from your git commits for a given day.

The timeframe defaults to "today". Accepted values: "today", "yesterday",
or a specific date ("2024-10-28", "10/28/2024", "28.10.2024").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "today"
			if len(args) == 1 {
				input = args[0]
			}

			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
				WithStderr(cmd.ErrOrStderr())

			draft, err := runGenerate(input, repository, withPrompt)
			if err != nil {
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(draft)
			}

			printer.KeyValue("Date", draft.Date)
			printer.KeyValue("Description", draft.Description)
			if len(draft.Tickets) > 0 {
				printer.KeyValue("Tickets", strings.Join(draft.Tickets, ", "))
			}
			if len(draft.Commits) > 0 {
				printer.Println()
				printer.Title("Commits")
				for _, line := range draft.Commits {
					printer.Println(line)
				}
			}
			if draft.EnhancementPrompt != "" {
				printer.Println()
				printer.Title("Enhancement prompt")
				printer.Println(draft.EnhancementPrompt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repository, "repository", "", "Path to the git repository (defaults to current directory)")
	cmd.Flags().BoolVar(&withPrompt, "prompt", false, "Include the AI enhancement prompt in the output")

	return cmd
}

// runGenerate resolves the timeframe, reads commits, and formats the draft.
func runGenerate(input, repository string, withPrompt bool) (worklog.Draft, error) {
	settings, err := config.Load()
	if err != nil {
		return worklog.Draft{}, err
	}

	resolved, err := timeframe.Parse(input)
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
	if withPrompt {
		draft.EnhancementPrompt = worklog.EnhancementPrompt(commits, draft.Tickets, resolved.DisplayName)
	}
	return draft, nil
}
