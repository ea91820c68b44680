// Package main provides the entry point for the worklog CLI.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/worklog/internal/config"
	"github.com/gorewood/worklog/internal/dashboard"
	"github.com/gorewood/worklog/internal/output"
)

// newPostCmd creates the post command.
func newPostCmd() *cobra.Command {
	var (
		description string
		hours       float64
		dateFlag    string
		projectID   int
		projectName string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a worklog entry to the dashboard",
		Long: `Post a worklog entry to the dashboard.

The target project comes from --project-id or --project (name, resolved
against your assigned projects); without either, the configured default
project is used. The date defaults to today.

Posting is not idempotent: retrying a failed post may create a duplicate
entry if the first attempt actually went through.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
				WithStderr(cmd.ErrOrStderr())

			if description == "" {
				err := output.NewUserError("missing required flag: --description")
				printer.Error(err)
				return err
			}

			settings, err := config.Load()
			if err != nil {
				printer.Error(err)
				return err
			}

			client, err := dashboard.New(settings.Token, settings.DashboardURL)
			if err != nil {
				printer.Error(err)
				return err
			}

			if dateFlag == "" {
				dateFlag = time.Now().Format("2006-01-02")
			}

			if projectID <= 0 && projectName != "" {
				projectID, err = client.ResolveProjectID(cmd.Context(), projectName)
				if err != nil {
					printer.Error(err)
					return err
				}
			}
			if projectID <= 0 {
				projectID = settings.DefaultProjectID
			}

			result := client.PostWorklog(cmd.Context(), description, projectID, hours, dateFlag)

			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}
			if !result.Success {
				err := output.NewSystemError(result.Message)
				printer.Error(err)
				return err
			}
			return printer.Success(map[string]any{"message": result.Message})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "m", "", "Worklog description (required)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Number of hours worked (required)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date in YYYY-MM-DD format (defaults to today)")
	cmd.Flags().IntVar(&projectID, "project-id", 0, "Dashboard project ID")
	cmd.Flags().StringVar(&projectName, "project", "", "Project name (resolved to an ID automatically)")

	return cmd
}
