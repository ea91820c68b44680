// Package main provides the entry point for the worklog CLI.
package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/worklog/internal/config"
	"github.com/gorewood/worklog/internal/dashboard"
	"github.com/gorewood/worklog/internal/output"
)

// newProjectsCmd creates the projects command.
func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List your assigned dashboard projects",
		Long: `List the active projects assigned to you on the dashboard,
with the numeric IDs used for posting worklogs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
				WithStderr(cmd.ErrOrStderr())

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

			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"projects": projects})
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{strconv.Itoa(p.ID), p.Name})
			}
			printer.Table([]string{"ID", "NAME"}, rows)
			return nil
		},
	}
}
