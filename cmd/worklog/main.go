// Package main provides the entry point for the worklog CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/worklog/internal/config"
	"github.com/gorewood/worklog/internal/envfile"
	"github.com/gorewood/worklog/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the worklog CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worklog",
		Short: "Generate worklogs from git commits and post them to the dashboard",
		Long: `Worklog turns a day's git commits into a time-tracking entry:

  - Reads your commits for a given day across all local refs
  - Groups them by ticket and writes a compact work description
  - Posts the description plus an hour count to the dashboard

Run 'worklog serve' to expose the same operations as MCP tools for
agent environments.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'worklog --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) for the session token that can't always be
	// exported to the environment. Already-set variables take precedence.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPostCmd())
	cmd.AddCommand(newProjectsCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/worklog/env (global fallback — set once, works everywhere)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}
