package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/sprintdesk/internal/cli"
	"github.com/example/sprintdesk/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sprintdesk",
		Short:   "sprintdesk - terminal client for sprint planning boards",
		Version: version.String(),
		Long: `sprintdesk keeps a local cache of your projects, sprints, features,
tasks and teammates, and renders boards and task lists in the terminal.`,
		SilenceUsage: true,
	}
	cli.ConfigureGlobals(rootCmd)

	// Session
	for _, c := range cli.SessionCmds() {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(cli.RefreshCmd())

	// Entity commands
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.BoardCmd())
	rootCmd.AddCommand(cli.SprintCmd())
	rootCmd.AddCommand(cli.FeatureCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.UsersCmd())

	// Local state
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
