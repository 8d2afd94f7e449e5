package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/wire"
)

var historyCmd = &cobra.Command{
	Use:   "history [entity-id]",
	Short: "Show changes made from this machine",
	Long: `Show the local history of confirmed creates, updates and deletes.
Filter by entity type with --type and pass an ID to narrow to one entity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entityType, _ := cmd.Flags().GetString("type")
		action, _ := cmd.Flags().GetString("action")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = 50
		}

		filters := primary.ActivityFilters{
			EntityType: entityType,
			Action:     action,
			Limit:      limit,
		}
		if len(args) > 0 {
			if entityType == "" {
				return fmt.Errorf("--type is required with an entity ID")
			}
			id, err := parseID(args[0], entityType)
			if err != nil {
				return err
			}
			filters.EntityID = id
		}

		return wire.ActivityAdapter().History(NewContext(), filters)
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old history entries",
	Long:  "Delete history entries older than the specified number of days (default 30)",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		return wire.ActivityAdapter().Prune(NewContext(), days)
	},
}

// HistoryCmd returns the history command with all subcommands attached.
func HistoryCmd() *cobra.Command {
	historyCmd.Flags().StringP("type", "t", "", "Filter by entity type (project, sprint, feature, task)")
	historyCmd.Flags().String("action", "", "Filter by action (create, update, delete)")
	historyCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")

	historyPruneCmd.Flags().Int("days", 30, "Delete entries older than N days")

	historyCmd.AddCommand(historyPruneCmd)

	return historyCmd
}
